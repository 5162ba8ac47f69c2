package models

type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeFixed   DiscountType = "fixed"
)

func (t DiscountType) Valid() bool {
	switch t {
	case DiscountTypePercent, DiscountTypeFixed:
		return true
	}
	return false
}

type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "Draft"
	InvoiceStatusUnpaid        InvoiceStatus = "Unpaid"
	InvoiceStatusPaid          InvoiceStatus = "Paid"
	InvoiceStatusPartiallypaid InvoiceStatus = "Partiallypaid"
	InvoiceStatusOverdue       InvoiceStatus = "Overdue"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusUnpaid, InvoiceStatusPaid,
		InvoiceStatusPartiallypaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

type EstimateStatus string

const (
	EstimateStatusDraft    EstimateStatus = "Draft"
	EstimateStatusPending  EstimateStatus = "Pending"
	EstimateStatusApproved EstimateStatus = "Approved"
	EstimateStatusRejected EstimateStatus = "Rejected"
)

func (s EstimateStatus) Valid() bool {
	switch s {
	case EstimateStatusDraft, EstimateStatusPending, EstimateStatusApproved, EstimateStatusRejected:
		return true
	}
	return false
}

type CreditNoteStatus string

const (
	CreditNoteStatusDraft     CreditNoteStatus = "Draft"
	CreditNoteStatusPending   CreditNoteStatus = "Pending"
	CreditNoteStatusIssued    CreditNoteStatus = "Issued"
	CreditNoteStatusCancelled CreditNoteStatus = "Cancelled"
)

func (s CreditNoteStatus) Valid() bool {
	switch s {
	case CreditNoteStatusDraft, CreditNoteStatusPending, CreditNoteStatusIssued, CreditNoteStatusCancelled:
		return true
	}
	return false
}

type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "Draft"
	ProposalStatusSent     ProposalStatus = "Sent"
	ProposalStatusAccepted ProposalStatus = "Accepted"
	ProposalStatusDeclined ProposalStatus = "Declined"
)

func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalStatusDraft, ProposalStatusSent, ProposalStatusAccepted, ProposalStatusDeclined:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusRefunded  PaymentStatus = "Refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusCompleted, PaymentStatusRefunded:
		return true
	}
	return false
}

type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "Cash"
	PaymentModeBankTransfer PaymentMode = "Bank Transfer"
	PaymentModeCard         PaymentMode = "Card"
	PaymentModeCheque       PaymentMode = "Cheque"
	PaymentModeOther        PaymentMode = "Other"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModeBankTransfer, PaymentModeCard, PaymentModeCheque, PaymentModeOther:
		return true
	}
	return false
}
