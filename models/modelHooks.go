package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Numbering runs in BeforeCreate so the counter increment commits or rolls
// back with the document row. Numbers are write-once: a non-empty number is
// never reassigned.

func (inv *Invoice) BeforeSave(tx *gorm.DB) error {
	inv.CalculateTotals()
	return nil
}

func (inv *Invoice) BeforeCreate(tx *gorm.DB) error {
	if inv.InvoiceNumber != "" {
		return nil
	}
	seq, err := NextSequence(tx, inv.AdminId, InvoiceNumberSeries)
	if err != nil {
		return err
	}
	inv.SequenceNo = seq
	inv.InvoiceNumber = FormatDocumentNumber(InvoiceNumberPrefix, seq)
	return nil
}

func (inv *Invoice) AfterCreate(tx *gorm.DB) error {
	return saveHistory(tx, "invoice", inv.ID, historyActionCreate, fmt.Sprintf("invoice %s created", inv.InvoiceNumber))
}

func (inv *Invoice) AfterUpdate(tx *gorm.DB) error {
	return saveHistory(tx, "invoice", inv.ID, historyActionUpdate, fmt.Sprintf("invoice %s updated", inv.InvoiceNumber))
}

func (inv *Invoice) AfterDelete(tx *gorm.DB) error {
	return saveHistory(tx, "invoice", inv.ID, historyActionDelete, fmt.Sprintf("invoice %s deleted", inv.InvoiceNumber))
}

func (est *Estimate) BeforeSave(tx *gorm.DB) error {
	est.CalculateTotals()
	return nil
}

func (est *Estimate) BeforeCreate(tx *gorm.DB) error {
	if est.EstimateNumber != "" {
		return nil
	}
	seq, err := NextSequence(tx, est.AdminId, EstimateNumberSeries)
	if err != nil {
		return err
	}
	est.SequenceNo = seq
	est.EstimateNumber = FormatDocumentNumber(EstimateNumberPrefix, seq)
	return nil
}

func (est *Estimate) AfterCreate(tx *gorm.DB) error {
	return saveHistory(tx, "estimate", est.ID, historyActionCreate, fmt.Sprintf("estimate %s created", est.EstimateNumber))
}

func (est *Estimate) AfterUpdate(tx *gorm.DB) error {
	return saveHistory(tx, "estimate", est.ID, historyActionUpdate, fmt.Sprintf("estimate %s updated", est.EstimateNumber))
}

func (est *Estimate) AfterDelete(tx *gorm.DB) error {
	return saveHistory(tx, "estimate", est.ID, historyActionDelete, fmt.Sprintf("estimate %s deleted", est.EstimateNumber))
}

func (cn *CreditNote) BeforeSave(tx *gorm.DB) error {
	cn.CalculateTotals()
	return nil
}

func (cn *CreditNote) BeforeCreate(tx *gorm.DB) error {
	if cn.CreditNoteNumber != "" {
		return nil
	}
	seq, err := NextSequence(tx, cn.AdminId, CreditNoteNumberSeries)
	if err != nil {
		return err
	}
	cn.SequenceNo = seq
	cn.CreditNoteNumber = FormatDocumentNumber(CreditNoteNumberPrefix, seq)
	return nil
}

func (cn *CreditNote) AfterCreate(tx *gorm.DB) error {
	return saveHistory(tx, "credit_note", cn.ID, historyActionCreate, fmt.Sprintf("credit note %s created", cn.CreditNoteNumber))
}

func (cn *CreditNote) AfterUpdate(tx *gorm.DB) error {
	return saveHistory(tx, "credit_note", cn.ID, historyActionUpdate, fmt.Sprintf("credit note %s updated", cn.CreditNoteNumber))
}

func (cn *CreditNote) AfterDelete(tx *gorm.DB) error {
	return saveHistory(tx, "credit_note", cn.ID, historyActionDelete, fmt.Sprintf("credit note %s deleted", cn.CreditNoteNumber))
}

func (p *Proposal) BeforeSave(tx *gorm.DB) error {
	p.CalculateTotals()
	return nil
}

func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	if p.ProposalNumber != "" {
		return nil
	}
	seq, err := NextSequence(tx, p.AdminId, ProposalNumberSeries)
	if err != nil {
		return err
	}
	p.SequenceNo = seq
	p.ProposalNumber = FormatDocumentNumber(ProposalNumberPrefix, seq)
	return nil
}

func (p *Proposal) AfterCreate(tx *gorm.DB) error {
	return saveHistory(tx, "proposal", p.ID, historyActionCreate, fmt.Sprintf("proposal %s created", p.ProposalNumber))
}

func (p *Proposal) AfterUpdate(tx *gorm.DB) error {
	return saveHistory(tx, "proposal", p.ID, historyActionUpdate, fmt.Sprintf("proposal %s updated", p.ProposalNumber))
}

func (p *Proposal) AfterDelete(tx *gorm.DB) error {
	return saveHistory(tx, "proposal", p.ID, historyActionDelete, fmt.Sprintf("proposal %s deleted", p.ProposalNumber))
}

func (pay *Payment) BeforeCreate(tx *gorm.DB) error {
	if pay.PaymentNumber != "" {
		return nil
	}
	seq, err := NextSequence(tx, pay.AdminId, PaymentNumberSeries)
	if err != nil {
		return err
	}
	pay.SequenceNo = seq
	pay.PaymentNumber = FormatDocumentNumber(PaymentNumberPrefix, seq)
	return nil
}

func (pay *Payment) AfterCreate(tx *gorm.DB) error {
	return saveHistory(tx, "payment", pay.ID, historyActionCreate, fmt.Sprintf("payment %s recorded against %s", pay.PaymentNumber, pay.InvoiceNumber))
}

func (pay *Payment) AfterUpdate(tx *gorm.DB) error {
	return saveHistory(tx, "payment", pay.ID, historyActionUpdate, fmt.Sprintf("payment %s updated", pay.PaymentNumber))
}

func (pay *Payment) AfterDelete(tx *gorm.DB) error {
	return saveHistory(tx, "payment", pay.ID, historyActionDelete, fmt.Sprintf("payment %s deleted", pay.PaymentNumber))
}

func (c *Customer) AfterCreate(tx *gorm.DB) error {
	c.RemoveAllRedis()
	return saveHistory(tx, "customer", c.ID, historyActionCreate, fmt.Sprintf("customer %s created", c.Name))
}

func (c *Customer) AfterUpdate(tx *gorm.DB) error {
	c.RemoveInstanceRedis()
	c.RemoveAllRedis()
	return saveHistory(tx, "customer", c.ID, historyActionUpdate, fmt.Sprintf("customer %s updated", c.Name))
}

func (c *Customer) AfterDelete(tx *gorm.DB) error {
	c.RemoveInstanceRedis()
	c.RemoveAllRedis()
	return saveHistory(tx, "customer", c.ID, historyActionDelete, fmt.Sprintf("customer %s deleted", c.Name))
}
