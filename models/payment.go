package models

import (
	"context"
	"errors"
	"time"

	"github.com/ArbeitEmployee/arbeit-crm-backend/config"
	"github.com/ArbeitEmployee/arbeit-crm-backend/utils"
	"github.com/shopspring/decimal"
)

type Payment struct {
	ID              int             `gorm:"primary_key" json:"id"`
	AdminId         int             `gorm:"index;not null" json:"admin"`
	InvoiceId       int             `gorm:"index;not null" json:"invoice"`
	InvoiceNumber   string          `gorm:"size:255" json:"invoiceNumber"`
	SequenceNo      int64           `gorm:"not null" json:"sequenceNo"`
	PaymentNumber   string          `gorm:"size:255;not null" json:"paymentNumber"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	PaymentDate     time.Time       `gorm:"not null" json:"paymentDate"`
	PaymentMode     PaymentMode     `gorm:"size:50;default:'Cash'" json:"paymentMode"`
	ReferenceNumber string          `gorm:"size:255" json:"referenceNumber"`
	CurrentStatus   PaymentStatus   `gorm:"type:enum('Completed','Refunded');default:'Completed'" json:"status"`
	Notes           string          `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewPayment struct {
	InvoiceId       int             `json:"invoice" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate     time.Time       `json:"paymentDate"`
	PaymentMode     PaymentMode     `json:"paymentMode"`
	ReferenceNumber string          `json:"referenceNumber"`
	Notes           string          `json:"notes"`
}

// UpdatePaymentInput deliberately has no amount field. Changing a recorded
// amount would desync the invoice paid balance; record a refund and a fresh
// payment instead.
type UpdatePaymentInput struct {
	PaymentDate     *time.Time     `json:"paymentDate"`
	PaymentMode     *PaymentMode   `json:"paymentMode"`
	ReferenceNumber *string        `json:"referenceNumber"`
	CurrentStatus   *PaymentStatus `json:"status"`
	Notes           *string        `json:"notes"`
}

func invoiceStatusForPaidAmount(paid decimal.Decimal, total decimal.Decimal) InvoiceStatus {
	if paid.GreaterThanOrEqual(total) && total.GreaterThan(decimal.Zero) {
		return InvoiceStatusPaid
	}
	if paid.GreaterThan(decimal.Zero) {
		return InvoiceStatusPartiallypaid
	}
	return InvoiceStatusUnpaid
}

func (input *NewPayment) validate() error {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return utils.FieldError("amount", "amount must be greater than zero")
	}
	if input.PaymentMode != "" && !input.PaymentMode.Valid() {
		return utils.FieldError("paymentMode", "invalid payment mode")
	}
	return nil
}

// CreatePayment records a payment against an invoice and moves the invoice
// paid balance and status in the same transaction. A per-invoice lock
// serializes concurrent payments so the balance check stays honest.
func CreatePayment(ctx context.Context, input *NewPayment) (*Payment, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	release, err := utils.AcquireLock(ctx, "invoice-payment", input.InvoiceId, "payment", "CreatePayment")
	if err != nil {
		return nil, err
	}
	defer release()

	invoice, err := utils.FetchModel[Invoice](ctx, adminId, input.InvoiceId)
	if err != nil {
		return nil, utils.FieldError("invoice", "invoice not found")
	}

	remaining := invoice.Total.Sub(invoice.PaidAmount)
	if input.Amount.GreaterThan(remaining) {
		return nil, utils.FieldError("amount", "amount exceeds the invoice remaining balance")
	}

	payment := Payment{
		AdminId:         adminId,
		InvoiceId:       invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		Amount:          input.Amount,
		PaymentDate:     input.PaymentDate,
		PaymentMode:     input.PaymentMode,
		ReferenceNumber: input.ReferenceNumber,
		CurrentStatus:   PaymentStatusCompleted,
		Notes:           input.Notes,
	}
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now().UTC()
	}
	if payment.PaymentMode == "" {
		payment.PaymentMode = PaymentModeCash
	}

	invoice.PaidAmount = invoice.PaidAmount.Add(input.Amount)
	invoice.CurrentStatus = invoiceStatusForPaidAmount(invoice.PaidAmount, invoice.Total)

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&payment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Save(invoice).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &payment, nil
}

// UpdatePayment edits metadata, and handles the one allowed status move:
// Completed to Refunded, which gives the amount back to the invoice. A
// refunded payment stays on file and cannot be flipped back.
func UpdatePayment(ctx context.Context, id int, input *UpdatePaymentInput) (*Payment, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	if input.PaymentMode != nil && !input.PaymentMode.Valid() {
		return nil, utils.FieldError("paymentMode", "invalid payment mode")
	}
	if input.CurrentStatus != nil && !input.CurrentStatus.Valid() {
		return nil, utils.FieldError("status", "invalid payment status")
	}

	existing, err := utils.FetchModel[Payment](ctx, adminId, id)
	if err != nil {
		return nil, err
	}

	release, err := utils.AcquireLock(ctx, "invoice-payment", existing.InvoiceId, "payment", "UpdatePayment")
	if err != nil {
		return nil, err
	}
	defer release()

	refunding := false
	if input.CurrentStatus != nil && *input.CurrentStatus != existing.CurrentStatus {
		if existing.CurrentStatus == PaymentStatusRefunded {
			return nil, utils.FieldError("status", "a refunded payment cannot be reinstated")
		}
		refunding = *input.CurrentStatus == PaymentStatusRefunded
		existing.CurrentStatus = *input.CurrentStatus
	}
	if input.PaymentDate != nil {
		existing.PaymentDate = *input.PaymentDate
	}
	if input.PaymentMode != nil {
		existing.PaymentMode = *input.PaymentMode
	}
	if input.ReferenceNumber != nil {
		existing.ReferenceNumber = *input.ReferenceNumber
	}
	if input.Notes != nil {
		existing.Notes = *input.Notes
	}

	db := config.GetDB()
	tx := db.Begin()
	if refunding {
		invoice, err := utils.FetchModel[Invoice](ctx, adminId, existing.InvoiceId)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		invoice.PaidAmount = invoice.PaidAmount.Sub(existing.Amount)
		if invoice.PaidAmount.LessThan(decimal.Zero) {
			invoice.PaidAmount = decimal.Zero
		}
		invoice.CurrentStatus = invoiceStatusForPaidAmount(invoice.PaidAmount, invoice.Total)
		if err := tx.WithContext(ctx).Save(invoice).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.WithContext(ctx).Save(existing).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return existing, nil
}

// DeletePayment removes the record and gives the amount back to the invoice,
// unless the payment was already refunded and the balance already moved.
func DeletePayment(ctx context.Context, id int) (*Payment, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	result, err := utils.FetchModel[Payment](ctx, adminId, id)
	if err != nil {
		return nil, err
	}

	release, err := utils.AcquireLock(ctx, "invoice-payment", result.InvoiceId, "payment", "DeletePayment")
	if err != nil {
		return nil, err
	}
	defer release()

	db := config.GetDB()
	tx := db.Begin()
	if result.CurrentStatus == PaymentStatusCompleted {
		invoice, err := utils.FetchModel[Invoice](ctx, adminId, result.InvoiceId)
		if err == nil {
			invoice.PaidAmount = invoice.PaidAmount.Sub(result.Amount)
			if invoice.PaidAmount.LessThan(decimal.Zero) {
				invoice.PaidAmount = decimal.Zero
			}
			invoice.CurrentStatus = invoiceStatusForPaidAmount(invoice.PaidAmount, invoice.Total)
			if err := tx.WithContext(ctx).Save(invoice).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		} else if !errors.Is(err, utils.ErrorRecordNotFound) {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.WithContext(ctx).Delete(result).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return result, nil
}

func GetPayment(ctx context.Context, id int) (*Payment, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}
	return utils.FetchModel[Payment](ctx, adminId, id)
}

func GetPayments(ctx context.Context, invoiceId int, status string) ([]*Payment, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("admin_id = ?", adminId)
	if invoiceId != 0 {
		dbCtx = dbCtx.Where("invoice_id = ?", invoiceId)
	}
	if status != "" {
		dbCtx = dbCtx.Where("current_status = ?", status)
	}
	var results []*Payment
	if err := dbCtx.Order("sequence_no DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetPaymentStats(ctx context.Context) ([]*StatusStat, error) {
	return paymentStats(ctx)
}
