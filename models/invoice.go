package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ArbeitEmployee/arbeit-crm-backend/config"
	"github.com/ArbeitEmployee/arbeit-crm-backend/utils"
	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID             int             `gorm:"primary_key" json:"id"`
	AdminId        int             `gorm:"index;not null" json:"admin"`
	CustomerId     int             `gorm:"index;not null" json:"customer"`
	CustomerName   string          `gorm:"size:255" json:"customerName"`
	SequenceNo     int64           `gorm:"not null" json:"sequenceNo"`
	InvoiceNumber  string          `gorm:"size:255;not null" json:"invoiceNumber"`
	InvoiceDate    time.Time       `gorm:"not null" json:"invoiceDate"`
	DueDate        *time.Time      `json:"dueDate"`
	Items          []InvoiceItem   `gorm:"foreignKey:InvoiceId" json:"items"`
	DiscountType   DiscountType    `gorm:"type:enum('percent','fixed');default:'percent'" json:"discountType"`
	DiscountValue  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discountValue"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount"`
	Total          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"paidAmount"`
	CurrentStatus  InvoiceStatus   `gorm:"type:enum('Draft','Unpaid','Paid','Partiallypaid','Overdue');default:'Draft'" json:"status"`
	Notes          string          `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

type InvoiceItem struct {
	ID          int             `gorm:"primary_key" json:"id"`
	InvoiceId   int             `gorm:"index;not null" json:"-"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"rate"`
	Tax1        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax1"`
	Tax2        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax2"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewInvoice struct {
	CustomerId    int               `json:"customer" binding:"required"`
	InvoiceDate   time.Time         `json:"invoiceDate"`
	DueDate       *time.Time        `json:"dueDate"`
	Items         []NewDocumentItem `json:"items" binding:"required"`
	DiscountType  DiscountType      `json:"discountType"`
	DiscountValue decimal.Decimal   `json:"discountValue"`
	CurrentStatus InvoiceStatus     `json:"status"`
	Notes         string            `json:"notes"`
}

// UpdateInvoiceInput carries partial updates. Nil fields keep their stored
// value. There is intentionally no number field: invoice numbers are
// write-once and anything a client sends for them is dropped at binding.
type UpdateInvoiceInput struct {
	CustomerId    *int              `json:"customer"`
	InvoiceDate   *time.Time        `json:"invoiceDate"`
	DueDate       *time.Time        `json:"dueDate"`
	Items         []NewDocumentItem `json:"items"`
	DiscountType  *DiscountType     `json:"discountType"`
	DiscountValue *decimal.Decimal  `json:"discountValue"`
	CurrentStatus *InvoiceStatus    `json:"status"`
	Notes         *string           `json:"notes"`
}

// CalculateTotals rederives item amounts and the aggregate money fields.
// A nil item slice means the items were not loaded; totals are left alone
// so paid-amount bookkeeping can save an invoice without its items.
func (inv *Invoice) CalculateTotals() {
	if inv.Items == nil {
		return
	}
	amounts := make([]decimal.Decimal, 0, len(inv.Items))
	for i := range inv.Items {
		inv.Items[i].Amount = lineAmount(inv.Items[i].Quantity, inv.Items[i].Rate)
		amounts = append(amounts, inv.Items[i].Amount)
	}
	totals := ComputeDocumentTotals(amounts, inv.DiscountType, inv.DiscountValue, true)
	inv.Subtotal = totals.Subtotal
	inv.DiscountAmount = totals.DiscountAmount
	inv.Total = totals.Total
}

func (input *NewInvoice) validate(ctx context.Context, adminId int) error {
	if err := utils.ValidateResourceId[Customer](ctx, adminId, input.CustomerId); err != nil {
		return utils.FieldError("customer", "customer not found")
	}
	if err := validateDocumentItems(input.Items); err != nil {
		return err
	}
	if err := validateDiscount(input.DiscountType, input.DiscountValue); err != nil {
		return err
	}
	if input.CurrentStatus != "" && !input.CurrentStatus.Valid() {
		return utils.FieldError("status", "invalid invoice status")
	}
	return nil
}

func mapInvoiceItems(input []NewDocumentItem) []InvoiceItem {
	items := make([]InvoiceItem, 0, len(input))
	for _, item := range input {
		items = append(items, InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Tax1:        item.Tax1,
			Tax2:        item.Tax2,
		})
	}
	return items
}

func CreateInvoice(ctx context.Context, input *NewInvoice) (*Invoice, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	if err := input.validate(ctx, adminId); err != nil {
		return nil, err
	}

	customer, err := GetCustomer(ctx, input.CustomerId)
	if err != nil {
		return nil, utils.FieldError("customer", "customer not found")
	}

	invoice := Invoice{
		AdminId:       adminId,
		CustomerId:    input.CustomerId,
		CustomerName:  customer.Name,
		InvoiceDate:   input.InvoiceDate,
		DueDate:       input.DueDate,
		Items:         mapInvoiceItems(input.Items),
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		CurrentStatus: input.CurrentStatus,
		Notes:         input.Notes,
	}
	if invoice.InvoiceDate.IsZero() {
		invoice.InvoiceDate = time.Now().UTC()
	}
	if invoice.DiscountType == "" {
		invoice.DiscountType = DiscountTypePercent
	}
	if invoice.CurrentStatus == "" {
		invoice.CurrentStatus = InvoiceStatusDraft
	}

	db := config.GetDB()
	tx := db.Begin()
	// numbering + totals run in the save hooks; a counter failure aborts here
	if err := tx.WithContext(ctx).Create(&invoice).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &invoice, nil
}

func UpdateInvoice(ctx context.Context, id int, input *UpdateInvoiceInput) (*Invoice, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	if input.Items != nil {
		if err := validateDocumentItems(input.Items); err != nil {
			return nil, err
		}
	}
	if input.DiscountType != nil || input.DiscountValue != nil {
		discountType := DiscountType("")
		if input.DiscountType != nil {
			discountType = *input.DiscountType
		}
		discountValue := decimal.Zero
		if input.DiscountValue != nil {
			discountValue = *input.DiscountValue
		}
		if err := validateDiscount(discountType, discountValue); err != nil {
			return nil, err
		}
	}
	if input.CurrentStatus != nil && !input.CurrentStatus.Valid() {
		return nil, utils.FieldError("status", "invalid invoice status")
	}

	existing, err := utils.FetchModel[Invoice](ctx, adminId, id, "Items")
	if err != nil {
		return nil, err
	}

	if input.CustomerId != nil {
		customer, err := GetCustomer(ctx, *input.CustomerId)
		if err != nil {
			return nil, utils.FieldError("customer", "customer not found")
		}
		existing.CustomerId = customer.ID
		existing.CustomerName = customer.Name
	}
	if input.InvoiceDate != nil {
		existing.InvoiceDate = *input.InvoiceDate
	}
	if input.DueDate != nil {
		existing.DueDate = input.DueDate
	}
	if input.DiscountType != nil {
		existing.DiscountType = *input.DiscountType
	}
	if input.DiscountValue != nil {
		existing.DiscountValue = *input.DiscountValue
	}
	if input.CurrentStatus != nil {
		existing.CurrentStatus = *input.CurrentStatus
	}
	if input.Notes != nil {
		existing.Notes = *input.Notes
	}
	if input.Items != nil {
		existing.Items = mapInvoiceItems(input.Items)
	}

	// When items or discount change, the new total must still cover what has
	// already been paid, and the payment-derived status must follow the new
	// total instead of going stale.
	if input.Items != nil || input.DiscountType != nil || input.DiscountValue != nil {
		existing.CalculateTotals()
		if existing.PaidAmount.GreaterThan(decimal.Zero) {
			if existing.Total.LessThan(existing.PaidAmount) {
				return nil, utils.FieldError("items", "total cannot be less than the amount already paid")
			}
			existing.CurrentStatus = invoiceStatusForPaidAmount(existing.PaidAmount, existing.Total)
		}
	}

	db := config.GetDB()
	tx := db.Begin()
	if input.Items != nil {
		// replace line items wholesale
		if err := tx.WithContext(ctx).Where("invoice_id = ?", existing.ID).Delete(&InvoiceItem{}).Error; err != nil {
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

func DeleteInvoice(ctx context.Context, id int) (*Invoice, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	result, err := utils.FetchModel[Invoice](ctx, adminId, id, "Items")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Where("invoice_id = ?", result.ID).Delete(&InvoiceItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	// Delete payments one row at a time so the delete hooks run against the
	// real rows; a batch delete would fire them on an empty Payment value.
	var payments []Payment
	if err := tx.WithContext(ctx).Where("invoice_id = ?", result.ID).Find(&payments).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for i := range payments {
		if err := tx.WithContext(ctx).Delete(&payments[i]).Error; err != nil {
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

func GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}
	return utils.FetchModel[Invoice](ctx, adminId, id, "Items")
}

func GetInvoices(ctx context.Context, status string, customerName string) ([]*Invoice, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("admin_id = ?", adminId)
	if status != "" {
		dbCtx = dbCtx.Where("current_status = ?", status)
	}
	if customerName != "" {
		dbCtx = dbCtx.Where("LOWER(customer_name) LIKE ?", "%"+strings.ToLower(customerName)+"%")
	}
	var results []*Invoice
	if err := dbCtx.Preload("Items").Order("sequence_no DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetInvoiceStats(ctx context.Context) ([]*StatusStat, error) {
	return statusStats(ctx, "invoices")
}
