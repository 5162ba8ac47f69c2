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

type CreditNote struct {
	ID               int              `gorm:"primary_key" json:"id"`
	AdminId          int              `gorm:"index;not null" json:"admin"`
	CustomerId       int              `gorm:"index;not null" json:"customer"`
	CustomerName     string           `gorm:"size:255" json:"customerName"`
	SequenceNo       int64            `gorm:"not null" json:"sequenceNo"`
	CreditNoteNumber string           `gorm:"size:255;not null" json:"creditNoteNumber"`
	CreditNoteDate   time.Time        `gorm:"not null" json:"creditNoteDate"`
	Items            []CreditNoteItem `gorm:"foreignKey:CreditNoteId" json:"items"`
	DiscountType     DiscountType     `gorm:"type:enum('percent','fixed');default:'percent'" json:"discountType"`
	DiscountValue    decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"discountValue"`
	Subtotal         decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	DiscountAmount   decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"discount"`
	Total            decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"total"`
	CurrentStatus    CreditNoteStatus `gorm:"type:enum('Draft','Pending','Issued','Cancelled');default:'Draft'" json:"status"`
	Notes            string           `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}

type CreditNoteItem struct {
	ID           int             `gorm:"primary_key" json:"id"`
	CreditNoteId int             `gorm:"index;not null" json:"-"`
	Description  string          `gorm:"size:255;not null" json:"description"`
	Quantity     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	Rate         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"rate"`
	Tax1         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax1"`
	Tax2         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax2"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewCreditNote struct {
	CustomerId     int               `json:"customer" binding:"required"`
	CreditNoteDate time.Time         `json:"creditNoteDate"`
	Items          []NewDocumentItem `json:"items" binding:"required"`
	DiscountType   DiscountType      `json:"discountType"`
	DiscountValue  decimal.Decimal   `json:"discountValue"`
	CurrentStatus  CreditNoteStatus  `json:"status"`
	Notes          string            `json:"notes"`
}

type UpdateCreditNoteInput struct {
	CustomerId     *int              `json:"customer"`
	CreditNoteDate *time.Time        `json:"creditNoteDate"`
	Items          []NewDocumentItem `json:"items"`
	DiscountType   *DiscountType     `json:"discountType"`
	DiscountValue  *decimal.Decimal  `json:"discountValue"`
	CurrentStatus  *CreditNoteStatus `json:"status"`
	Notes          *string           `json:"notes"`
}

// CalculateTotals for credit notes does not floor at zero. An over-discounted
// credit note legitimately carries a negative total when it offsets a prior
// adjustment.
func (cn *CreditNote) CalculateTotals() {
	if cn.Items == nil {
		return
	}
	amounts := make([]decimal.Decimal, 0, len(cn.Items))
	for i := range cn.Items {
		cn.Items[i].Amount = lineAmount(cn.Items[i].Quantity, cn.Items[i].Rate)
		amounts = append(amounts, cn.Items[i].Amount)
	}
	totals := ComputeDocumentTotals(amounts, cn.DiscountType, cn.DiscountValue, false)
	cn.Subtotal = totals.Subtotal
	cn.DiscountAmount = totals.DiscountAmount
	cn.Total = totals.Total
}

func (input *NewCreditNote) validate(ctx context.Context, adminId int) error {
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
		return utils.FieldError("status", "invalid credit note status")
	}
	return nil
}

func mapCreditNoteItems(input []NewDocumentItem) []CreditNoteItem {
	items := make([]CreditNoteItem, 0, len(input))
	for _, item := range input {
		items = append(items, CreditNoteItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Tax1:        item.Tax1,
			Tax2:        item.Tax2,
		})
	}
	return items
}

func CreateCreditNote(ctx context.Context, input *NewCreditNote) (*CreditNote, error) {
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

	creditNote := CreditNote{
		AdminId:        adminId,
		CustomerId:     input.CustomerId,
		CustomerName:   customer.Name,
		CreditNoteDate: input.CreditNoteDate,
		Items:          mapCreditNoteItems(input.Items),
		DiscountType:   input.DiscountType,
		DiscountValue:  input.DiscountValue,
		CurrentStatus:  input.CurrentStatus,
		Notes:          input.Notes,
	}
	if creditNote.CreditNoteDate.IsZero() {
		creditNote.CreditNoteDate = time.Now().UTC()
	}
	if creditNote.DiscountType == "" {
		creditNote.DiscountType = DiscountTypePercent
	}
	if creditNote.CurrentStatus == "" {
		creditNote.CurrentStatus = CreditNoteStatusDraft
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&creditNote).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &creditNote, nil
}

func UpdateCreditNote(ctx context.Context, id int, input *UpdateCreditNoteInput) (*CreditNote, error) {
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
		return nil, utils.FieldError("status", "invalid credit note status")
	}

	existing, err := utils.FetchModel[CreditNote](ctx, adminId, id, "Items")
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
	if input.CreditNoteDate != nil {
		existing.CreditNoteDate = *input.CreditNoteDate
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

	db := config.GetDB()
	tx := db.Begin()
	if input.Items != nil {
		if err := tx.WithContext(ctx).Where("credit_note_id = ?", existing.ID).Delete(&CreditNoteItem{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		existing.Items = mapCreditNoteItems(input.Items)
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

func DeleteCreditNote(ctx context.Context, id int) (*CreditNote, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	result, err := utils.FetchModel[CreditNote](ctx, adminId, id, "Items")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Where("credit_note_id = ?", result.ID).Delete(&CreditNoteItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
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

func GetCreditNote(ctx context.Context, id int) (*CreditNote, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}
	return utils.FetchModel[CreditNote](ctx, adminId, id, "Items")
}

func GetCreditNotes(ctx context.Context, status string, customerName string) ([]*CreditNote, error) {
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
	var results []*CreditNote
	if err := dbCtx.Preload("Items").Order("sequence_no DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetCreditNoteStats(ctx context.Context) ([]*StatusStat, error) {
	return statusStats(ctx, "credit_notes")
}
