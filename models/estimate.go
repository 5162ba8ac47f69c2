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

type Estimate struct {
	ID             int             `gorm:"primary_key" json:"id"`
	AdminId        int             `gorm:"index;not null" json:"admin"`
	CustomerId     int             `gorm:"index;not null" json:"customer"`
	CustomerName   string          `gorm:"size:255" json:"customerName"`
	SequenceNo     int64           `gorm:"not null" json:"sequenceNo"`
	EstimateNumber string          `gorm:"size:255;not null" json:"estimateNumber"`
	EstimateDate   time.Time       `gorm:"not null" json:"estimateDate"`
	ExpiryDate     *time.Time      `json:"expiryDate"`
	Items          []EstimateItem  `gorm:"foreignKey:EstimateId" json:"items"`
	DiscountType   DiscountType    `gorm:"type:enum('percent','fixed');default:'percent'" json:"discountType"`
	DiscountValue  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discountValue"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount"`
	Total          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total"`
	CurrentStatus  EstimateStatus  `gorm:"type:enum('Draft','Pending','Approved','Rejected');default:'Draft'" json:"status"`
	Notes          string          `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

type EstimateItem struct {
	ID          int             `gorm:"primary_key" json:"id"`
	EstimateId  int             `gorm:"index;not null" json:"-"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"rate"`
	Tax1        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax1"`
	Tax2        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax2"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewEstimate struct {
	CustomerId    int               `json:"customer" binding:"required"`
	EstimateDate  time.Time         `json:"estimateDate"`
	ExpiryDate    *time.Time        `json:"expiryDate"`
	Items         []NewDocumentItem `json:"items" binding:"required"`
	DiscountType  DiscountType      `json:"discountType"`
	DiscountValue decimal.Decimal   `json:"discountValue"`
	CurrentStatus EstimateStatus    `json:"status"`
	Notes         string            `json:"notes"`
}

type UpdateEstimateInput struct {
	CustomerId    *int              `json:"customer"`
	EstimateDate  *time.Time        `json:"estimateDate"`
	ExpiryDate    *time.Time        `json:"expiryDate"`
	Items         []NewDocumentItem `json:"items"`
	DiscountType  *DiscountType     `json:"discountType"`
	DiscountValue *decimal.Decimal  `json:"discountValue"`
	CurrentStatus *EstimateStatus   `json:"status"`
	Notes         *string           `json:"notes"`
}

func (est *Estimate) CalculateTotals() {
	if est.Items == nil {
		return
	}
	amounts := make([]decimal.Decimal, 0, len(est.Items))
	for i := range est.Items {
		est.Items[i].Amount = lineAmount(est.Items[i].Quantity, est.Items[i].Rate)
		amounts = append(amounts, est.Items[i].Amount)
	}
	totals := ComputeDocumentTotals(amounts, est.DiscountType, est.DiscountValue, true)
	est.Subtotal = totals.Subtotal
	est.DiscountAmount = totals.DiscountAmount
	est.Total = totals.Total
}

func (input *NewEstimate) validate(ctx context.Context, adminId int) error {
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
		return utils.FieldError("status", "invalid estimate status")
	}
	return nil
}

func mapEstimateItems(input []NewDocumentItem) []EstimateItem {
	items := make([]EstimateItem, 0, len(input))
	for _, item := range input {
		items = append(items, EstimateItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Tax1:        item.Tax1,
			Tax2:        item.Tax2,
		})
	}
	return items
}

func CreateEstimate(ctx context.Context, input *NewEstimate) (*Estimate, error) {
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

	estimate := Estimate{
		AdminId:       adminId,
		CustomerId:    input.CustomerId,
		CustomerName:  customer.Name,
		EstimateDate:  input.EstimateDate,
		ExpiryDate:    input.ExpiryDate,
		Items:         mapEstimateItems(input.Items),
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		CurrentStatus: input.CurrentStatus,
		Notes:         input.Notes,
	}
	if estimate.EstimateDate.IsZero() {
		estimate.EstimateDate = time.Now().UTC()
	}
	if estimate.DiscountType == "" {
		estimate.DiscountType = DiscountTypePercent
	}
	if estimate.CurrentStatus == "" {
		estimate.CurrentStatus = EstimateStatusDraft
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&estimate).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &estimate, nil
}

func UpdateEstimate(ctx context.Context, id int, input *UpdateEstimateInput) (*Estimate, error) {
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
		return nil, utils.FieldError("status", "invalid estimate status")
	}

	existing, err := utils.FetchModel[Estimate](ctx, adminId, id, "Items")
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
	if input.EstimateDate != nil {
		existing.EstimateDate = *input.EstimateDate
	}
	if input.ExpiryDate != nil {
		existing.ExpiryDate = input.ExpiryDate
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
		if err := tx.WithContext(ctx).Where("estimate_id = ?", existing.ID).Delete(&EstimateItem{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		existing.Items = mapEstimateItems(input.Items)
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

func DeleteEstimate(ctx context.Context, id int) (*Estimate, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	result, err := utils.FetchModel[Estimate](ctx, adminId, id, "Items")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Where("estimate_id = ?", result.ID).Delete(&EstimateItem{}).Error; err != nil {
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

func GetEstimate(ctx context.Context, id int) (*Estimate, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}
	return utils.FetchModel[Estimate](ctx, adminId, id, "Items")
}

func GetEstimates(ctx context.Context, status string, customerName string) ([]*Estimate, error) {
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
	var results []*Estimate
	if err := dbCtx.Preload("Items").Order("sequence_no DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetEstimateStats(ctx context.Context) ([]*StatusStat, error) {
	return statusStats(ctx, "estimates")
}
