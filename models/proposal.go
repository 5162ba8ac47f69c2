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

type Proposal struct {
	ID             int             `gorm:"primary_key" json:"id"`
	AdminId        int             `gorm:"index;not null" json:"admin"`
	CustomerId     int             `gorm:"index;not null" json:"customer"`
	CustomerName   string          `gorm:"size:255" json:"customerName"`
	SequenceNo     int64           `gorm:"not null" json:"sequenceNo"`
	ProposalNumber string          `gorm:"size:255;not null" json:"proposalNumber"`
	ProposalDate   time.Time       `gorm:"not null" json:"proposalDate"`
	OpenTill       *time.Time      `json:"openTill"`
	Title          string          `gorm:"size:255" json:"title"`
	Items          []ProposalItem  `gorm:"foreignKey:ProposalId" json:"items"`
	DiscountType   DiscountType    `gorm:"type:enum('percent','fixed');default:'percent'" json:"discountType"`
	DiscountValue  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discountValue"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount"`
	Total          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total"`
	CurrentStatus  ProposalStatus  `gorm:"type:enum('Draft','Sent','Accepted','Declined');default:'Draft'" json:"status"`
	Notes          string          `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

type ProposalItem struct {
	ID          int             `gorm:"primary_key" json:"id"`
	ProposalId  int             `gorm:"index;not null" json:"-"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"rate"`
	Tax1        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax1"`
	Tax2        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax2"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewProposal struct {
	CustomerId    int               `json:"customer" binding:"required"`
	ProposalDate  time.Time         `json:"proposalDate"`
	OpenTill      *time.Time        `json:"openTill"`
	Title         string            `json:"title"`
	Items         []NewDocumentItem `json:"items" binding:"required"`
	DiscountType  DiscountType      `json:"discountType"`
	DiscountValue decimal.Decimal   `json:"discountValue"`
	CurrentStatus ProposalStatus    `json:"status"`
	Notes         string            `json:"notes"`
}

type UpdateProposalInput struct {
	CustomerId    *int              `json:"customer"`
	ProposalDate  *time.Time        `json:"proposalDate"`
	OpenTill      *time.Time        `json:"openTill"`
	Title         *string           `json:"title"`
	Items         []NewDocumentItem `json:"items"`
	DiscountType  *DiscountType     `json:"discountType"`
	DiscountValue *decimal.Decimal  `json:"discountValue"`
	CurrentStatus *ProposalStatus   `json:"status"`
	Notes         *string           `json:"notes"`
}

func (p *Proposal) CalculateTotals() {
	if p.Items == nil {
		return
	}
	amounts := make([]decimal.Decimal, 0, len(p.Items))
	for i := range p.Items {
		p.Items[i].Amount = lineAmount(p.Items[i].Quantity, p.Items[i].Rate)
		amounts = append(amounts, p.Items[i].Amount)
	}
	totals := ComputeDocumentTotals(amounts, p.DiscountType, p.DiscountValue, true)
	p.Subtotal = totals.Subtotal
	p.DiscountAmount = totals.DiscountAmount
	p.Total = totals.Total
}

func (input *NewProposal) validate(ctx context.Context, adminId int) error {
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
		return utils.FieldError("status", "invalid proposal status")
	}
	return nil
}

func mapProposalItems(input []NewDocumentItem) []ProposalItem {
	items := make([]ProposalItem, 0, len(input))
	for _, item := range input {
		items = append(items, ProposalItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Tax1:        item.Tax1,
			Tax2:        item.Tax2,
		})
	}
	return items
}

func CreateProposal(ctx context.Context, input *NewProposal) (*Proposal, error) {
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

	proposal := Proposal{
		AdminId:       adminId,
		CustomerId:    input.CustomerId,
		CustomerName:  customer.Name,
		ProposalDate:  input.ProposalDate,
		OpenTill:      input.OpenTill,
		Title:         input.Title,
		Items:         mapProposalItems(input.Items),
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		CurrentStatus: input.CurrentStatus,
		Notes:         input.Notes,
	}
	if proposal.ProposalDate.IsZero() {
		proposal.ProposalDate = time.Now().UTC()
	}
	if proposal.DiscountType == "" {
		proposal.DiscountType = DiscountTypePercent
	}
	if proposal.CurrentStatus == "" {
		proposal.CurrentStatus = ProposalStatusDraft
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&proposal).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &proposal, nil
}

func UpdateProposal(ctx context.Context, id int, input *UpdateProposalInput) (*Proposal, error) {
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
		return nil, utils.FieldError("status", "invalid proposal status")
	}

	existing, err := utils.FetchModel[Proposal](ctx, adminId, id, "Items")
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
	if input.ProposalDate != nil {
		existing.ProposalDate = *input.ProposalDate
	}
	if input.OpenTill != nil {
		existing.OpenTill = input.OpenTill
	}
	if input.Title != nil {
		existing.Title = *input.Title
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
		if err := tx.WithContext(ctx).Where("proposal_id = ?", existing.ID).Delete(&ProposalItem{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		existing.Items = mapProposalItems(input.Items)
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

func DeleteProposal(ctx context.Context, id int) (*Proposal, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	result, err := utils.FetchModel[Proposal](ctx, adminId, id, "Items")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Where("proposal_id = ?", result.ID).Delete(&ProposalItem{}).Error; err != nil {
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

func GetProposal(ctx context.Context, id int) (*Proposal, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}
	return utils.FetchModel[Proposal](ctx, adminId, id, "Items")
}

func GetProposals(ctx context.Context, status string, customerName string) ([]*Proposal, error) {
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
	var results []*Proposal
	if err := dbCtx.Preload("Items").Order("sequence_no DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetProposalStats(ctx context.Context) ([]*StatusStat, error) {
	return statusStats(ctx, "proposals")
}
