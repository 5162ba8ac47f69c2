package models

import (
	"fmt"

	"github.com/ArbeitEmployee/arbeit-crm-backend/utils"
	"github.com/shopspring/decimal"
)

// NewDocumentItem is the line-item input shared by every numbered document.
// Amount is always derived server-side; anything the client sends for it is ignored.
type NewDocumentItem struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Tax1        decimal.Decimal `json:"tax1"`
	Tax2        decimal.Decimal `json:"tax2"`
}

func validateDocumentItems(items []NewDocumentItem) error {
	fields := map[string]string{}
	if len(items) == 0 {
		fields["items"] = "at least one item is required"
	}
	for i, item := range items {
		if item.Description == "" {
			fields[fmt.Sprintf("items[%d].description", i)] = "description is required"
		}
		if !item.Quantity.GreaterThan(decimal.Zero) {
			fields[fmt.Sprintf("items[%d].quantity", i)] = "quantity must be greater than zero"
		}
		if !item.Rate.GreaterThan(decimal.Zero) {
			fields[fmt.Sprintf("items[%d].rate", i)] = "rate must be greater than zero"
		}
	}
	if len(fields) > 0 {
		return utils.NewValidationError("item validation failed", fields)
	}
	return nil
}

func validateDiscount(discountType DiscountType, discountValue decimal.Decimal) error {
	fields := map[string]string{}
	if discountType != "" && !discountType.Valid() {
		fields["discountType"] = "must be one of percent, fixed"
	}
	if discountValue.IsNegative() {
		fields["discountValue"] = "must not be negative"
	}
	if len(fields) > 0 {
		return utils.NewValidationError("discount validation failed", fields)
	}
	return nil
}
