package models

import (
	"github.com/ArbeitEmployee/arbeit-crm-backend/utils"
	"github.com/shopspring/decimal"
)

// DocumentTotals are the derived money fields shared by every numbered document.
type DocumentTotals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

func lineAmount(quantity, rate decimal.Decimal) decimal.Decimal {
	return quantity.Mul(rate)
}

// ComputeDocumentTotals derives subtotal/discount/total from the item amounts.
// Tax fields are carried on items but excluded here; they are informational.
// Idempotent: the same inputs always produce the same totals.
//
// floorAtZero clamps the total when the discount exceeds the subtotal.
// Credit notes keep it off (negative receivables are legitimate there).
func ComputeDocumentTotals(amounts []decimal.Decimal, discountType DiscountType, discountValue decimal.Decimal, floorAtZero bool) DocumentTotals {
	subtotal := decimal.Zero
	for _, amount := range amounts {
		subtotal = subtotal.Add(amount)
	}

	discountAmount := utils.CalculateDiscountAmount(subtotal, discountValue, string(discountType))

	total := subtotal.Sub(discountAmount)
	if floorAtZero && total.IsNegative() {
		total = decimal.Zero
	}

	return DocumentTotals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          total,
	}
}
