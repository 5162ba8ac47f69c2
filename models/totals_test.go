package models_test

import (
	"testing"

	"github.com/ArbeitEmployee/arbeit-crm-backend/models"
	"github.com/shopspring/decimal"
)

func TestComputeDocumentTotals_PercentDiscount(t *testing.T) {
	amounts := []decimal.Decimal{
		decimal.NewFromInt(150),
		decimal.NewFromInt(150),
	}

	totals := models.ComputeDocumentTotals(amounts, models.DiscountTypePercent, decimal.NewFromInt(10), true)

	if !totals.Subtotal.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("subtotal = %s, want 300", totals.Subtotal)
	}
	if !totals.DiscountAmount.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("discount = %s, want 30", totals.DiscountAmount)
	}
	if !totals.Total.Equal(decimal.NewFromInt(270)) {
		t.Fatalf("total = %s, want 270", totals.Total)
	}
}

func TestComputeDocumentTotals_FixedDiscount(t *testing.T) {
	amounts := []decimal.Decimal{decimal.NewFromInt(80), decimal.NewFromInt(20)}

	totals := models.ComputeDocumentTotals(amounts, models.DiscountTypeFixed, decimal.NewFromInt(25), true)

	if !totals.Subtotal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("subtotal = %s, want 100", totals.Subtotal)
	}
	if !totals.DiscountAmount.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("discount = %s, want 25", totals.DiscountAmount)
	}
	if !totals.Total.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("total = %s, want 75", totals.Total)
	}
}

func TestComputeDocumentTotals_FloorAtZero(t *testing.T) {
	amounts := []decimal.Decimal{decimal.NewFromInt(50)}
	discount := decimal.NewFromInt(80)

	floored := models.ComputeDocumentTotals(amounts, models.DiscountTypeFixed, discount, true)
	if !floored.Total.Equal(decimal.Zero) {
		t.Fatalf("floored total = %s, want 0", floored.Total)
	}

	unfloored := models.ComputeDocumentTotals(amounts, models.DiscountTypeFixed, discount, false)
	if !unfloored.Total.Equal(decimal.NewFromInt(-30)) {
		t.Fatalf("unfloored total = %s, want -30", unfloored.Total)
	}
}

func TestComputeDocumentTotals_ZeroDiscountIgnored(t *testing.T) {
	amounts := []decimal.Decimal{decimal.NewFromFloat(19.99)}

	totals := models.ComputeDocumentTotals(amounts, models.DiscountTypePercent, decimal.Zero, true)

	if !totals.DiscountAmount.Equal(decimal.Zero) {
		t.Fatalf("discount = %s, want 0", totals.DiscountAmount)
	}
	if !totals.Total.Equal(totals.Subtotal) {
		t.Fatalf("total = %s, want subtotal %s", totals.Total, totals.Subtotal)
	}
}

func TestInvoiceCalculateTotals_Idempotent(t *testing.T) {
	invoice := models.Invoice{
		DiscountType:  models.DiscountTypePercent,
		DiscountValue: decimal.NewFromInt(10),
		Items: []models.InvoiceItem{
			{Description: "Design", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(150)},
		},
	}

	invoice.CalculateTotals()
	first := invoice.Total
	invoice.CalculateTotals()

	if !invoice.Total.Equal(first) {
		t.Fatalf("second run changed total: %s -> %s", first, invoice.Total)
	}
	if !invoice.Items[0].Amount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("item amount = %s, want 300", invoice.Items[0].Amount)
	}
}

func TestInvoiceCalculateTotals_SkipsWhenItemsNotLoaded(t *testing.T) {
	invoice := models.Invoice{
		Subtotal: decimal.NewFromInt(300),
		Total:    decimal.NewFromInt(270),
	}

	invoice.CalculateTotals()

	if !invoice.Total.Equal(decimal.NewFromInt(270)) {
		t.Fatalf("total was rewritten to %s without items loaded", invoice.Total)
	}
}

func TestFormatDocumentNumber(t *testing.T) {
	cases := []struct {
		prefix string
		seq    int64
		want   string
	}{
		{models.InvoiceNumberPrefix, 1, "INV-000001"},
		{models.EstimateNumberPrefix, 42, "EST-000042"},
		{models.CreditNoteNumberPrefix, 999999, "CN-999999"},
		{models.ProposalNumberPrefix, 1000000, "PRO-1000000"},
		{models.PaymentNumberPrefix, 7, "PAY-000007"},
	}
	for _, tc := range cases {
		got := models.FormatDocumentNumber(tc.prefix, tc.seq)
		if got != tc.want {
			t.Errorf("FormatDocumentNumber(%s, %d) = %s, want %s", tc.prefix, tc.seq, got, tc.want)
		}
	}
}
