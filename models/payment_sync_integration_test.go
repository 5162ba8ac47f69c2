package models_test

import (
	"context"
	"testing"

	"github.com/ArbeitEmployee/arbeit-crm-backend/models"
	"github.com/shopspring/decimal"
)

func createTestInvoice(t *testing.T, ctx context.Context, customerId int, amount int64) *models.Invoice {
	t.Helper()
	invoice, err := models.CreateInvoice(ctx, &models.NewInvoice{
		CustomerId: customerId,
		Items: []models.NewDocumentItem{
			{Description: "Retainer", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(amount)},
		},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	return invoice
}

func TestPaymentLifecycle_MovesInvoiceBalance(t *testing.T) {
	ctx := setupIntegration(t)
	customer := createTestCustomer(t, ctx, "Payment Co")
	invoice := createTestInvoice(t, ctx, customer.ID, 100)

	if !invoice.Total.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("invoice total = %s, want 100", invoice.Total)
	}
	if invoice.CurrentStatus != models.InvoiceStatusDraft {
		t.Fatalf("new invoice status = %s, want Draft", invoice.CurrentStatus)
	}

	// Partial payment.
	first, err := models.CreatePayment(ctx, &models.NewPayment{
		InvoiceId: invoice.ID,
		Amount:    decimal.NewFromInt(40),
	})
	if err != nil {
		t.Fatalf("CreatePayment(40): %v", err)
	}
	if first.PaymentNumber != "PAY-000001" {
		t.Fatalf("payment number = %q, want PAY-000001", first.PaymentNumber)
	}

	reloaded, err := models.GetInvoice(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if !reloaded.PaidAmount.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("paidAmount = %s, want 40", reloaded.PaidAmount)
	}
	if reloaded.CurrentStatus != models.InvoiceStatusPartiallypaid {
		t.Fatalf("status = %s, want Partiallypaid", reloaded.CurrentStatus)
	}
	if !reloaded.Total.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("total changed after payment save: %s", reloaded.Total)
	}

	// Settle the rest.
	if _, err := models.CreatePayment(ctx, &models.NewPayment{
		InvoiceId: invoice.ID,
		Amount:    decimal.NewFromInt(60),
	}); err != nil {
		t.Fatalf("CreatePayment(60): %v", err)
	}
	reloaded, err = models.GetInvoice(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if reloaded.CurrentStatus != models.InvoiceStatusPaid {
		t.Fatalf("status = %s, want Paid", reloaded.CurrentStatus)
	}

	// Deleting a payment gives the amount back.
	if _, err := models.DeletePayment(ctx, first.ID); err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}
	reloaded, err = models.GetInvoice(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if !reloaded.PaidAmount.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("paidAmount after delete = %s, want 60", reloaded.PaidAmount)
	}
	if reloaded.CurrentStatus != models.InvoiceStatusPartiallypaid {
		t.Fatalf("status after delete = %s, want Partiallypaid", reloaded.CurrentStatus)
	}
}

func TestPayment_OverpaymentRejectedWithoutMutation(t *testing.T) {
	ctx := setupIntegration(t)
	customer := createTestCustomer(t, ctx, "Overpay Co")
	invoice := createTestInvoice(t, ctx, customer.ID, 100)

	if _, err := models.CreatePayment(ctx, &models.NewPayment{
		InvoiceId: invoice.ID,
		Amount:    decimal.NewFromInt(150),
	}); err == nil {
		t.Fatal("expected overpayment to be rejected")
	}

	reloaded, err := models.GetInvoice(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if !reloaded.PaidAmount.Equal(decimal.Zero) {
		t.Fatalf("paidAmount = %s after rejected payment, want 0", reloaded.PaidAmount)
	}

	payments, err := models.GetPayments(ctx, invoice.ID, "")
	if err != nil {
		t.Fatalf("GetPayments: %v", err)
	}
	if len(payments) != 0 {
		t.Fatalf("found %d payments after rejected create, want 0", len(payments))
	}
}

func TestPayment_RefundRevertsOnce(t *testing.T) {
	ctx := setupIntegration(t)
	customer := createTestCustomer(t, ctx, "Refund Co")
	invoice := createTestInvoice(t, ctx, customer.ID, 100)

	payment, err := models.CreatePayment(ctx, &models.NewPayment{
		InvoiceId: invoice.ID,
		Amount:    decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	refunded := models.PaymentStatusRefunded
	updated, err := models.UpdatePayment(ctx, payment.ID, &models.UpdatePaymentInput{CurrentStatus: &refunded})
	if err != nil {
		t.Fatalf("UpdatePayment(refund): %v", err)
	}
	if updated.CurrentStatus != models.PaymentStatusRefunded {
		t.Fatalf("payment status = %s, want Refunded", updated.CurrentStatus)
	}

	reloaded, err := models.GetInvoice(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if !reloaded.PaidAmount.Equal(decimal.Zero) {
		t.Fatalf("paidAmount after refund = %s, want 0", reloaded.PaidAmount)
	}
	if reloaded.CurrentStatus != models.InvoiceStatusUnpaid {
		t.Fatalf("status after refund = %s, want Unpaid", reloaded.CurrentStatus)
	}

	// A refunded payment cannot be reinstated.
	completed := models.PaymentStatusCompleted
	if _, err := models.UpdatePayment(ctx, payment.ID, &models.UpdatePaymentInput{CurrentStatus: &completed}); err == nil {
		t.Fatal("expected reinstating a refunded payment to fail")
	}

	// Deleting the refunded payment must not revert the invoice a second time.
	if _, err := models.DeletePayment(ctx, payment.ID); err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}
	reloaded, err = models.GetInvoice(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if !reloaded.PaidAmount.Equal(decimal.Zero) {
		t.Fatalf("paidAmount after deleting refunded payment = %s, want 0", reloaded.PaidAmount)
	}
}

func TestDeleteInvoice_AuditsPaymentsByRealId(t *testing.T) {
	ctx := setupIntegration(t)
	customer := createTestCustomer(t, ctx, "Audit Co")
	invoice := createTestInvoice(t, ctx, customer.ID, 100)

	payment, err := models.CreatePayment(ctx, &models.NewPayment{
		InvoiceId: invoice.ID,
		Amount:    decimal.NewFromInt(40),
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	if _, err := models.DeleteInvoice(ctx, invoice.ID); err != nil {
		t.Fatalf("DeleteInvoice: %v", err)
	}

	histories, err := models.GetHistories(ctx, "", 0)
	if err != nil {
		t.Fatalf("GetHistories: %v", err)
	}
	deleted := false
	for _, h := range histories {
		if h.EntityId == 0 {
			t.Fatalf("audit row without an entity id: %s %s %q", h.EntityType, h.Action, h.Description)
		}
		if h.EntityType == "payment" && h.EntityId == payment.ID && h.Action == "delete" {
			deleted = true
		}
	}
	if !deleted {
		t.Fatalf("no audit row for deleting payment %d", payment.ID)
	}
}

func TestUpdateInvoice_RederivesStatusWhenTotalShrinks(t *testing.T) {
	ctx := setupIntegration(t)
	customer := createTestCustomer(t, ctx, "Shrink Co")
	invoice := createTestInvoice(t, ctx, customer.ID, 100)

	if _, err := models.CreatePayment(ctx, &models.NewPayment{
		InvoiceId: invoice.ID,
		Amount:    decimal.NewFromInt(40),
	}); err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	// Shrinking the total down to the paid amount settles the invoice.
	updated, err := models.UpdateInvoice(ctx, invoice.ID, &models.UpdateInvoiceInput{
		Items: []models.NewDocumentItem{
			{Description: "Retainer", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(40)},
		},
	})
	if err != nil {
		t.Fatalf("UpdateInvoice(shrink to 40): %v", err)
	}
	if !updated.Total.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("total = %s, want 40", updated.Total)
	}
	if updated.CurrentStatus != models.InvoiceStatusPaid {
		t.Fatalf("status = %s, want Paid", updated.CurrentStatus)
	}

	// Below the paid amount is rejected and nothing moves.
	if _, err := models.UpdateInvoice(ctx, invoice.ID, &models.UpdateInvoiceInput{
		Items: []models.NewDocumentItem{
			{Description: "Retainer", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(30)},
		},
	}); err == nil {
		t.Fatal("expected shrinking total below paid amount to fail")
	}
	reloaded, err := models.GetInvoice(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if !reloaded.Total.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("total after rejected update = %s, want 40", reloaded.Total)
	}
	if reloaded.CurrentStatus != models.InvoiceStatusPaid {
		t.Fatalf("status after rejected update = %s, want Paid", reloaded.CurrentStatus)
	}

	// Growing the total reopens the balance.
	updated, err = models.UpdateInvoice(ctx, invoice.ID, &models.UpdateInvoiceInput{
		Items: []models.NewDocumentItem{
			{Description: "Retainer", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(200)},
		},
	})
	if err != nil {
		t.Fatalf("UpdateInvoice(grow to 200): %v", err)
	}
	if updated.CurrentStatus != models.InvoiceStatusPartiallypaid {
		t.Fatalf("status = %s, want Partiallypaid", updated.CurrentStatus)
	}
}

func TestInvoiceAccess_IsScopedToOwningAdmin(t *testing.T) {
	ctx := setupIntegration(t)
	customer := createTestCustomer(t, ctx, "Scoped Co")
	invoice := createTestInvoice(t, ctx, customer.ID, 100)

	otherCtx := newAdminContext(t, ctx, "intruder@test.local")
	if _, err := models.GetInvoice(otherCtx, invoice.ID); err == nil {
		t.Fatal("expected cross-admin read to fail")
	}
	if _, err := models.DeleteInvoice(otherCtx, invoice.ID); err == nil {
		t.Fatal("expected cross-admin delete to fail")
	}

	// Owner still sees it untouched.
	if _, err := models.GetInvoice(ctx, invoice.ID); err != nil {
		t.Fatalf("owner GetInvoice: %v", err)
	}
}
