package models_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/ArbeitEmployee/arbeit-crm-backend/models"
	"github.com/shopspring/decimal"
)

func newInvoiceInput(customerId int) *models.NewInvoice {
	return &models.NewInvoice{
		CustomerId: customerId,
		Items: []models.NewDocumentItem{
			{Description: "Consulting", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(100)},
		},
	}
}

func TestInvoiceNumbering_SequentialPerAdmin(t *testing.T) {
	ctx := setupIntegration(t)
	customer := createTestCustomer(t, ctx, "Numbering Co")

	first, err := models.CreateInvoice(ctx, newInvoiceInput(customer.ID))
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if first.InvoiceNumber != "INV-000001" {
		t.Fatalf("first invoice number = %q, want INV-000001", first.InvoiceNumber)
	}

	second, err := models.CreateInvoice(ctx, newInvoiceInput(customer.ID))
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if second.InvoiceNumber != "INV-000002" {
		t.Fatalf("second invoice number = %q, want INV-000002", second.InvoiceNumber)
	}

	// A different admin gets an independent series starting from 1.
	otherCtx := newAdminContext(t, ctx, "other-admin@test.local")
	otherCustomer := createTestCustomer(t, otherCtx, "Other Co")
	otherFirst, err := models.CreateInvoice(otherCtx, newInvoiceInput(otherCustomer.ID))
	if err != nil {
		t.Fatalf("CreateInvoice (other admin): %v", err)
	}
	if otherFirst.InvoiceNumber != "INV-000001" {
		t.Fatalf("other admin first invoice = %q, want INV-000001", otherFirst.InvoiceNumber)
	}

	// Series are independent per document type as well.
	estimate, err := models.CreateEstimate(ctx, &models.NewEstimate{
		CustomerId: customer.ID,
		Items: []models.NewDocumentItem{
			{Description: "Scoping", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(50)},
		},
	})
	if err != nil {
		t.Fatalf("CreateEstimate: %v", err)
	}
	if estimate.EstimateNumber != "EST-000001" {
		t.Fatalf("estimate number = %q, want EST-000001", estimate.EstimateNumber)
	}
}

func TestInvoiceNumber_WriteOnce(t *testing.T) {
	ctx := setupIntegration(t)
	customer := createTestCustomer(t, ctx, "WriteOnce Co")

	invoice, err := models.CreateInvoice(ctx, newInvoiceInput(customer.ID))
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	assigned := invoice.InvoiceNumber

	notes := "revised terms"
	updated, err := models.UpdateInvoice(ctx, invoice.ID, &models.UpdateInvoiceInput{Notes: &notes})
	if err != nil {
		t.Fatalf("UpdateInvoice: %v", err)
	}
	if updated.InvoiceNumber != assigned {
		t.Fatalf("invoice number changed on update: %q -> %q", assigned, updated.InvoiceNumber)
	}
	if updated.SequenceNo != invoice.SequenceNo {
		t.Fatalf("sequence changed on update: %d -> %d", invoice.SequenceNo, updated.SequenceNo)
	}
}

func TestInvoiceNumbering_ConcurrentCreatesAreUnique(t *testing.T) {
	ctx := setupIntegration(t)
	customer := createTestCustomer(t, ctx, "Concurrent Co")

	const workers = 10
	numbers := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			invoice, err := models.CreateInvoice(ctx, newInvoiceInput(customer.ID))
			if err != nil {
				errs[i] = err
				return
			}
			numbers[i] = invoice.InvoiceNumber
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if seen[numbers[i]] {
			t.Fatalf("duplicate invoice number %q", numbers[i])
		}
		seen[numbers[i]] = true
	}

	// No gaps below the high-water mark when every create succeeded.
	for seq := 1; seq <= workers; seq++ {
		want := fmt.Sprintf("INV-%06d", seq)
		if !seen[want] {
			t.Fatalf("missing invoice number %q in %v", want, numbers)
		}
	}
}

func TestDeletedInvoiceNumberIsNotReused(t *testing.T) {
	ctx := setupIntegration(t)
	customer := createTestCustomer(t, ctx, "Gap Co")

	first, err := models.CreateInvoice(ctx, newInvoiceInput(customer.ID))
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if _, err := models.DeleteInvoice(ctx, first.ID); err != nil {
		t.Fatalf("DeleteInvoice: %v", err)
	}

	next, err := models.CreateInvoice(ctx, newInvoiceInput(customer.ID))
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if next.InvoiceNumber == first.InvoiceNumber {
		t.Fatalf("number %q was reused after delete", first.InvoiceNumber)
	}
	if next.InvoiceNumber != "INV-000002" {
		t.Fatalf("next invoice number = %q, want INV-000002", next.InvoiceNumber)
	}
}
