package models_test

import (
	"testing"

	"github.com/ArbeitEmployee/arbeit-crm-backend/config"
	"github.com/ArbeitEmployee/arbeit-crm-backend/models"
)

func TestGetCustomers_ServesCachedListUntilWriteInvalidates(t *testing.T) {
	ctx := setupIntegration(t)
	alpha := createTestCustomer(t, ctx, "Alpha Ltd")
	beta := createTestCustomer(t, ctx, "Beta LLC")

	// First unfiltered list primes the cache.
	list, err := models.GetCustomers(ctx, "")
	if err != nil {
		t.Fatalf("GetCustomers: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d customers, want 2", len(list))
	}

	// Rename behind the cache's back with raw SQL so no hook fires.
	db := config.GetDB()
	if err := db.Exec("UPDATE customers SET name = ? WHERE id = ?", "Gamma Inc", alpha.ID).Error; err != nil {
		t.Fatalf("raw rename: %v", err)
	}

	// The unfiltered list is still served from the cache.
	list, err = models.GetCustomers(ctx, "")
	if err != nil {
		t.Fatalf("GetCustomers(cached): %v", err)
	}
	if list[0].Name != "Alpha Ltd" {
		t.Fatalf("cached list name = %q, want the stale Alpha Ltd", list[0].Name)
	}

	// Filtered lists bypass the cache and see the db.
	filtered, err := models.GetCustomers(ctx, "gamma")
	if err != nil {
		t.Fatalf("GetCustomers(filtered): %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != alpha.ID {
		t.Fatalf("filtered list = %+v, want just the renamed customer", filtered)
	}

	// A write through the model invalidates the cached list.
	if _, err := models.UpdateCustomer(ctx, beta.ID, &models.NewCustomer{Name: "Beta LLC", Notes: "vip"}); err != nil {
		t.Fatalf("UpdateCustomer: %v", err)
	}
	list, err = models.GetCustomers(ctx, "")
	if err != nil {
		t.Fatalf("GetCustomers(after invalidation): %v", err)
	}
	found := false
	for _, c := range list {
		if c.ID == alpha.ID && c.Name == "Gamma Inc" {
			found = true
		}
	}
	if !found {
		t.Fatalf("list still stale after customer update: %+v", list)
	}
}

func TestCreateCustomer_RejectsDuplicateEmailPerAdmin(t *testing.T) {
	ctx := setupIntegration(t)

	first, err := models.CreateCustomer(ctx, &models.NewCustomer{Name: "Acme", Email: "billing@acme.test"})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if _, err := models.CreateCustomer(ctx, &models.NewCustomer{Name: "Acme Clone", Email: "billing@acme.test"}); err == nil {
		t.Fatal("expected duplicate email to be rejected")
	}

	// Updating a customer keeping its own email is fine.
	if _, err := models.UpdateCustomer(ctx, first.ID, &models.NewCustomer{Name: "Acme", Email: "billing@acme.test"}); err != nil {
		t.Fatalf("UpdateCustomer(same email): %v", err)
	}

	// Another admin can reuse the address.
	otherCtx := newAdminContext(t, ctx, "second-admin@test.local")
	if _, err := models.CreateCustomer(otherCtx, &models.NewCustomer{Name: "Acme", Email: "billing@acme.test"}); err != nil {
		t.Fatalf("CreateCustomer(other admin): %v", err)
	}
}
