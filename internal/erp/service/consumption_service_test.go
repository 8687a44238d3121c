package service

import (
	"errors"
	"testing"
	"time"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/testutil"
)

func TestLeatherRequirement(t *testing.T) {
	cases := []struct {
		name     string
		formula  string
		quantity int
		want     float64
	}{
		{"decimal with unit text", "2.5 sqft per unit", 10, 25},
		{"integer", "uses 3 sqft of leather", 4, 12},
		{"leading text", "approx 1.25sqft + trim", 8, 10},
		{"empty formula", "", 10, 0},
		{"no digits", "cut to pattern", 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			product := &entity.Product{ConsumptionFormula: tc.formula}
			got := LeatherRequirement(product, tc.quantity)
			if got != tc.want {
				t.Errorf("LeatherRequirement(%q, %d) = %v, want %v", tc.formula, tc.quantity, got, tc.want)
			}
		})
	}
}

// TestDeductLeatherFIFOOrder verifies lots are consumed oldest purchase first
// regardless of insertion order.
func TestDeductLeatherFIFOOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svcs := newTestServices(t, db)

	tenant := testutil.SeedTenant(t, db, "Tannery", entity.ConsumptionModeFormula)
	product := testutil.SeedProduct(t, db, tenant.ID, "Duffel", "")
	order := testutil.SeedOrder(t, db, tenant.ID, product.ID, 10)
	batch := testutil.SeedBatch(t, db, tenant.ID, order.ID, 10)

	// Newest lot inserted first: FIFO must still start with the 2023 purchase
	newer := testutil.SeedLeatherLot(t, db, tenant.ID, "Nappa", 50, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	oldest := testutil.SeedLeatherLot(t, db, tenant.ID, "Nappa", 30, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))
	middle := testutil.SeedLeatherLot(t, db, tenant.ID, "Nappa", 40, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	if err := svcs.Consumption.DeductLeather(db, batch, 60, entity.ConsumptionModeFormula); err != nil {
		t.Fatalf("DeductLeather failed: %v", err)
	}

	var gotOldest, gotMiddle, gotNewer entity.LeatherInventory
	db.First(&gotOldest, "id = ?", oldest.ID)
	db.First(&gotMiddle, "id = ?", middle.ID)
	db.First(&gotNewer, "id = ?", newer.ID)

	if gotOldest.Available() != 0 {
		t.Errorf("oldest lot should be drained, available %v", gotOldest.Available())
	}
	if gotMiddle.Available() != 10 {
		t.Errorf("middle lot should have 10 left, available %v", gotMiddle.Available())
	}
	if gotNewer.Available() != 50 {
		t.Errorf("newest lot must be untouched, available %v", gotNewer.Available())
	}

	var logs []entity.LeatherConsumptionLog
	db.Where("batch_id = ?", batch.ID).Order("created_at ASC").Find(&logs)
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[0].LeatherInventoryID != oldest.ID || logs[0].QuantityConsumed != 30 {
		t.Errorf("log#1 = %v from %s, want 30 from oldest", logs[0].QuantityConsumed, logs[0].LeatherInventoryID)
	}
	if logs[1].LeatherInventoryID != middle.ID || logs[1].QuantityConsumed != 30 {
		t.Errorf("log#2 = %v from %s, want 30 from middle", logs[1].QuantityConsumed, logs[1].LeatherInventoryID)
	}
}

// TestDeductLeatherShortfall checks the shortfall in the returned error.
func TestDeductLeatherShortfall(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svcs := newTestServices(t, db)

	tenant := testutil.SeedTenant(t, db, "Tannery", entity.ConsumptionModeFormula)
	product := testutil.SeedProduct(t, db, tenant.ID, "Duffel", "")
	order := testutil.SeedOrder(t, db, tenant.ID, product.ID, 10)
	batch := testutil.SeedBatch(t, db, tenant.ID, order.ID, 10)
	testutil.SeedLeatherLot(t, db, tenant.ID, "Nappa", 30, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	err := svcs.Consumption.DeductLeather(db, batch, 75, entity.ConsumptionModeFormula)
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Material != "leather" || stockErr.Shortfall != 45 || stockErr.Unit != "sqft" {
		t.Errorf("unexpected shortfall: %+v", stockErr)
	}
}

// TestDeductAccessories covers the single-bucket accessory deduction path.
func TestDeductAccessories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svcs := newTestServices(t, db)

	tenant := testutil.SeedTenant(t, db, "Tannery", entity.ConsumptionModeManual)
	product := testutil.SeedProduct(t, db, tenant.ID, "Duffel", "")
	order := testutil.SeedOrder(t, db, tenant.ID, product.ID, 10)
	batch := testutil.SeedBatch(t, db, tenant.ID, order.ID, 10)
	acc := testutil.SeedAccessory(t, db, tenant.ID, "Zipper 30cm", 100)

	log, err := svcs.Consumption.DeductAccessories(tenant.ID, batch.ID, acc.ID, 40, "assembly")
	if err != nil {
		t.Fatalf("DeductAccessories failed: %v", err)
	}
	if log.QuantityConsumed != 40 {
		t.Errorf("expected 40 consumed, got %v", log.QuantityConsumed)
	}

	var gotAcc entity.AccessoriesInventory
	db.First(&gotAcc, "id = ?", acc.ID)
	if gotAcc.Quantity != 60 {
		t.Errorf("expected 60 remaining, got %v", gotAcc.Quantity)
	}

	// Over-deduction fails and leaves the quantity unchanged
	_, err = svcs.Consumption.DeductAccessories(tenant.ID, batch.ID, acc.ID, 61, "")
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Material != "accessory" || stockErr.Shortfall != 1 {
		t.Errorf("unexpected shortfall: %+v", stockErr)
	}
	db.First(&gotAcc, "id = ?", acc.ID)
	if gotAcc.Quantity != 60 {
		t.Errorf("failed deduction must not change stock, got %v", gotAcc.Quantity)
	}

	// Non-positive quantity is a validation error
	_, err = svcs.Consumption.DeductAccessories(tenant.ID, batch.ID, acc.ID, 0, "")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
