package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/testutil"
)

func TestGenerateBatchCode(t *testing.T) {
	code := GenerateBatchCode()
	parts := strings.Split(code, "-")
	if len(parts) != 3 || parts[0] != "BATCH" || len(parts[1]) != 8 || len(parts[2]) != 8 {
		t.Errorf("unexpected batch code format: %s", code)
	}
	if code == GenerateBatchCode() {
		t.Error("batch codes should be unique")
	}
}

// TestCreateBatchFromOrder verifies batch creation, order status transition
// and automatic invoice generation in one transaction.
func TestCreateBatchFromOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svcs := newTestServices(t, db)

	tenant := testutil.SeedTenant(t, db, "Factory", entity.ConsumptionModeFormula)
	user := testutil.SeedUser(t, db, tenant.ID, "Planner", "planner@factory.test")
	stages := testutil.SeedStages(t, db)
	product := testutil.SeedProduct(t, db, tenant.ID, "Messenger Bag", "3 sqft per unit")
	order := testutil.SeedOrder(t, db, tenant.ID, product.ID, 40)

	batch, err := svcs.Batch.CreateBatchFromOrder(tenant.ID, order.ID, user.ID)
	if err != nil {
		t.Fatalf("CreateBatchFromOrder failed: %v", err)
	}

	if !strings.HasPrefix(batch.BatchCode, "BATCH-") {
		t.Errorf("unexpected batch code: %s", batch.BatchCode)
	}
	if batch.TotalQuantity != 40 || batch.CurrentQuantity != 40 {
		t.Errorf("expected quantities 40/40, got %d/%d", batch.TotalQuantity, batch.CurrentQuantity)
	}
	if batch.Status != entity.BatchStatusPending {
		t.Errorf("expected pending status, got %s", batch.Status)
	}
	if batch.MaterialsDeducted {
		t.Error("materials must not be deducted at batch creation")
	}
	if batch.CurrentStageID == nil || *batch.CurrentStageID != stages[0].ID {
		t.Error("initial stage should be the first active pipeline stage")
	}

	var gotOrder entity.Order
	db.First(&gotOrder, "id = ?", order.ID)
	if gotOrder.Status != entity.OrderStatusInProduction {
		t.Errorf("expected order in_production, got %s", gotOrder.Status)
	}

	var invoice entity.CommercialInvoice
	if err := db.Where("order_id = ?", order.ID).First(&invoice).Error; err != nil {
		t.Fatalf("invoice not auto-created: %v", err)
	}
	if invoice.BatchID == nil || *invoice.BatchID != batch.ID {
		t.Error("invoice should reference the new batch")
	}
	if !strings.HasPrefix(invoice.InvoiceNumber, "INV-") {
		t.Errorf("unexpected invoice number: %s", invoice.InvoiceNumber)
	}
	if invoice.TotalAmount != 100*40 {
		t.Errorf("expected total 4000 from product unit price, got %v", invoice.TotalAmount)
	}
}

// TestCreateBatchLinksExistingInvoice verifies that an unbatched invoice on
// the order is linked instead of creating a second one.
func TestCreateBatchLinksExistingInvoice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svcs := newTestServices(t, db)

	tenant := testutil.SeedTenant(t, db, "Factory", entity.ConsumptionModeFormula)
	user := testutil.SeedUser(t, db, tenant.ID, "Planner", "planner@factory.test")
	testutil.SeedStages(t, db)
	product := testutil.SeedProduct(t, db, tenant.ID, "Messenger Bag", "")
	order := testutil.SeedOrder(t, db, tenant.ID, product.ID, 15)

	existing := &entity.CommercialInvoice{
		TenantID:      tenant.ID,
		OrderID:       order.ID,
		InvoiceNumber: "INV-MANUAL-001",
		TotalAmount:   500,
		InvoiceDate:   order.CreatedAt,
	}
	if err := db.Create(existing).Error; err != nil {
		t.Fatalf("failed to seed invoice: %v", err)
	}

	batch, err := svcs.Batch.CreateBatchFromOrder(tenant.ID, order.ID, user.ID)
	if err != nil {
		t.Fatalf("CreateBatchFromOrder failed: %v", err)
	}

	var count int64
	db.Model(&entity.CommercialInvoice{}).Where("order_id = ?", order.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected a single invoice on the order, got %d", count)
	}
	var gotInvoice entity.CommercialInvoice
	db.First(&gotInvoice, "id = ?", existing.ID)
	if gotInvoice.BatchID == nil || *gotInvoice.BatchID != batch.ID {
		t.Error("existing invoice should be linked to the new batch")
	}
}

func TestCreateBatchFromMissingOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svcs := newTestServices(t, db)

	tenant := testutil.SeedTenant(t, db, "Factory", entity.ConsumptionModeFormula)
	user := testutil.SeedUser(t, db, tenant.ID, "Planner", "planner@factory.test")
	testutil.SeedStages(t, db)

	_, err := svcs.Batch.CreateBatchFromOrder(tenant.ID, "00000000-0000-0000-0000-000000000000", user.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
