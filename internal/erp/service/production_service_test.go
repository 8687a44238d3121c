package service

import (
	"errors"
	"testing"
	"time"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServices(t *testing.T, db *gorm.DB) *Services {
	t.Helper()
	repos := repository.NewRepositories(db)
	return NewServices(repos, nil, nil, "", zap.NewNop())
}

func stageByName(t *testing.T, stages []entity.ProductionStage, name string) *entity.ProductionStage {
	t.Helper()
	for i := range stages {
		if stages[i].Name == name {
			return &stages[i]
		}
	}
	t.Fatalf("stage %q not seeded", name)
	return nil
}

// TestMoveBatchFirstMovement walks a batch through two movements and verifies
// FIFO leather consumption, WIP bookkeeping and batch aggregates.
func TestMoveBatchFirstMovement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svcs := newTestServices(t, db)

	tenant := testutil.SeedTenant(t, db, "Factory A", entity.ConsumptionModeFormula)
	supervisor := testutil.SeedUser(t, db, tenant.ID, "Supervisor", "sup@factory-a.test")
	stages := testutil.SeedStages(t, db)
	cutting := stageByName(t, stages, "Cutting")
	stitching := stageByName(t, stages, "Initial Stitching")

	product := testutil.SeedProduct(t, db, tenant.ID, "Tote Bag", "2.5 sqft per unit")
	order := testutil.SeedOrder(t, db, tenant.ID, product.ID, 100)
	batch := testutil.SeedBatch(t, db, tenant.ID, order.ID, 100)

	lotA := testutil.SeedLeatherLot(t, db, tenant.ID, "Full Grain", 100, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	lotB := testutil.SeedLeatherLot(t, db, tenant.ID, "Full Grain", 200, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	// First movement: 80 units into Cutting, requirement 80 * 2.5 = 200 sqft
	movement, err := svcs.Production.MoveBatchToStage(tenant.ID, batch.ID, supervisor.ID, MoveStageRequest{
		ToStageID: cutting.ID,
		Quantity:  80,
	})
	if err != nil {
		t.Fatalf("first movement failed: %v", err)
	}
	if movement.FromStageID != nil {
		t.Errorf("expected nil from_stage on first movement, got %v", *movement.FromStageID)
	}
	if movement.ToStageID != cutting.ID || movement.Quantity != 80 {
		t.Errorf("unexpected movement: to=%s qty=%d", movement.ToStageID, movement.Quantity)
	}

	// FIFO: oldest lot drained first, remainder from the newer lot
	var gotA, gotB entity.LeatherInventory
	db.First(&gotA, "id = ?", lotA.ID)
	db.First(&gotB, "id = ?", lotB.ID)
	if gotA.Available() != 0 {
		t.Errorf("lot A should be fully consumed, available %v", gotA.Available())
	}
	if gotB.Available() != 100 {
		t.Errorf("lot B should have 100 sqft left, available %v", gotB.Available())
	}
	var logs []entity.LeatherConsumptionLog
	db.Where("batch_id = ?", batch.ID).Order("created_at ASC").Find(&logs)
	if len(logs) != 2 {
		t.Fatalf("expected 2 consumption logs, got %d", len(logs))
	}
	if logs[0].LeatherInventoryID != lotA.ID || logs[0].QuantityConsumed != 100 {
		t.Errorf("log#1 should consume 100 from lot A, got %v from %s", logs[0].QuantityConsumed, logs[0].LeatherInventoryID)
	}
	if logs[1].LeatherInventoryID != lotB.ID || logs[1].QuantityConsumed != 100 {
		t.Errorf("log#2 should consume 100 from lot B, got %v from %s", logs[1].QuantityConsumed, logs[1].LeatherInventoryID)
	}

	var gotBatch entity.Batch
	db.First(&gotBatch, "id = ?", batch.ID)
	if !gotBatch.MaterialsDeducted {
		t.Error("materials_deducted should be set after first movement")
	}
	if gotBatch.CurrentQuantity != 20 {
		t.Errorf("expected current_quantity 20, got %d", gotBatch.CurrentQuantity)
	}
	if gotBatch.CurrentStageID == nil || *gotBatch.CurrentStageID != cutting.ID {
		t.Error("current_stage should be Cutting")
	}
	if gotBatch.Status != entity.BatchStatusInProgress {
		t.Errorf("expected status in_progress, got %s", gotBatch.Status)
	}

	var wip entity.WipInventory
	if err := db.Where("batch_id = ? AND stage_id = ?", batch.ID, cutting.ID).First(&wip).Error; err != nil {
		t.Fatalf("WIP row at Cutting missing: %v", err)
	}
	if wip.Quantity != 80 {
		t.Errorf("expected WIP 80 at Cutting, got %d", wip.Quantity)
	}

	// Second movement: 20 units Cutting -> Initial Stitching, no further consumption
	_, err = svcs.Production.MoveBatchToStage(tenant.ID, batch.ID, supervisor.ID, MoveStageRequest{
		ToStageID:   stitching.ID,
		Quantity:    20,
		FromStageID: &cutting.ID,
	})
	if err != nil {
		t.Fatalf("second movement failed: %v", err)
	}

	db.Where("batch_id = ?", batch.ID).Find(&logs)
	if len(logs) != 2 {
		t.Errorf("no new consumption expected on second movement, got %d logs", len(logs))
	}

	var cuttingWip entity.WipInventory
	if err := db.Where("batch_id = ? AND stage_id = ?", batch.ID, cutting.ID).First(&cuttingWip).Error; err != nil {
		t.Fatalf("Cutting WIP row should remain: %v", err)
	}
	if cuttingWip.Quantity != 60 {
		t.Errorf("expected WIP 60 at Cutting after moving 20 out, got %d", cuttingWip.Quantity)
	}

	var stitchingWip entity.WipInventory
	if err := db.Where("batch_id = ? AND stage_id = ?", batch.ID, stitching.ID).First(&stitchingWip).Error; err != nil {
		t.Fatalf("WIP row at Initial Stitching missing: %v", err)
	}
	if stitchingWip.Quantity != 20 {
		t.Errorf("expected WIP 20 at Initial Stitching, got %d", stitchingWip.Quantity)
	}

	db.First(&gotBatch, "id = ?", batch.ID)
	if gotBatch.CurrentQuantity != 0 {
		t.Errorf("expected current_quantity 0, got %d", gotBatch.CurrentQuantity)
	}
}

// TestMoveBatchInsufficientLeatherRollsBack verifies that a shortfall rolls the
// whole movement back, and that a retry after restocking is treated as the
// first movement again.
func TestMoveBatchInsufficientLeatherRollsBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svcs := newTestServices(t, db)

	tenant := testutil.SeedTenant(t, db, "Factory B", entity.ConsumptionModeFormula)
	supervisor := testutil.SeedUser(t, db, tenant.ID, "Supervisor", "sup@factory-b.test")
	stages := testutil.SeedStages(t, db)
	cutting := stageByName(t, stages, "Cutting")

	product := testutil.SeedProduct(t, db, tenant.ID, "Wallet", "2.5 sqft per unit")
	order := testutil.SeedOrder(t, db, tenant.ID, product.ID, 100)
	batch := testutil.SeedBatch(t, db, tenant.ID, order.ID, 100)

	lot := testutil.SeedLeatherLot(t, db, tenant.ID, "Suede", 100, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	// Requirement 250 sqft, only 100 available
	_, err := svcs.Production.MoveBatchToStage(tenant.ID, batch.ID, supervisor.ID, MoveStageRequest{
		ToStageID: cutting.ID,
		Quantity:  100,
	})
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Material != "leather" || stockErr.Shortfall != 150 {
		t.Errorf("expected leather shortfall 150, got %s %v", stockErr.Material, stockErr.Shortfall)
	}

	// Everything rolled back
	var gotLot entity.LeatherInventory
	db.First(&gotLot, "id = ?", lot.ID)
	if gotLot.ConsumptionReduction != 0 {
		t.Errorf("lot consumption should be rolled back, got %v", gotLot.ConsumptionReduction)
	}
	var movementCount, logCount, wipCount int64
	db.Model(&entity.BatchStageMovement{}).Where("batch_id = ?", batch.ID).Count(&movementCount)
	db.Model(&entity.LeatherConsumptionLog{}).Where("batch_id = ?", batch.ID).Count(&logCount)
	db.Model(&entity.WipInventory{}).Where("batch_id = ?", batch.ID).Count(&wipCount)
	if movementCount != 0 || logCount != 0 || wipCount != 0 {
		t.Errorf("expected clean rollback, got movements=%d logs=%d wip=%d", movementCount, logCount, wipCount)
	}
	var gotBatch entity.Batch
	db.First(&gotBatch, "id = ?", batch.ID)
	if gotBatch.MaterialsDeducted {
		t.Error("materials_deducted must stay false after rollback")
	}
	if gotBatch.CurrentQuantity != 100 {
		t.Errorf("current_quantity should be unchanged, got %d", gotBatch.CurrentQuantity)
	}

	// Restock and retry: still counts as first movement, deduction happens once
	testutil.SeedLeatherLot(t, db, tenant.ID, "Suede", 200, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if _, err := svcs.Production.MoveBatchToStage(tenant.ID, batch.ID, supervisor.ID, MoveStageRequest{
		ToStageID: cutting.ID,
		Quantity:  100,
	}); err != nil {
		t.Fatalf("retry after restock failed: %v", err)
	}
	db.Model(&entity.LeatherConsumptionLog{}).Where("batch_id = ?", batch.ID).Count(&logCount)
	if logCount != 2 {
		t.Errorf("expected 2 consumption logs after retry, got %d", logCount)
	}
	db.First(&gotBatch, "id = ?", batch.ID)
	if !gotBatch.MaterialsDeducted {
		t.Error("materials_deducted should be set after successful retry")
	}
}

// TestMoveBatchManualModeSkipsDeduction verifies that manual tenants get no
// automatic leather consumption on first movement.
func TestMoveBatchManualModeSkipsDeduction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svcs := newTestServices(t, db)

	tenant := testutil.SeedTenant(t, db, "Factory C", entity.ConsumptionModeManual)
	supervisor := testutil.SeedUser(t, db, tenant.ID, "Supervisor", "sup@factory-c.test")
	stages := testutil.SeedStages(t, db)
	cutting := stageByName(t, stages, "Cutting")

	product := testutil.SeedProduct(t, db, tenant.ID, "Belt", "1.2 sqft per unit")
	order := testutil.SeedOrder(t, db, tenant.ID, product.ID, 10)
	batch := testutil.SeedBatch(t, db, tenant.ID, order.ID, 10)
	lot := testutil.SeedLeatherLot(t, db, tenant.ID, "Calf", 50, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	if _, err := svcs.Production.MoveBatchToStage(tenant.ID, batch.ID, supervisor.ID, MoveStageRequest{
		ToStageID: cutting.ID,
		Quantity:  10,
	}); err != nil {
		t.Fatalf("movement failed: %v", err)
	}

	var gotLot entity.LeatherInventory
	db.First(&gotLot, "id = ?", lot.ID)
	if gotLot.ConsumptionReduction != 0 {
		t.Errorf("manual mode should not consume leather, got %v", gotLot.ConsumptionReduction)
	}
	var gotBatch entity.Batch
	db.First(&gotBatch, "id = ?", batch.ID)
	if !gotBatch.MaterialsDeducted {
		t.Error("materials_deducted flag still set after first movement in manual mode")
	}
}

// TestMoveBatchTerminalStage verifies finished-goods conversion and batch
// completion when units reach the terminal stage.
func TestMoveBatchTerminalStage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svcs := newTestServices(t, db)

	tenant := testutil.SeedTenant(t, db, "Factory D", entity.ConsumptionModeManual)
	supervisor := testutil.SeedUser(t, db, tenant.ID, "Supervisor", "sup@factory-d.test")
	stages := testutil.SeedStages(t, db)
	terminal := stageByName(t, stages, "Goods at Inventory")

	product := testutil.SeedProduct(t, db, tenant.ID, "Handbag", "")
	order := testutil.SeedOrder(t, db, tenant.ID, product.ID, 50)
	batch := testutil.SeedBatch(t, db, tenant.ID, order.ID, 50)

	// Stage skipping is permitted: straight to the terminal stage
	if _, err := svcs.Production.MoveBatchToStage(tenant.ID, batch.ID, supervisor.ID, MoveStageRequest{
		ToStageID: terminal.ID,
		Quantity:  50,
	}); err != nil {
		t.Fatalf("movement to terminal stage failed: %v", err)
	}

	var good entity.FinishedGood
	if err := db.Where("batch_id = ?", batch.ID).First(&good).Error; err != nil {
		t.Fatalf("finished good not created: %v", err)
	}
	if good.ProductID != product.ID || good.Quantity != 50 {
		t.Errorf("unexpected finished good: product=%s qty=%d", good.ProductID, good.Quantity)
	}

	var gotBatch entity.Batch
	db.First(&gotBatch, "id = ?", batch.ID)
	if gotBatch.Status != entity.BatchStatusCompleted {
		t.Errorf("expected status completed, got %s", gotBatch.Status)
	}
	if gotBatch.CurrentQuantity != 0 {
		t.Errorf("expected current_quantity 0, got %d", gotBatch.CurrentQuantity)
	}
}

// TestWipRowDeletedAtZero verifies the source WIP row is removed when its
// quantity reaches zero, and that GetWipStatus reflects the distribution.
func TestWipRowDeletedAtZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svcs := newTestServices(t, db)

	tenant := testutil.SeedTenant(t, db, "Factory G", entity.ConsumptionModeManual)
	supervisor := testutil.SeedUser(t, db, tenant.ID, "Supervisor", "sup@factory-g.test")
	stages := testutil.SeedStages(t, db)
	cutting := stageByName(t, stages, "Cutting")
	schiving := stageByName(t, stages, "Schiving")

	product := testutil.SeedProduct(t, db, tenant.ID, "Card Holder", "")
	order := testutil.SeedOrder(t, db, tenant.ID, product.ID, 100)
	batch := testutil.SeedBatch(t, db, tenant.ID, order.ID, 100)

	if _, err := svcs.Production.MoveBatchToStage(tenant.ID, batch.ID, supervisor.ID, MoveStageRequest{
		ToStageID: cutting.ID,
		Quantity:  20,
	}); err != nil {
		t.Fatalf("movement failed: %v", err)
	}
	if _, err := svcs.Production.MoveBatchToStage(tenant.ID, batch.ID, supervisor.ID, MoveStageRequest{
		ToStageID: schiving.ID,
		Quantity:  20,
	}); err != nil {
		t.Fatalf("movement failed: %v", err)
	}

	var count int64
	db.Model(&entity.WipInventory{}).Where("batch_id = ? AND stage_id = ?", batch.ID, cutting.ID).Count(&count)
	if count != 0 {
		t.Error("Cutting WIP row should be deleted when drained to zero")
	}

	status, err := svcs.Production.GetWipStatus(tenant.ID, batch.ID)
	if err != nil {
		t.Fatalf("GetWipStatus failed: %v", err)
	}
	if len(status.WipInventories) != 1 || status.WipInventories[0].StageID != schiving.ID || status.WipInventories[0].Quantity != 20 {
		t.Errorf("unexpected WIP distribution: %+v", status.WipInventories)
	}
}

// TestMoveBatchValidation covers quantity and stage validation failures.
func TestMoveBatchValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svcs := newTestServices(t, db)

	tenant := testutil.SeedTenant(t, db, "Factory E", entity.ConsumptionModeManual)
	supervisor := testutil.SeedUser(t, db, tenant.ID, "Supervisor", "sup@factory-e.test")
	stages := testutil.SeedStages(t, db)
	cutting := stageByName(t, stages, "Cutting")

	product := testutil.SeedProduct(t, db, tenant.ID, "Pouch", "")
	order := testutil.SeedOrder(t, db, tenant.ID, product.ID, 10)
	batch := testutil.SeedBatch(t, db, tenant.ID, order.ID, 10)

	// Quantity over the batch remainder
	_, err := svcs.Production.MoveBatchToStage(tenant.ID, batch.ID, supervisor.ID, MoveStageRequest{
		ToStageID: cutting.ID,
		Quantity:  11,
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for oversized quantity, got %v", err)
	}

	// Unknown destination stage
	_, err = svcs.Production.MoveBatchToStage(tenant.ID, batch.ID, supervisor.ID, MoveStageRequest{
		ToStageID: "00000000-0000-0000-0000-000000000000",
		Quantity:  5,
	})
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for unknown stage, got %v", err)
	}

	// Unknown batch
	_, err = svcs.Production.MoveBatchToStage(tenant.ID, "00000000-0000-0000-0000-000000000000", supervisor.ID, MoveStageRequest{
		ToStageID: cutting.ID,
		Quantity:  5,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown batch, got %v", err)
	}

	// Cross-tenant access must behave like a missing record
	other := testutil.SeedTenant(t, db, "Factory F", entity.ConsumptionModeManual)
	_, err = svcs.Production.MoveBatchToStage(other.ID, batch.ID, supervisor.ID, MoveStageRequest{
		ToStageID: cutting.ID,
		Quantity:  5,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-tenant batch, got %v", err)
	}

	// Nothing mutated by the failed attempts
	var gotBatch entity.Batch
	db.First(&gotBatch, "id = ?", batch.ID)
	if gotBatch.CurrentQuantity != 10 || gotBatch.Status != entity.BatchStatusPending {
		t.Errorf("batch mutated by failed movements: qty=%d status=%s", gotBatch.CurrentQuantity, gotBatch.Status)
	}
}
