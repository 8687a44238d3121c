package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/service"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/testutil"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupBatchTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, nil, nil, "", zap.NewNop())
	handlers := NewHandlers(services)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/batches", handlers.Batch.List)
	api.GET("/batches/:id", handlers.Batch.Get)
	api.POST("/batches/:id/move-stage", handlers.Batch.MoveStage)
	api.GET("/batches/:id/wip-status", handlers.Batch.WipStatus)

	return db, router
}

// TestBatchMoveStageHTTP drives a stage movement through the HTTP surface.
func TestBatchMoveStageHTTP(t *testing.T) {
	db, router := setupBatchTest(t)

	tenant := testutil.SeedTenant(t, db, "Factory", entity.ConsumptionModeFormula)
	supervisor := testutil.SeedUser(t, db, tenant.ID, "Supervisor", "sup@factory.test")
	stages := testutil.SeedStages(t, db)
	product := testutil.SeedProduct(t, db, tenant.ID, "Tote", "2 sqft per unit")
	order := testutil.SeedOrder(t, db, tenant.ID, product.ID, 10)
	batch := testutil.SeedBatch(t, db, tenant.ID, order.ID, 10)
	testutil.SeedLeatherLot(t, db, tenant.ID, "Grain", 100, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	token := testutil.GenerateTestToken(supervisor.ID, tenant.ID, supervisor.Name, supervisor.Email)

	body := map[string]interface{}{
		"to_stage_id": stages[0].ID,
		"quantity":    10,
		"notes":       "first cut",
	}
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/batches/"+batch.ID+"/move-stage", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["to_stage_id"] != stages[0].ID {
		t.Errorf("expected to_stage_id %s, got %v", stages[0].ID, data["to_stage_id"])
	}
	if data["quantity"].(float64) != 10 {
		t.Errorf("expected quantity 10, got %v", data["quantity"])
	}
	if data["supervisor_id"] != supervisor.ID {
		t.Errorf("supervisor should come from the token, got %v", data["supervisor_id"])
	}

	// WIP status reflects the movement
	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/batches/"+batch.ID+"/wip-status", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	wips := resp["data"].(map[string]interface{})["wip_inventories"].([]interface{})
	if len(wips) != 1 {
		t.Fatalf("expected 1 WIP row, got %d", len(wips))
	}
}

// TestBatchMoveStageHTTPErrors covers the error status mapping.
func TestBatchMoveStageHTTPErrors(t *testing.T) {
	db, router := setupBatchTest(t)

	tenant := testutil.SeedTenant(t, db, "Factory", entity.ConsumptionModeFormula)
	supervisor := testutil.SeedUser(t, db, tenant.ID, "Supervisor", "sup@factory.test")
	stages := testutil.SeedStages(t, db)
	product := testutil.SeedProduct(t, db, tenant.ID, "Tote", "5 sqft per unit")
	order := testutil.SeedOrder(t, db, tenant.ID, product.ID, 10)
	batch := testutil.SeedBatch(t, db, tenant.ID, order.ID, 10)
	testutil.SeedLeatherLot(t, db, tenant.ID, "Grain", 20, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	token := testutil.GenerateTestToken(supervisor.ID, tenant.ID, supervisor.Name, supervisor.Email)

	// Missing token
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/batches/"+batch.ID+"/move-stage",
		map[string]interface{}{"to_stage_id": stages[0].ID, "quantity": 10}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}

	// Binding failure: quantity missing
	w = testutil.DoRequest(router, http.MethodPost, "/api/v1/batches/"+batch.ID+"/move-stage",
		map[string]interface{}{"to_stage_id": stages[0].ID}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing quantity, got %d", w.Code)
	}

	// Quantity over the batch remainder
	w = testutil.DoRequest(router, http.MethodPost, "/api/v1/batches/"+batch.ID+"/move-stage",
		map[string]interface{}{"to_stage_id": stages[0].ID, "quantity": 99}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for oversized quantity, got %d", w.Code)
	}

	// Unknown batch
	w = testutil.DoRequest(router, http.MethodPost, "/api/v1/batches/00000000-0000-0000-0000-000000000000/move-stage",
		map[string]interface{}{"to_stage_id": stages[0].ID, "quantity": 5}, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown batch, got %d", w.Code)
	}

	// Insufficient leather: requirement 50 sqft, only 20 in stock
	w = testutil.DoRequest(router, http.MethodPost, "/api/v1/batches/"+batch.ID+"/move-stage",
		map[string]interface{}{"to_stage_id": stages[0].ID, "quantity": 10}, token)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for insufficient stock, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["material"] != "leather" {
		t.Errorf("expected leather shortfall payload, got %v", resp["material"])
	}
	if resp["shortfall"].(float64) != 30 {
		t.Errorf("expected shortfall 30, got %v", resp["shortfall"])
	}
}
