package handler

import (
	"net/http"
	"strconv"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/service"
	"github.com/gin-gonic/gin"
)

type BatchHandler struct {
	production *service.ProductionService
	batchSvc   *service.BatchService
}

func NewBatchHandler(production *service.ProductionService, batchSvc *service.BatchService) *BatchHandler {
	return &BatchHandler{production: production, batchSvc: batchSvc}
}

func (h *BatchHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	params := repository.BatchListParams{
		Status:  c.Query("status"),
		OrderID: c.Query("order_id"),
		Page:    page,
		Size:    size,
	}
	batches, total, err := h.batchSvc.List(tenantID(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": batches, "total": total, "page": page, "size": size}})
}

func (h *BatchHandler) Get(c *gin.Context) {
	batch, err := h.batchSvc.GetByID(tenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": batch})
}

// MoveStage 工序流转：POST /batches/:id/move-stage
func (h *BatchHandler) MoveStage(c *gin.Context) {
	var req service.MoveStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	movement, err := h.production.MoveBatchToStage(tenantID(c), c.Param("id"), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": movement})
}

// WipStatus 批次在制品分布：GET /batches/:id/wip-status
func (h *BatchHandler) WipStatus(c *gin.Context) {
	batch, err := h.production.GetWipStatus(tenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": batch})
}

func (h *BatchHandler) Update(c *gin.Context) {
	var req service.UpdateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	batch, err := h.batchSvc.Update(tenantID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": batch})
}

func (h *BatchHandler) Delete(c *gin.Context) {
	if err := h.batchSvc.Delete(tenantID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}
