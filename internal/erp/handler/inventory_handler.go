package handler

import (
	"net/http"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/service"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventory   *service.InventoryService
	consumption *service.ConsumptionService
}

func NewInventoryHandler(inventory *service.InventoryService, consumption *service.ConsumptionService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, consumption: consumption}
}

func (h *InventoryHandler) ListLeather(c *gin.Context) {
	lots, stats, err := h.inventory.ListLeather(tenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"inventory": lots, "stats": stats}})
}

func (h *InventoryHandler) CreateLeather(c *gin.Context) {
	var req service.CreateLeatherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	lot, err := h.inventory.CreateLeather(tenantID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": lot})
}

// AdjustLeather 皮革库存手工调整：POST /leather-inventory/:id/adjust
func (h *InventoryHandler) AdjustLeather(c *gin.Context) {
	var req service.AdjustLeatherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	lot, err := h.inventory.AdjustLeather(tenantID(c), c.Param("id"), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": lot})
}

func (h *InventoryHandler) DeleteLeather(c *gin.Context) {
	if err := h.inventory.DeleteLeather(tenantID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

func (h *InventoryHandler) ListAccessories(c *gin.Context) {
	items, err := h.inventory.ListAccessories(tenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": items})
}

func (h *InventoryHandler) CreateAccessory(c *gin.Context) {
	var req service.CreateAccessoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	item, err := h.inventory.CreateAccessory(tenantID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": item})
}

// DeductAccessory 人工辅料扣料：POST /accessories-inventory/:id/deduct
// manual/hybrid 模式下皮革不随工序流转自动扣减，辅料始终走此接口。
func (h *InventoryHandler) DeductAccessory(c *gin.Context) {
	var req struct {
		BatchID  string  `json:"batch_id" binding:"required"`
		Quantity float64 `json:"quantity" binding:"required,gt=0"`
		Notes    string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	log, err := h.consumption.DeductAccessories(tenantID(c), req.BatchID, c.Param("id"), req.Quantity, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": log})
}

func (h *InventoryHandler) DeleteAccessory(c *gin.Context) {
	if err := h.inventory.DeleteAccessory(tenantID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}
