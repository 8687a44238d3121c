package handler

import (
	"net/http"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/service"
	"github.com/gin-gonic/gin"
)

type FinishedGoodsHandler struct {
	svc *service.FinishedGoodsService
}

func NewFinishedGoodsHandler(svc *service.FinishedGoodsService) *FinishedGoodsHandler {
	return &FinishedGoodsHandler{svc: svc}
}

func (h *FinishedGoodsHandler) List(c *gin.Context) {
	goods, err := h.svc.List(tenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": goods})
}

func (h *FinishedGoodsHandler) Get(c *gin.Context) {
	good, err := h.svc.GetByID(tenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": good})
}

// AdjustQuantity 成品数量调整：POST /finished-goods/:id/adjust
func (h *FinishedGoodsHandler) AdjustQuantity(c *gin.Context) {
	var req service.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	good, adjustment, err := h.svc.AdjustQuantity(tenantID(c), c.Param("id"), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"finished_good": good, "adjustment": adjustment}})
}
