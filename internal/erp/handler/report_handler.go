package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/service"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// WipTracker 在制品追踪报表：GET /reports/wip-tracker
func (h *ReportHandler) WipTracker(c *gin.Context) {
	batches, err := h.svc.WipTracker(tenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": batches})
}

// InventoryLevels 库存水位报表：GET /reports/inventory-levels
func (h *ReportHandler) InventoryLevels(c *gin.Context) {
	levels, err := h.svc.InventoryLevels(tenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": levels})
}

// ExportInventoryLevels 库存水位导出 xlsx：GET /reports/inventory-levels/export
func (h *ReportHandler) ExportInventoryLevels(c *gin.Context) {
	f, err := h.svc.ExportInventoryLevels(tenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	fileName := fmt.Sprintf("inventory-levels-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}

// FinishedGoodsAging 成品滞库报表：GET /reports/finished-goods-aging
func (h *ReportHandler) FinishedGoodsAging(c *gin.Context) {
	goods, err := h.svc.FinishedGoodsAging(tenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": goods})
}
