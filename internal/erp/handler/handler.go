package handler

import (
	"errors"
	"net/http"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/service"
	"github.com/gin-gonic/gin"
)

// Handlers HTTP处理器集合
type Handlers struct {
	Batch         *BatchHandler
	Order         *OrderHandler
	Inventory     *InventoryHandler
	FinishedGoods *FinishedGoodsHandler
	Stage         *StageHandler
	Product       *ProductHandler
	Supplier      *SupplierHandler
	Settings      *SettingsHandler
	Report        *ReportHandler
	Invoice       *InvoiceHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Batch:         NewBatchHandler(services.Production, services.Batch),
		Order:         NewOrderHandler(services.Order),
		Inventory:     NewInventoryHandler(services.Inventory, services.Consumption),
		FinishedGoods: NewFinishedGoodsHandler(services.FinishedGoods),
		Stage:         NewStageHandler(services.Stage),
		Product:       NewProductHandler(services.Product),
		Supplier:      NewSupplierHandler(services.Supplier),
		Settings:      NewSettingsHandler(services.Settings),
		Report:        NewReportHandler(services.Report),
		Invoice:       NewInvoiceHandler(services.Attachment),
	}
}

// tenantID 从认证上下文取租户
func tenantID(c *gin.Context) string {
	return c.GetString("tenant_id")
}

// userID 从认证上下文取当前用户
func userID(c *gin.Context) string {
	return c.GetString("user_id")
}

// respondError 按错误类型映射HTTP状态码
// 校验错误 400，记录不存在 404，库存不足 422，其余 500。
func respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": validationErr.Message})
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": err.Error()})
		return
	}
	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":      10005,
			"message":   stockErr.Error(),
			"material":  stockErr.Material,
			"shortfall": stockErr.Shortfall,
			"unit":      stockErr.Unit,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
}
