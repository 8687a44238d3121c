package service

import (
	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Services 服务集合
type Services struct {
	Production    *ProductionService
	Consumption   *ConsumptionService
	Batch         *BatchService
	Stage         *StageService
	Inventory     *InventoryService
	FinishedGoods *FinishedGoodsService
	Order         *OrderService
	Product       *ProductService
	Supplier      *SupplierService
	Settings      *SettingsService
	Report        *ReportService
	Attachment    *AttachmentService
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, minioClient *minio.Client, bucketName string, logger *zap.Logger) *Services {
	consumption := NewConsumptionService(repos.Leather, repos.Accessories, repos.Product, logger)
	batch := NewBatchService(repos.Batch, repos.Stage, repos.Order, repos.Product, repos.Invoice)

	return &Services{
		Production:    NewProductionService(repos.Batch, repos.Stage, repos.Wip, repos.Tenant, consumption, logger),
		Consumption:   consumption,
		Batch:         batch,
		Stage:         NewStageService(repos.Stage, rdb),
		Inventory:     NewInventoryService(repos.Leather, repos.Accessories),
		FinishedGoods: NewFinishedGoodsService(repos.FinishedGood),
		Order:         NewOrderService(repos.Order, repos.Product, batch),
		Product:       NewProductService(repos.Product),
		Supplier:      NewSupplierService(repos.Supplier),
		Settings:      NewSettingsService(repos.Tenant),
		Report:        NewReportService(repos.Batch, repos.Leather, repos.Accessories, repos.FinishedGood),
		Attachment:    NewAttachmentService(repos.Invoice, minioClient, bucketName),
	}
}
