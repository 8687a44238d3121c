package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BatchService 批次生命周期：订单生成批次、自动开票
type BatchService struct {
	batchRepo   *repository.BatchRepository
	stageRepo   *repository.StageRepository
	orderRepo   *repository.OrderRepository
	productRepo *repository.ProductRepository
	invoiceRepo *repository.InvoiceRepository
}

func NewBatchService(
	batchRepo *repository.BatchRepository,
	stageRepo *repository.StageRepository,
	orderRepo *repository.OrderRepository,
	productRepo *repository.ProductRepository,
	invoiceRepo *repository.InvoiceRepository,
) *BatchService {
	return &BatchService{
		batchRepo:   batchRepo,
		stageRepo:   stageRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
	}
}

// GenerateBatchCode 生成批次编码 BATCH-XXXXXXXX-YYYYMMDD
func GenerateBatchCode() string {
	return fmt.Sprintf("BATCH-%s-%s",
		strings.ToUpper(uuid.New().String()[:8]),
		time.Now().Format("20060102"))
}

func generateInvoiceNumber() string {
	return fmt.Sprintf("INV-%s-%s",
		strings.ToUpper(uuid.New().String()[:8]),
		time.Now().Format("20060102"))
}

// CreateBatchFromOrder 由订单生成生产批次
// 初始工序为流水线第一道启用工序，数量取订单数量。
// 订单已有未关联批次的发票则补关联，否则自动生成一张商业发票。
func (s *BatchService) CreateBatchFromOrder(tenantID, orderID, userID string) (*entity.Batch, error) {
	order, err := s.orderRepo.GetByID(tenantID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("订单不存在: %w", ErrNotFound)
		}
		return nil, err
	}

	firstStage, err := s.stageRepo.FirstActive()
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("读取初始工序失败: %w", err)
	}

	batch := &entity.Batch{
		TenantID:        tenantID,
		OrderID:         order.ID,
		BatchCode:       GenerateBatchCode(),
		Status:          entity.BatchStatusPending,
		TotalQuantity:   order.Quantity,
		CurrentQuantity: order.Quantity,
	}
	if firstStage != nil {
		batch.CurrentStageID = &firstStage.ID
	}

	err = s.batchRepo.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return fmt.Errorf("创建批次失败: %w", err)
		}

		if err := tx.Model(&entity.Order{}).
			Where("id = ?", order.ID).
			Update("status", entity.OrderStatusInProduction).Error; err != nil {
			return fmt.Errorf("更新订单状态失败: %w", err)
		}

		// 关联或补开发票
		var invoice entity.CommercialInvoice
		findErr := tx.Where("tenant_id = ? AND order_id = ? AND batch_id IS NULL", tenantID, order.ID).
			First(&invoice).Error
		if findErr == nil {
			return tx.Model(&invoice).Update("batch_id", batch.ID).Error
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}
		return s.createInvoiceForBatch(tx, order, batch, userID)
	})
	if err != nil {
		return nil, err
	}

	return s.batchRepo.GetByID(tenantID, batch.ID)
}

// InvoiceProductDetail 发票行项目快照
type InvoiceProductDetail struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	SKU         string  `json:"sku"`
	Color       string  `json:"color"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

func (s *BatchService) createInvoiceForBatch(tx *gorm.DB, order *entity.Order, batch *entity.Batch, userID string) error {
	unitPrice := 0.0
	productName := ""
	if order.Product != nil {
		unitPrice = order.Product.UnitPrice
		productName = order.Product.ProductName
	}
	if cost, err := s.productRepo.GetCost(order.TenantID, order.ProductID); err == nil {
		unitPrice = cost.Cost
	}

	details := []InvoiceProductDetail{{
		ProductID:   order.ProductID,
		ProductName: productName,
		SKU:         order.SKU,
		Color:       order.Color,
		Quantity:    order.Quantity,
		Price:       unitPrice,
	}}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("序列化发票行项目失败: %w", err)
	}

	invoice := &entity.CommercialInvoice{
		TenantID:       order.TenantID,
		OrderID:        order.ID,
		BatchID:        &batch.ID,
		InvoiceNumber:  generateInvoiceNumber(),
		ProductDetails: detailsJSON,
		TotalAmount:    unitPrice * float64(order.Quantity),
		InvoiceDate:    time.Now(),
		Notes:          "Auto-generated from batch",
		CreatedBy:      userID,
	}
	if err := tx.Create(invoice).Error; err != nil {
		return fmt.Errorf("自动开票失败: %w", err)
	}
	return nil
}

func (s *BatchService) GetByID(tenantID, id string) (*entity.Batch, error) {
	batch, err := s.batchRepo.GetDetail(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("批次不存在: %w", ErrNotFound)
		}
		return nil, err
	}
	return batch, nil
}

func (s *BatchService) List(tenantID string, params repository.BatchListParams) ([]entity.Batch, int64, error) {
	return s.batchRepo.List(tenantID, params)
}

// UpdateBatchRequest 批次管理更新（管理口径，不走工序流转）
type UpdateBatchRequest struct {
	CurrentStageID  *string `json:"current_stage_id"`
	Status          *string `json:"status" binding:"omitempty,oneof=pending in_progress on_hold completed rework"`
	CurrentQuantity *int    `json:"current_quantity" binding:"omitempty,gte=0"`
}

func (s *BatchService) Update(tenantID, id string, req UpdateBatchRequest) (*entity.Batch, error) {
	batch, err := s.batchRepo.GetByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("批次不存在: %w", ErrNotFound)
		}
		return nil, err
	}

	if req.CurrentStageID != nil {
		if _, err := s.stageRepo.GetByID(*req.CurrentStageID); err != nil {
			return nil, validationErrorf("工序不存在")
		}
		batch.CurrentStageID = req.CurrentStageID
	}
	if req.Status != nil {
		batch.Status = *req.Status
	}
	if req.CurrentQuantity != nil {
		if *req.CurrentQuantity > batch.TotalQuantity {
			return nil, validationErrorf("剩余数量不能超过批次总数量 %d", batch.TotalQuantity)
		}
		batch.CurrentQuantity = *req.CurrentQuantity
	}

	if err := s.batchRepo.Update(batch); err != nil {
		return nil, fmt.Errorf("更新批次失败: %w", err)
	}
	return s.batchRepo.GetByID(tenantID, id)
}

func (s *BatchService) Delete(tenantID, id string) error {
	if _, err := s.batchRepo.GetByID(tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("批次不存在: %w", ErrNotFound)
		}
		return err
	}
	return s.batchRepo.Delete(tenantID, id)
}
