package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"gorm.io/gorm"
)

// OrderService 生产订单管理
type OrderService struct {
	orderRepo   *repository.OrderRepository
	productRepo *repository.ProductRepository
	batchSvc    *BatchService
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	productRepo *repository.ProductRepository,
	batchSvc *BatchService,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		batchSvc:    batchSvc,
	}
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	OrderType string `json:"order_type" binding:"omitempty,oneof=online_order corporate_order sample"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Color     string `json:"color"`
	SKU       string `json:"sku"`
	Notes     string `json:"notes"`
}

// Create 创建订单，颜色/SKU 未传时取产品档案值
func (s *OrderService) Create(tenantID string, req CreateOrderRequest) (*entity.Order, error) {
	product, err := s.productRepo.GetByID(tenantID, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationErrorf("产品不存在")
		}
		return nil, err
	}

	color := req.Color
	if color == "" {
		color = product.Color
	}
	sku := req.SKU
	if sku == "" {
		sku = product.SKU
	}

	order := &entity.Order{
		TenantID:  tenantID,
		ProductID: req.ProductID,
		OrderType: req.OrderType,
		Quantity:  req.Quantity,
		Color:     color,
		SKU:       sku,
		Status:    entity.OrderStatusPending,
		Notes:     req.Notes,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("创建订单失败: %w", err)
	}
	return s.orderRepo.GetByID(tenantID, order.ID)
}

// ListResult 订单列表及看板统计
type OrderListResult struct {
	Orders []entity.Order         `json:"orders"`
	Stats  *repository.OrderStats `json:"stats"`
}

func (s *OrderService) List(tenantID string) (*OrderListResult, error) {
	orders, err := s.orderRepo.List(tenantID)
	if err != nil {
		return nil, fmt.Errorf("读取订单列表失败: %w", err)
	}
	stats, err := s.orderRepo.Stats(tenantID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("统计订单失败: %w", err)
	}
	return &OrderListResult{Orders: orders, Stats: stats}, nil
}

func (s *OrderService) GetByID(tenantID, id string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("订单不存在: %w", ErrNotFound)
		}
		return nil, err
	}
	return order, nil
}

// CreateBatch 由订单生成批次
func (s *OrderService) CreateBatch(tenantID, orderID, userID string) (*entity.Batch, error) {
	return s.batchSvc.CreateBatchFromOrder(tenantID, orderID, userID)
}
