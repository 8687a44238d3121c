package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"gorm.io/gorm"
)

// InventoryService 原料库存管理（皮革 + 辅料）
type InventoryService struct {
	leatherRepo     *repository.LeatherRepository
	accessoriesRepo *repository.AccessoriesRepository
}

func NewInventoryService(
	leatherRepo *repository.LeatherRepository,
	accessoriesRepo *repository.AccessoriesRepository,
) *InventoryService {
	return &InventoryService{
		leatherRepo:     leatherRepo,
		accessoriesRepo: accessoriesRepo,
	}
}

// LeatherStats 皮革库存看板统计
type LeatherStats struct {
	TotalStock      float64 `json:"total_stock"`
	UniqueTypes     int     `json:"unique_types"`
	LowStockItems   int     `json:"low_stock_items"`
	ActiveSuppliers int     `json:"active_suppliers"`
}

// ListLeather 皮革库存列表及统计
func (s *InventoryService) ListLeather(tenantID string) ([]entity.LeatherInventory, *LeatherStats, error) {
	lots, err := s.leatherRepo.ListWithRelations(tenantID)
	if err != nil {
		return nil, nil, fmt.Errorf("读取皮革库存失败: %w", err)
	}

	stats := &LeatherStats{}
	types := make(map[string]bool)
	lowStockTypes := make(map[string]bool)
	suppliers := make(map[string]bool)
	for i := range lots {
		lot := &lots[i]
		stats.TotalStock += lot.Available()
		types[lot.LeatherName] = true

		threshold := float64(entity.DefaultLowStockThreshold)
		if lot.LowStockThreshold != nil {
			threshold = *lot.LowStockThreshold
		}
		if lot.Available() < threshold {
			lowStockTypes[lot.LeatherName] = true
		}
		if lot.SupplierID != nil {
			suppliers[*lot.SupplierID] = true
		}
	}
	stats.UniqueTypes = len(types)
	stats.LowStockItems = len(lowStockTypes)
	stats.ActiveSuppliers = len(suppliers)

	return lots, stats, nil
}

// CreateLeatherRequest 皮革入库请求
type CreateLeatherRequest struct {
	LeatherName          string   `json:"leather_name" binding:"required"`
	BrandMake            string   `json:"brand_make"`
	SupplierID           *string  `json:"supplier_id"`
	PurchaseDate         string   `json:"purchase_date" binding:"required"` // YYYY-MM-DD
	QuantitySqft         float64  `json:"quantity_sqft" binding:"required,gt=0"`
	ConsumptionReduction float64  `json:"consumption_reduction" binding:"omitempty,gte=0"`
	LowStockThreshold    *float64 `json:"low_stock_threshold"`
	SubmittedBy          *string  `json:"submitted_by"`
	ReceivedBy           *string  `json:"received_by"`
	DeliveredTo          string   `json:"delivered_to"`
}

func (s *InventoryService) CreateLeather(tenantID string, req CreateLeatherRequest) (*entity.LeatherInventory, error) {
	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return nil, validationErrorf("采购日期格式错误，应为 YYYY-MM-DD")
	}

	lot := &entity.LeatherInventory{
		TenantID:             tenantID,
		LeatherName:          req.LeatherName,
		BrandMake:            req.BrandMake,
		SupplierID:           req.SupplierID,
		PurchaseDate:         purchaseDate,
		QuantitySqft:         req.QuantitySqft,
		ConsumptionReduction: req.ConsumptionReduction,
		LowStockThreshold:    req.LowStockThreshold,
		SubmittedBy:          req.SubmittedBy,
		ReceivedBy:           req.ReceivedBy,
		DeliveredTo:          req.DeliveredTo,
	}
	if err := s.leatherRepo.Create(lot); err != nil {
		return nil, fmt.Errorf("皮革入库失败: %w", err)
	}
	return lot, nil
}

// AdjustLeatherRequest 皮革库存手工调整
type AdjustLeatherRequest struct {
	AdjustmentType string  `json:"adjustment_type" binding:"required,oneof=add deduct"`
	QuantitySqft   float64 `json:"quantity_sqft" binding:"required,gt=0"`
	Reason         string  `json:"reason"`
}

// AdjustLeather 手工调整皮革可用量并记录调整流水
// deduct 调整通过抬高 consumption_reduction 实现，消耗流水不受影响。
func (s *InventoryService) AdjustLeather(tenantID, lotID, userID string, req AdjustLeatherRequest) (*entity.LeatherInventory, error) {
	err := s.leatherRepo.DB().Transaction(func(tx *gorm.DB) error {
		var lot entity.LeatherInventory
		if err := tx.Where("tenant_id = ? AND id = ? AND deleted_at IS NULL", tenantID, lotID).
			First(&lot).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("皮革库存不存在: %w", ErrNotFound)
			}
			return err
		}

		switch req.AdjustmentType {
		case entity.AdjustmentTypeDeduct:
			if lot.Available() < req.QuantitySqft {
				return &InsufficientStockError{
					Material:  "leather",
					Shortfall: req.QuantitySqft - lot.Available(),
					Unit:      "sqft",
				}
			}
			if err := tx.Model(&lot).
				Update("consumption_reduction", gorm.Expr("consumption_reduction + ?", req.QuantitySqft)).Error; err != nil {
				return err
			}
		case entity.AdjustmentTypeAdd:
			if err := tx.Model(&lot).
				Update("quantity_sqft", gorm.Expr("quantity_sqft + ?", req.QuantitySqft)).Error; err != nil {
				return err
			}
		}

		adj := &entity.LeatherInventoryAdjustment{
			TenantID:           tenantID,
			LeatherInventoryID: lot.ID,
			AdjustmentType:     req.AdjustmentType,
			QuantitySqft:       req.QuantitySqft,
			Reason:             req.Reason,
			AdjustedBy:         userID,
			AdjustedAt:         time.Now(),
		}
		return tx.Create(adj).Error
	})
	if err != nil {
		return nil, err
	}
	return s.leatherRepo.GetByID(tenantID, lotID)
}

func (s *InventoryService) DeleteLeather(tenantID, id string) error {
	if _, err := s.leatherRepo.GetByID(tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("皮革库存不存在: %w", ErrNotFound)
		}
		return err
	}
	return s.leatherRepo.Delete(tenantID, id)
}

// ListAccessories 辅料库存列表
func (s *InventoryService) ListAccessories(tenantID string) ([]entity.AccessoriesInventory, error) {
	return s.accessoriesRepo.List(tenantID)
}

// CreateAccessoryRequest 辅料入库请求
type CreateAccessoryRequest struct {
	Name                string   `json:"name" binding:"required"`
	Quantity            float64  `json:"quantity" binding:"required,gte=0"`
	Unit                string   `json:"unit"`
	ImportInvoiceNumber string   `json:"import_invoice_number"`
	LowStockThreshold   *float64 `json:"low_stock_threshold"`
	SubmittedBy         *string  `json:"submitted_by"`
	ReceivedBy          *string  `json:"received_by"`
}

func (s *InventoryService) CreateAccessory(tenantID string, req CreateAccessoryRequest) (*entity.AccessoriesInventory, error) {
	item := &entity.AccessoriesInventory{
		TenantID:            tenantID,
		Name:                req.Name,
		Quantity:            req.Quantity,
		Unit:                req.Unit,
		ImportInvoiceNumber: req.ImportInvoiceNumber,
		LowStockThreshold:   req.LowStockThreshold,
		SubmittedBy:         req.SubmittedBy,
		ReceivedBy:          req.ReceivedBy,
	}
	if item.Unit == "" {
		item.Unit = "pcs"
	}
	if err := s.accessoriesRepo.Create(item); err != nil {
		return nil, fmt.Errorf("辅料入库失败: %w", err)
	}
	return item, nil
}

func (s *InventoryService) GetAccessory(tenantID, id string) (*entity.AccessoriesInventory, error) {
	item, err := s.accessoriesRepo.GetByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("辅料不存在: %w", ErrNotFound)
		}
		return nil, err
	}
	return item, nil
}

func (s *InventoryService) DeleteAccessory(tenantID, id string) error {
	if _, err := s.accessoriesRepo.GetByID(tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("辅料不存在: %w", ErrNotFound)
		}
		return err
	}
	return s.accessoriesRepo.Delete(tenantID, id)
}
