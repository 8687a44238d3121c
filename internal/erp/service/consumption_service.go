package service

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConsumptionService 原料消耗引擎
// 皮革按采购日期 FIFO 跨批次扣减，辅料对单库位直接扣减。
type ConsumptionService struct {
	leatherRepo     *repository.LeatherRepository
	accessoriesRepo *repository.AccessoriesRepository
	productRepo     *repository.ProductRepository
	logger          *zap.Logger
}

func NewConsumptionService(
	leatherRepo *repository.LeatherRepository,
	accessoriesRepo *repository.AccessoriesRepository,
	productRepo *repository.ProductRepository,
	logger *zap.Logger,
) *ConsumptionService {
	return &ConsumptionService{
		leatherRepo:     leatherRepo,
		accessoriesRepo: accessoriesRepo,
		productRepo:     productRepo,
		logger:          logger,
	}
}

// 耗料公式中第一个十进制数字解释为单件皮革用量 (sqft/unit)
var formulaNumberPattern = regexp.MustCompile(`(\d+\.?\d*)`)

// LeatherRequirement 按产品耗料公式计算皮革总需求量
// 公式无法解析时返回 0（等同人工模式，不自动扣减）。
func LeatherRequirement(product *entity.Product, quantity int) float64 {
	if product.ConsumptionFormula == "" {
		return 0
	}
	match := formulaNumberPattern.FindString(product.ConsumptionFormula)
	if match == "" {
		return 0
	}
	sqftPerUnit, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return sqftPerUnit * float64(quantity)
}

// DeductMaterials 批次首次流转时的原料扣减入口
// 在工序流转事务内调用（tx 为该事务句柄），失败时整个流转回滚。
// manual/hybrid 模式下皮革不在此路径自动扣减，由单独的辅料/皮革调整接口人工录入。
func (s *ConsumptionService) DeductMaterials(tx *gorm.DB, batch *entity.Batch, quantity int, mode string) error {
	var order entity.Order
	if err := tx.Where("id = ?", batch.OrderID).First(&order).Error; err != nil {
		return fmt.Errorf("读取批次订单失败: %w", err)
	}
	var product entity.Product
	if err := tx.Where("id = ?", order.ProductID).First(&product).Error; err != nil {
		return fmt.Errorf("读取批次产品失败: %w", err)
	}

	var leatherSqft float64
	if mode == entity.ConsumptionModeFormula && product.ConsumptionFormula != "" {
		leatherSqft = LeatherRequirement(&product, quantity)
	}

	if leatherSqft > 0 {
		if err := s.DeductLeather(tx, batch, leatherSqft, mode); err != nil {
			return err
		}
	}
	return nil
}

// DeductLeather 按 FIFO 扣减皮革库存
// 依次消耗可用批次（最旧的采购在前），每个批次写一条消耗流水；
// 耗尽全部批次仍有缺口时返回 InsufficientStockError，调用方事务整体回滚。
func (s *ConsumptionService) DeductLeather(tx *gorm.DB, batch *entity.Batch, quantitySqft float64, consumptionType string) error {
	lots, err := s.leatherRepo.AvailableLots(tx, batch.TenantID)
	if err != nil {
		return fmt.Errorf("读取皮革库存失败: %w", err)
	}

	remaining := quantitySqft
	for i := range lots {
		if remaining <= 0 {
			break
		}
		lot := &lots[i]

		available := lot.Available()
		consumed := available
		if remaining < available {
			consumed = remaining
		}

		if err := tx.Model(lot).
			Update("consumption_reduction", gorm.Expr("consumption_reduction + ?", consumed)).Error; err != nil {
			return fmt.Errorf("扣减皮革库存失败: %w", err)
		}

		log := &entity.LeatherConsumptionLog{
			TenantID:           batch.TenantID,
			BatchID:            batch.ID,
			LeatherInventoryID: lot.ID,
			QuantityConsumed:   consumed,
			ConsumptionType:    consumptionType,
		}
		if err := tx.Create(log).Error; err != nil {
			return fmt.Errorf("写入皮革消耗流水失败: %w", err)
		}

		remaining -= consumed
	}

	if remaining > 0 {
		return &InsufficientStockError{Material: "leather", Shortfall: remaining, Unit: "sqft"}
	}
	return nil
}

// DeductAccessories 扣减辅料库存（单库位校验后直接扣减，不做 FIFO 拆分）
// 独立事务执行，供人工扣料接口调用。
func (s *ConsumptionService) DeductAccessories(tenantID, batchID, accessoryID string, quantity float64, notes string) (*entity.AccessoriesConsumptionLog, error) {
	if quantity <= 0 {
		return nil, validationErrorf("扣减数量必须大于 0")
	}

	var log *entity.AccessoriesConsumptionLog
	err := s.accessoriesRepo.DB().Transaction(func(tx *gorm.DB) error {
		accessory, err := s.accessoriesRepo.GetForUpdate(tx, tenantID, accessoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("辅料不存在: %w", ErrNotFound)
			}
			return err
		}

		if accessory.Quantity < quantity {
			return &InsufficientStockError{
				Material:  "accessory",
				Shortfall: quantity - accessory.Quantity,
				Unit:      accessory.Unit,
			}
		}

		if err := tx.Model(accessory).
			Update("quantity", gorm.Expr("quantity - ?", quantity)).Error; err != nil {
			return fmt.Errorf("扣减辅料库存失败: %w", err)
		}

		log = &entity.AccessoriesConsumptionLog{
			TenantID:             tenantID,
			BatchID:              batchID,
			AccessoryInventoryID: accessoryID,
			QuantityConsumed:     quantity,
			Notes:                notes,
		}
		if err := tx.Create(log).Error; err != nil {
			return fmt.Errorf("写入辅料消耗流水失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return log, nil
}
