package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"gorm.io/gorm"
)

// FinishedGoodsService 成品库存管理
type FinishedGoodsService struct {
	repo *repository.FinishedGoodRepository
}

func NewFinishedGoodsService(repo *repository.FinishedGoodRepository) *FinishedGoodsService {
	return &FinishedGoodsService{repo: repo}
}

func (s *FinishedGoodsService) List(tenantID string) ([]entity.FinishedGood, error) {
	return s.repo.List(tenantID)
}

func (s *FinishedGoodsService) GetByID(tenantID, id string) (*entity.FinishedGood, error) {
	good, err := s.repo.GetByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("成品记录不存在: %w", ErrNotFound)
		}
		return nil, err
	}
	return good, nil
}

// AdjustQuantityRequest 成品数量手工调整（出口发货、盘亏盘盈）
type AdjustQuantityRequest struct {
	AdjustmentType  string `json:"adjustment_type" binding:"required,oneof=add deduct"`
	Quantity        int    `json:"quantity" binding:"required,gt=0"`
	Reason          string `json:"reason"`
	ExportReference string `json:"export_reference"`
}

// AdjustQuantity 调整成品数量并写调整流水
func (s *FinishedGoodsService) AdjustQuantity(tenantID, id, userID string, req AdjustQuantityRequest) (*entity.FinishedGood, *entity.FinishedGoodsAdjustment, error) {
	var adjustment *entity.FinishedGoodsAdjustment

	err := s.repo.DB().Transaction(func(tx *gorm.DB) error {
		good, err := s.repo.GetForUpdate(tx, tenantID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("成品记录不存在: %w", ErrNotFound)
			}
			return err
		}

		if req.AdjustmentType == entity.AdjustmentTypeDeduct {
			if req.Quantity > good.Quantity {
				return &InsufficientStockError{
					Material:  "finished_good",
					Shortfall: float64(req.Quantity - good.Quantity),
					Unit:      "pcs",
				}
			}
			if err := tx.Model(good).
				Update("quantity", gorm.Expr("quantity - ?", req.Quantity)).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(good).
				Update("quantity", gorm.Expr("quantity + ?", req.Quantity)).Error; err != nil {
				return err
			}
		}

		adjustment = &entity.FinishedGoodsAdjustment{
			TenantID:        tenantID,
			FinishedGoodID:  good.ID,
			AdjustmentType:  req.AdjustmentType,
			Quantity:        req.Quantity,
			Reason:          req.Reason,
			ExportReference: req.ExportReference,
			AdjustedBy:      userID,
			AdjustedAt:      time.Now(),
		}
		return tx.Create(adjustment).Error
	})
	if err != nil {
		return nil, nil, err
	}

	good, err := s.repo.GetByID(tenantID, id)
	if err != nil {
		return nil, nil, err
	}
	return good, adjustment, nil
}
