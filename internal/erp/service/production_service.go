package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductionService 工序流转编排
// 核心操作 MoveBatchToStage：在单个数据库事务内完成
// 首次流转扣料 → 写流转记录 → 在制品台账增减 → 批次聚合更新 → 终点工序成品入库。
type ProductionService struct {
	batchRepo   *repository.BatchRepository
	stageRepo   *repository.StageRepository
	wipRepo     *repository.WipRepository
	tenantRepo  *repository.TenantRepository
	consumption *ConsumptionService
	logger      *zap.Logger
}

func NewProductionService(
	batchRepo *repository.BatchRepository,
	stageRepo *repository.StageRepository,
	wipRepo *repository.WipRepository,
	tenantRepo *repository.TenantRepository,
	consumption *ConsumptionService,
	logger *zap.Logger,
) *ProductionService {
	return &ProductionService{
		batchRepo:   batchRepo,
		stageRepo:   stageRepo,
		wipRepo:     wipRepo,
		tenantRepo:  tenantRepo,
		consumption: consumption,
		logger:      logger,
	}
}

// MoveStageRequest 工序流转请求
type MoveStageRequest struct {
	ToStageID   string  `json:"to_stage_id" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	FromStageID *string `json:"from_stage_id"`
	Notes       string  `json:"notes"`
}

// MoveBatchToStage 将批次 quantity 件从来源工序移到目标工序
// 全部步骤在一个事务内执行，任一步失败整体回滚：
// 不会出现扣了料没流转、或流转了没扣料的中间状态。
// 批次行加锁，保证同一批次的并发流转串行（首次流转判定不会重复）。
func (s *ProductionService) MoveBatchToStage(tenantID, batchID, supervisorID string, req MoveStageRequest) (*entity.BatchStageMovement, error) {
	var movementID string

	err := s.batchRepo.DB().Transaction(func(tx *gorm.DB) error {
		batch, err := s.batchRepo.GetForUpdate(tx, tenantID, batchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("批次不存在: %w", ErrNotFound)
			}
			return fmt.Errorf("读取批次失败: %w", err)
		}

		var toStage entity.ProductionStage
		if err := tx.Where("id = ?", req.ToStageID).First(&toStage).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validationErrorf("目标工序不存在")
			}
			return fmt.Errorf("读取目标工序失败: %w", err)
		}

		// 调用方已校验过数量，这里再防御性校验一次（本方法会改状态）
		if req.Quantity <= 0 {
			return validationErrorf("流转数量必须大于 0")
		}
		if req.Quantity > batch.CurrentQuantity {
			return validationErrorf("流转数量 %d 超过批次剩余数量 %d", req.Quantity, batch.CurrentQuantity)
		}

		fromStageID := req.FromStageID
		if fromStageID == nil {
			fromStageID = batch.CurrentStageID
		}

		// 首次流转：先扣原料，再做任何其他变更
		// materials_deducted 在同一事务内置位，失败回滚后重试仍视为首次
		if !batch.MaterialsDeducted {
			tenant, err := s.tenantRepo.GetByID(batch.TenantID)
			if err != nil {
				return fmt.Errorf("读取租户失败: %w", err)
			}
			if err := s.consumption.DeductMaterials(tx, batch, req.Quantity, tenant.LeatherConsumptionMode); err != nil {
				s.logger.Warn("批次首次流转扣料失败",
					zap.String("batch_id", batch.ID),
					zap.Int("quantity", req.Quantity),
					zap.Error(err),
				)
				return err
			}
			batch.MaterialsDeducted = true
		}

		movement := &entity.BatchStageMovement{
			TenantID:     batch.TenantID,
			BatchID:      batch.ID,
			FromStageID:  fromStageID,
			ToStageID:    toStage.ID,
			Quantity:     req.Quantity,
			SupervisorID: supervisorID,
			Notes:        req.Notes,
		}
		if err := tx.Create(movement).Error; err != nil {
			return fmt.Errorf("写入流转记录失败: %w", err)
		}
		movementID = movement.ID

		if err := s.wipRepo.Increment(tx, batch.TenantID, batch.ID, toStage.ID, req.Quantity); err != nil {
			return fmt.Errorf("目标工序在制品入账失败: %w", err)
		}
		if fromStageID != nil {
			if err := s.wipRepo.Decrement(tx, batch.ID, *fromStageID, req.Quantity); err != nil {
				return fmt.Errorf("来源工序在制品出账失败: %w", err)
			}
		}

		batch.CurrentStageID = &toStage.ID
		batch.CurrentQuantity -= req.Quantity
		if batch.Status == entity.BatchStatusPending {
			batch.Status = entity.BatchStatusInProgress
		}

		// 终点工序：流转数量转为成品库存
		if toStage.IsTerminal {
			if err := s.moveToFinishedGoods(tx, batch, req.Quantity); err != nil {
				return err
			}
			if batch.CurrentQuantity <= 0 {
				batch.Status = entity.BatchStatusCompleted
			}
		}

		if err := tx.Save(batch).Error; err != nil {
			return fmt.Errorf("更新批次失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.batchRepo.GetMovement(tenantID, movementID)
}

func (s *ProductionService) moveToFinishedGoods(tx *gorm.DB, batch *entity.Batch, quantity int) error {
	var order entity.Order
	if err := tx.Where("id = ?", batch.OrderID).First(&order).Error; err != nil {
		return fmt.Errorf("读取批次订单失败: %w", err)
	}

	good := &entity.FinishedGood{
		TenantID:    batch.TenantID,
		BatchID:     batch.ID,
		ProductID:   order.ProductID,
		Quantity:    quantity,
		CompletedAt: time.Now(),
	}
	if err := tx.Create(good).Error; err != nil {
		return fmt.Errorf("成品入库失败: %w", err)
	}
	return nil
}

// GetWipStatus 批次及其当前在制品分布
func (s *ProductionService) GetWipStatus(tenantID, batchID string) (*entity.Batch, error) {
	batch, err := s.batchRepo.GetWipStatus(tenantID, batchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("批次不存在: %w", ErrNotFound)
		}
		return nil, err
	}
	return batch, nil
}
