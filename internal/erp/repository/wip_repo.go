package repository

import (
	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"gorm.io/gorm"
)

// WipRepository 在制品台账
// Increment/Decrement 由工序流转事务调用，传入事务句柄。
type WipRepository struct {
	db *gorm.DB
}

func NewWipRepository(db *gorm.DB) *WipRepository {
	return &WipRepository{db: db}
}

// Increment 目标工序在制品数量加 qty，行不存在则创建
func (r *WipRepository) Increment(tx *gorm.DB, tenantID, batchID, stageID string, qty int) error {
	var wip entity.WipInventory
	err := tx.Where("batch_id = ? AND stage_id = ?", batchID, stageID).First(&wip).Error
	if err == gorm.ErrRecordNotFound {
		return tx.Create(&entity.WipInventory{
			TenantID: tenantID,
			BatchID:  batchID,
			StageID:  stageID,
			Quantity: qty,
		}).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&wip).Update("quantity", gorm.Expr("quantity + ?", qty)).Error
}

// Decrement 来源工序在制品数量减 qty，减到零或以下即删行
// 在制品行永不保留零或负数量。
func (r *WipRepository) Decrement(tx *gorm.DB, batchID, stageID string, qty int) error {
	var wip entity.WipInventory
	err := tx.Where("batch_id = ? AND stage_id = ?", batchID, stageID).First(&wip).Error
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if wip.Quantity-qty <= 0 {
		return tx.Delete(&wip).Error
	}
	return tx.Model(&wip).Update("quantity", gorm.Expr("quantity - ?", qty)).Error
}

// ListByBatch 批次当前在制品分布
func (r *WipRepository) ListByBatch(tenantID, batchID string) ([]entity.WipInventory, error) {
	var rows []entity.WipInventory
	err := r.db.Where("tenant_id = ? AND batch_id = ?", tenantID, batchID).
		Preload("Stage").
		Find(&rows).Error
	return rows, err
}
