package repository

import (
	"time"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FinishedGoodRepository struct {
	db *gorm.DB
}

func NewFinishedGoodRepository(db *gorm.DB) *FinishedGoodRepository {
	return &FinishedGoodRepository{db: db}
}

func (r *FinishedGoodRepository) List(tenantID string) ([]entity.FinishedGood, error) {
	var goods []entity.FinishedGood
	err := r.db.Where("tenant_id = ?", tenantID).
		Preload("Product").
		Preload("Batch").
		Preload("Adjustments.AdjustedByUser").
		Order("completed_at DESC").
		Find(&goods).Error
	return goods, err
}

func (r *FinishedGoodRepository) GetByID(tenantID, id string) (*entity.FinishedGood, error) {
	var good entity.FinishedGood
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).
		Preload("Product").
		Preload("Batch").
		Preload("Adjustments.AdjustedByUser").
		First(&good).Error
	return &good, err
}

// GetForUpdate 在调整事务内对成品行加锁
func (r *FinishedGoodRepository) GetForUpdate(tx *gorm.DB, tenantID, id string) (*entity.FinishedGood, error) {
	var good entity.FinishedGood
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&good).Error
	return &good, err
}

// ListAgedBefore 成品滞库报表：completed_at 早于 cutoff 的记录
func (r *FinishedGoodRepository) ListAgedBefore(tenantID string, cutoff time.Time) ([]entity.FinishedGood, error) {
	var goods []entity.FinishedGood
	err := r.db.Where("tenant_id = ? AND completed_at <= ?", tenantID, cutoff).
		Preload("Product").
		Preload("Batch").
		Order("completed_at ASC").
		Find(&goods).Error
	return goods, err
}

// DB 返回底层db用于事务
func (r *FinishedGoodRepository) DB() *gorm.DB {
	return r.db
}
