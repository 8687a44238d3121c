package repository

import (
	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

func (r *BatchRepository) Create(batch *entity.Batch) error {
	return r.db.Create(batch).Error
}

func (r *BatchRepository) GetByID(tenantID, id string) (*entity.Batch, error) {
	var batch entity.Batch
	err := r.db.Where("tenant_id = ? AND id = ? AND deleted_at IS NULL", tenantID, id).
		First(&batch).Error
	return &batch, err
}

// GetDetail 获取批次完整履历（工序流转、在制品、消耗流水）
func (r *BatchRepository) GetDetail(tenantID, id string) (*entity.Batch, error) {
	var batch entity.Batch
	err := r.db.Where("tenant_id = ? AND id = ? AND deleted_at IS NULL", tenantID, id).
		Preload("Order.Product").
		Preload("CurrentStage").
		Preload("StageMovements", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("StageMovements.FromStage").
		Preload("StageMovements.ToStage").
		Preload("StageMovements.Supervisor").
		Preload("WipInventories.Stage").
		Preload("FinishedGoods").
		First(&batch).Error
	return &batch, err
}

// GetWipStatus 获取批次及其当前在制品分布
func (r *BatchRepository) GetWipStatus(tenantID, id string) (*entity.Batch, error) {
	var batch entity.Batch
	err := r.db.Where("tenant_id = ? AND id = ? AND deleted_at IS NULL", tenantID, id).
		Preload("Order.Product").
		Preload("CurrentStage").
		Preload("WipInventories.Stage").
		First(&batch).Error
	return &batch, err
}

// GetForUpdate 在事务内对批次行加锁
// 同一批次的并发流转必须串行，否则两个请求会同时认为自己是首次流转。
func (r *BatchRepository) GetForUpdate(tx *gorm.DB, tenantID, id string) (*entity.Batch, error) {
	var batch entity.Batch
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ? AND deleted_at IS NULL", tenantID, id).
		First(&batch).Error
	return &batch, err
}

type BatchListParams struct {
	Status  string
	OrderID string
	Page    int
	Size    int
}

func (r *BatchRepository) List(tenantID string, params BatchListParams) ([]entity.Batch, int64, error) {
	query := r.db.Model(&entity.Batch{}).Where("tenant_id = ? AND deleted_at IS NULL", tenantID)
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.OrderID != "" {
		query = query.Where("order_id = ?", params.OrderID)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var batches []entity.Batch
	err := query.Preload("Order.Product").
		Preload("CurrentStage").
		Preload("WipInventories.Stage").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&batches).Error
	return batches, total, err
}

// ListAllWithWip 报表用：租户全部批次及在制品分布
func (r *BatchRepository) ListAllWithWip(tenantID string) ([]entity.Batch, error) {
	var batches []entity.Batch
	err := r.db.Where("tenant_id = ? AND deleted_at IS NULL", tenantID).
		Preload("Order.Product").
		Preload("CurrentStage").
		Preload("WipInventories.Stage").
		Order("created_at DESC").
		Find(&batches).Error
	return batches, err
}

func (r *BatchRepository) Update(batch *entity.Batch) error {
	return r.db.Save(batch).Error
}

func (r *BatchRepository) Delete(tenantID, id string) error {
	return r.db.Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&entity.Batch{}).Error
}

// GetMovement 读取单条流转记录及关联数据
func (r *BatchRepository) GetMovement(tenantID, id string) (*entity.BatchStageMovement, error) {
	var movement entity.BatchStageMovement
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).
		Preload("FromStage").
		Preload("ToStage").
		Preload("Supervisor").
		First(&movement).Error
	return &movement, err
}

// DB 返回底层db用于事务
func (r *BatchRepository) DB() *gorm.DB {
	return r.db
}
