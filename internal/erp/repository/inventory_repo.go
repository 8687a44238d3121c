package repository

import (
	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeatherRepository struct {
	db *gorm.DB
}

func NewLeatherRepository(db *gorm.DB) *LeatherRepository {
	return &LeatherRepository{db: db}
}

// AvailableLots 可用皮革库存批次，按采购日期升序（FIFO，先耗最旧的库存）
// 在扣减事务内调用，对行加锁防止并发扣减超卖。
func (r *LeatherRepository) AvailableLots(tx *gorm.DB, tenantID string) ([]entity.LeatherInventory, error) {
	var lots []entity.LeatherInventory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND deleted_at IS NULL AND quantity_sqft - consumption_reduction > 0", tenantID).
		Order("purchase_date ASC").
		Find(&lots).Error
	return lots, err
}

func (r *LeatherRepository) GetByID(tenantID, id string) (*entity.LeatherInventory, error) {
	var lot entity.LeatherInventory
	err := r.db.Where("tenant_id = ? AND id = ? AND deleted_at IS NULL", tenantID, id).
		First(&lot).Error
	return &lot, err
}

// ListWithRelations 库存列表及关联数据（供应商、调整记录）
func (r *LeatherRepository) ListWithRelations(tenantID string) ([]entity.LeatherInventory, error) {
	var lots []entity.LeatherInventory
	err := r.db.Where("tenant_id = ? AND deleted_at IS NULL", tenantID).
		Preload("Supplier").
		Preload("Adjustments.AdjustedByUser").
		Order("purchase_date ASC").
		Find(&lots).Error
	return lots, err
}

func (r *LeatherRepository) Create(lot *entity.LeatherInventory) error {
	return r.db.Create(lot).Error
}

func (r *LeatherRepository) Update(lot *entity.LeatherInventory) error {
	return r.db.Save(lot).Error
}

func (r *LeatherRepository) Delete(tenantID, id string) error {
	return r.db.Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&entity.LeatherInventory{}).Error
}

func (r *LeatherRepository) CreateAdjustment(adj *entity.LeatherInventoryAdjustment) error {
	return r.db.Create(adj).Error
}

// ListConsumptionLogs 批次的皮革消耗流水
func (r *LeatherRepository) ListConsumptionLogs(tenantID, batchID string) ([]entity.LeatherConsumptionLog, error) {
	var logs []entity.LeatherConsumptionLog
	err := r.db.Where("tenant_id = ? AND batch_id = ?", tenantID, batchID).
		Preload("LeatherInventory").
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}

// DB 返回底层db用于事务
func (r *LeatherRepository) DB() *gorm.DB {
	return r.db
}

type AccessoriesRepository struct {
	db *gorm.DB
}

func NewAccessoriesRepository(db *gorm.DB) *AccessoriesRepository {
	return &AccessoriesRepository{db: db}
}

func (r *AccessoriesRepository) GetByID(tenantID, id string) (*entity.AccessoriesInventory, error) {
	var item entity.AccessoriesInventory
	err := r.db.Where("tenant_id = ? AND id = ? AND deleted_at IS NULL", tenantID, id).
		First(&item).Error
	return &item, err
}

// GetForUpdate 在扣减事务内对辅料行加锁
func (r *AccessoriesRepository) GetForUpdate(tx *gorm.DB, tenantID, id string) (*entity.AccessoriesInventory, error) {
	var item entity.AccessoriesInventory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ? AND deleted_at IS NULL", tenantID, id).
		First(&item).Error
	return &item, err
}

func (r *AccessoriesRepository) List(tenantID string) ([]entity.AccessoriesInventory, error) {
	var items []entity.AccessoriesInventory
	err := r.db.Where("tenant_id = ? AND deleted_at IS NULL", tenantID).
		Preload("ConsumptionLogs").
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *AccessoriesRepository) Create(item *entity.AccessoriesInventory) error {
	return r.db.Create(item).Error
}

func (r *AccessoriesRepository) Update(item *entity.AccessoriesInventory) error {
	return r.db.Save(item).Error
}

func (r *AccessoriesRepository) Delete(tenantID, id string) error {
	return r.db.Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&entity.AccessoriesInventory{}).Error
}

// DB 返回底层db用于事务
func (r *AccessoriesRepository) DB() *gorm.DB {
	return r.db
}
