package repository

import (
	"time"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(order *entity.Order) error {
	return r.db.Create(order).Error
}

func (r *OrderRepository) GetByID(tenantID, id string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.Where("tenant_id = ? AND id = ? AND deleted_at IS NULL", tenantID, id).
		Preload("Product").
		Preload("Batches.CurrentStage").
		First(&order).Error
	return &order, err
}

func (r *OrderRepository) List(tenantID string) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.Where("tenant_id = ? AND deleted_at IS NULL", tenantID).
		Preload("Product").
		Preload("Batches.CurrentStage").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) Update(order *entity.Order) error {
	return r.db.Save(order).Error
}

// OrderStats 订单统计
type OrderStats struct {
	Total              int64 `json:"total"`
	Pending            int64 `json:"pending"`
	InProduction       int64 `json:"in_production"`
	CompletedThisMonth int64 `json:"completed"`
}

// Stats 订单看板统计：总数、待产、在产、本月完成
func (r *OrderRepository) Stats(tenantID string, now time.Time) (*OrderStats, error) {
	base := func() *gorm.DB {
		return r.db.Model(&entity.Order{}).Where("tenant_id = ? AND deleted_at IS NULL", tenantID)
	}
	var stats OrderStats
	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", entity.OrderStatusPending).Count(&stats.Pending).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", entity.OrderStatusInProduction).Count(&stats.InProduction).Error; err != nil {
		return nil, err
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if err := base().Where("status = ? AND created_at >= ?", entity.OrderStatusCompleted, monthStart).
		Count(&stats.CompletedThisMonth).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
