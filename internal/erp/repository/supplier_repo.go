package repository

import (
	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"gorm.io/gorm"
)

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) GetByID(tenantID, id string) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.Where("tenant_id = ? AND id = ? AND deleted_at IS NULL", tenantID, id).
		First(&supplier).Error
	return &supplier, err
}

func (r *SupplierRepository) List(tenantID string) ([]entity.Supplier, error) {
	var suppliers []entity.Supplier
	err := r.db.Where("tenant_id = ? AND deleted_at IS NULL", tenantID).
		Order("name ASC").
		Find(&suppliers).Error
	return suppliers, err
}

func (r *SupplierRepository) Create(supplier *entity.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *SupplierRepository) Update(supplier *entity.Supplier) error {
	return r.db.Save(supplier).Error
}

func (r *SupplierRepository) Delete(tenantID, id string) error {
	return r.db.Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&entity.Supplier{}).Error
}
