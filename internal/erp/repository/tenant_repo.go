package repository

import (
	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"gorm.io/gorm"
)

type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) GetByID(id string) (*entity.Tenant, error) {
	var tenant entity.Tenant
	err := r.db.Where("id = ?", id).First(&tenant).Error
	return &tenant, err
}

func (r *TenantRepository) Update(tenant *entity.Tenant) error {
	return r.db.Save(tenant).Error
}

func (r *TenantRepository) GetUser(tenantID, id string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&user).Error
	return &user, err
}
