package repository

import (
	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) GetByID(tenantID, id string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.Where("tenant_id = ? AND id = ? AND deleted_at IS NULL", tenantID, id).
		First(&product).Error
	return &product, err
}

func (r *ProductRepository) List(tenantID string) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.Where("tenant_id = ? AND deleted_at IS NULL", tenantID).
		Order("product_name ASC").
		Find(&products).Error
	return products, err
}

func (r *ProductRepository) Create(product *entity.Product) error {
	return r.db.Create(product).Error
}

func (r *ProductRepository) Update(product *entity.Product) error {
	return r.db.Save(product).Error
}

func (r *ProductRepository) Delete(tenantID, id string) error {
	return r.db.Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&entity.Product{}).Error
}

// GetCost 产品成本（开票单价优先取成本价）
func (r *ProductRepository) GetCost(tenantID, productID string) (*entity.ProductCost, error) {
	var cost entity.ProductCost
	err := r.db.Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		First(&cost).Error
	if err != nil {
		return nil, err
	}
	return &cost, nil
}
