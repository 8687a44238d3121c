package service

import (
	"errors"
	"fmt"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"gorm.io/gorm"
)

// ProductService 产品档案
type ProductService struct {
	repo *repository.ProductRepository
}

func NewProductService(repo *repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) List(tenantID string) ([]entity.Product, error) {
	return s.repo.List(tenantID)
}

func (s *ProductService) GetByID(tenantID, id string) (*entity.Product, error) {
	product, err := s.repo.GetByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("产品不存在: %w", ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

// CreateProductRequest 创建产品请求
type CreateProductRequest struct {
	ProductName        string  `json:"product_name" binding:"required"`
	Color              string  `json:"color"`
	SKU                string  `json:"sku"`
	WeightKg           float64 `json:"weight_kg" binding:"omitempty,gte=0"`
	UnitPrice          float64 `json:"unit_price" binding:"omitempty,gte=0"`
	ConsumptionFormula string  `json:"consumption_formula"`
	Description        string  `json:"description"`
}

func (s *ProductService) Create(tenantID string, req CreateProductRequest) (*entity.Product, error) {
	product := &entity.Product{
		TenantID:           tenantID,
		ProductName:        req.ProductName,
		Color:              req.Color,
		SKU:                req.SKU,
		WeightKg:           req.WeightKg,
		UnitPrice:          req.UnitPrice,
		ConsumptionFormula: req.ConsumptionFormula,
		Description:        req.Description,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, fmt.Errorf("创建产品失败: %w", err)
	}
	return product, nil
}

// UpdateProductRequest 更新产品请求
type UpdateProductRequest struct {
	ProductName        *string  `json:"product_name"`
	Color              *string  `json:"color"`
	SKU                *string  `json:"sku"`
	WeightKg           *float64 `json:"weight_kg" binding:"omitempty,gte=0"`
	UnitPrice          *float64 `json:"unit_price" binding:"omitempty,gte=0"`
	ConsumptionFormula *string  `json:"consumption_formula"`
	Description        *string  `json:"description"`
}

func (s *ProductService) Update(tenantID, id string, req UpdateProductRequest) (*entity.Product, error) {
	product, err := s.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.ProductName != nil {
		product.ProductName = *req.ProductName
	}
	if req.Color != nil {
		product.Color = *req.Color
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.WeightKg != nil {
		product.WeightKg = *req.WeightKg
	}
	if req.UnitPrice != nil {
		product.UnitPrice = *req.UnitPrice
	}
	if req.ConsumptionFormula != nil {
		product.ConsumptionFormula = *req.ConsumptionFormula
	}
	if req.Description != nil {
		product.Description = *req.Description
	}

	if err := s.repo.Update(product); err != nil {
		return nil, fmt.Errorf("更新产品失败: %w", err)
	}
	return product, nil
}

func (s *ProductService) Delete(tenantID, id string) error {
	if _, err := s.GetByID(tenantID, id); err != nil {
		return err
	}
	return s.repo.Delete(tenantID, id)
}
