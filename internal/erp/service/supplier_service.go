package service

import (
	"errors"
	"fmt"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"gorm.io/gorm"
)

// SupplierService 供应商档案
type SupplierService struct {
	repo *repository.SupplierRepository
}

func NewSupplierService(repo *repository.SupplierRepository) *SupplierService {
	return &SupplierService{repo: repo}
}

func (s *SupplierService) List(tenantID string) ([]entity.Supplier, error) {
	return s.repo.List(tenantID)
}

func (s *SupplierService) GetByID(tenantID, id string) (*entity.Supplier, error) {
	supplier, err := s.repo.GetByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("供应商不存在: %w", ErrNotFound)
		}
		return nil, err
	}
	return supplier, nil
}

// CreateSupplierRequest 创建供应商请求
type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
}

func (s *SupplierService) Create(tenantID string, req CreateSupplierRequest) (*entity.Supplier, error) {
	supplier := &entity.Supplier{
		TenantID:      tenantID,
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
	}
	if err := s.repo.Create(supplier); err != nil {
		return nil, fmt.Errorf("创建供应商失败: %w", err)
	}
	return supplier, nil
}

func (s *SupplierService) Delete(tenantID, id string) error {
	if _, err := s.GetByID(tenantID, id); err != nil {
		return err
	}
	return s.repo.Delete(tenantID, id)
}
