package service

import (
	"errors"
	"fmt"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"gorm.io/gorm"
)

// SettingsService 租户级配置（耗料模式等）
type SettingsService struct {
	tenantRepo *repository.TenantRepository
}

func NewSettingsService(tenantRepo *repository.TenantRepository) *SettingsService {
	return &SettingsService{tenantRepo: tenantRepo}
}

// ProductionSettings 生产配置
type ProductionSettings struct {
	LeatherConsumptionMode string `json:"leather_consumption_mode"`
}

func (s *SettingsService) GetProductionSettings(tenantID string) (*ProductionSettings, error) {
	tenant, err := s.tenantRepo.GetByID(tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("租户不存在: %w", ErrNotFound)
		}
		return nil, err
	}
	return &ProductionSettings{LeatherConsumptionMode: tenant.LeatherConsumptionMode}, nil
}

// UpdateSettingsRequest 更新生产配置
type UpdateSettingsRequest struct {
	LeatherConsumptionMode string `json:"leather_consumption_mode" binding:"required,oneof=formula manual hybrid"`
}

func (s *SettingsService) UpdateProductionSettings(tenantID string, req UpdateSettingsRequest) (*ProductionSettings, error) {
	tenant, err := s.tenantRepo.GetByID(tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("租户不存在: %w", ErrNotFound)
		}
		return nil, err
	}

	tenant.LeatherConsumptionMode = req.LeatherConsumptionMode
	if err := s.tenantRepo.Update(tenant); err != nil {
		return nil, fmt.Errorf("更新配置失败: %w", err)
	}
	return &ProductionSettings{LeatherConsumptionMode: tenant.LeatherConsumptionMode}, nil
}
