package repository

import (
	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"gorm.io/gorm"
)

type StageRepository struct {
	db *gorm.DB
}

func NewStageRepository(db *gorm.DB) *StageRepository {
	return &StageRepository{db: db}
}

func (r *StageRepository) GetByID(id string) (*entity.ProductionStage, error) {
	var stage entity.ProductionStage
	err := r.db.Where("id = ?", id).First(&stage).Error
	return &stage, err
}

// ListActive 获取启用的工序，按流水线顺序排列
func (r *StageRepository) ListActive() ([]entity.ProductionStage, error) {
	var stages []entity.ProductionStage
	err := r.db.Where("is_active = ?", true).Order("sort_order ASC").Find(&stages).Error
	return stages, err
}

// FirstActive 流水线第一道启用工序（批次创建时的初始工序）
func (r *StageRepository) FirstActive() (*entity.ProductionStage, error) {
	var stage entity.ProductionStage
	err := r.db.Where("is_active = ?", true).Order("sort_order ASC").First(&stage).Error
	if err != nil {
		return nil, err
	}
	return &stage, nil
}

func (r *StageRepository) Create(stage *entity.ProductionStage) error {
	return r.db.Create(stage).Error
}

func (r *StageRepository) Update(stage *entity.ProductionStage) error {
	return r.db.Save(stage).Error
}
