package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	stageCacheKey = "erp:production_stages:active"
	stageCacheTTL = 10 * time.Minute
)

// StageService 工序目录
// 工序列表基本静态，启用列表走 Redis 缓存，写操作失效缓存。
type StageService struct {
	repo *repository.StageRepository
	rdb  *redis.Client
}

func NewStageService(repo *repository.StageRepository, rdb *redis.Client) *StageService {
	return &StageService{repo: repo, rdb: rdb}
}

// ListActive 启用工序，按流水线顺序
func (s *StageService) ListActive(ctx context.Context) ([]entity.ProductionStage, error) {
	if s.rdb != nil {
		if data, err := s.rdb.Get(ctx, stageCacheKey).Bytes(); err == nil {
			var stages []entity.ProductionStage
			if json.Unmarshal(data, &stages) == nil {
				return stages, nil
			}
		}
	}

	stages, err := s.repo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("读取工序列表失败: %w", err)
	}

	if s.rdb != nil {
		if data, err := json.Marshal(stages); err == nil {
			s.rdb.Set(ctx, stageCacheKey, data, stageCacheTTL)
		}
	}
	return stages, nil
}

func (s *StageService) GetByID(id string) (*entity.ProductionStage, error) {
	stage, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("工序不存在: %w", ErrNotFound)
		}
		return nil, err
	}
	return stage, nil
}

// FirstActive 流水线第一道启用工序
func (s *StageService) FirstActive() (*entity.ProductionStage, error) {
	return s.repo.FirstActive()
}

// CreateStageRequest 新建工序请求
type CreateStageRequest struct {
	Name       string `json:"name" binding:"required"`
	SortOrder  int    `json:"sort_order"`
	IsActive   *bool  `json:"is_active"`
	IsTerminal bool   `json:"is_terminal"`
}

func (s *StageService) Create(ctx context.Context, req CreateStageRequest) (*entity.ProductionStage, error) {
	stage := &entity.ProductionStage{
		Name:       req.Name,
		SortOrder:  req.SortOrder,
		IsActive:   true,
		IsTerminal: req.IsTerminal,
	}
	if req.IsActive != nil {
		stage.IsActive = *req.IsActive
	}
	if err := s.repo.Create(stage); err != nil {
		return nil, fmt.Errorf("创建工序失败: %w", err)
	}
	s.invalidateCache(ctx)
	return stage, nil
}

func (s *StageService) invalidateCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, stageCacheKey)
	}
}
