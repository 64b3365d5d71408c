package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ferrum/backend/internal/dto"
	"ferrum/backend/internal/model"
	"ferrum/backend/internal/repository"
	"ferrum/backend/pkg/redis"
)

// ── 资源模块业务错误 ──

var (
	ErrResourceNotFound = errors.New("资源不存在")
)

// ResourceService 生产资源业务接口
type ResourceService interface {
	Create(ctx context.Context, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ResourceResponse, error)
	List(ctx context.Context, req *dto.ResourceListRequest) ([]dto.ResourceResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateResourceRequest) (*dto.ResourceResponse, error)
	Delete(ctx context.Context, id string) error
}

type resourceService struct {
	repo   *repository.Repository
	rdb    *redis.Client // 可为 nil
	logger *zap.Logger
}

// NewResourceService 创建 ResourceService 实例
func NewResourceService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) ResourceService {
	return &resourceService{repo: repo, rdb: rdb, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *resourceService) Create(ctx context.Context, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	res := &model.Resource{
		Name:        req.Name,
		HoursPerDay: 8,
		Status:      model.ResourceStatusActive,
	}
	if req.HoursPerDay != nil {
		res.HoursPerDay = *req.HoursPerDay
	}

	if err := s.repo.Resource.Create(ctx, res); err != nil {
		s.logger.Error("创建资源失败", zap.Error(err))
		return nil, err
	}

	s.invalidateSnapshots(ctx)
	return s.toResourceResponse(res), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *resourceService) GetByID(ctx context.Context, id string) (*dto.ResourceResponse, error) {
	res, err := s.repo.Resource.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		s.logger.Error("查询资源失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toResourceResponse(res), nil
}

// ────────────────────── List ──────────────────────

func (s *resourceService) List(ctx context.Context, req *dto.ResourceListRequest) ([]dto.ResourceResponse, error) {
	resources, err := s.repo.Resource.List(ctx, req.IncludeFired)
	if err != nil {
		s.logger.Error("列出资源失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ResourceResponse, 0, len(resources))
	for i := range resources {
		result = append(result, *s.toResourceResponse(&resources[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *resourceService) Update(ctx context.Context, id string, req *dto.UpdateResourceRequest) (*dto.ResourceResponse, error) {
	res, err := s.repo.Resource.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		s.logger.Error("查询资源失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		res.Name = *req.Name
	}
	if req.HoursPerDay != nil {
		res.HoursPerDay = *req.HoursPerDay
	}
	if req.Status != nil {
		res.Status = *req.Status
	}

	if err := s.repo.Resource.Update(ctx, res); err != nil {
		s.logger.Error("更新资源失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidateSnapshots(ctx)
	return s.toResourceResponse(res), nil
}

// ────────────────────── Delete ──────────────────────

func (s *resourceService) Delete(ctx context.Context, id string) error {
	_, err := s.repo.Resource.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		s.logger.Error("查询资源失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Resource.Delete(ctx, id); err != nil {
		s.logger.Error("删除资源失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.invalidateSnapshots(ctx)
	return nil
}

// ── 内部辅助方法 ──

func (s *resourceService) invalidateSnapshots(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.InvalidateSnapshots(ctx); err != nil {
		s.logger.Warn("清除看板快照失败", zap.Error(err))
	}
}

func (s *resourceService) toResourceResponse(res *model.Resource) *dto.ResourceResponse {
	return &dto.ResourceResponse{
		ID:          res.ResourceID,
		Name:        res.Name,
		HoursPerDay: res.HoursPerDay,
		Status:      res.Status,
		CreatedAt:   res.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   res.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
