package repository

import (
	"context"

	"gorm.io/gorm"

	"ferrum/backend/internal/model"
)

// ResourceRepository 生产资源数据访问接口
type ResourceRepository interface {
	Create(ctx context.Context, res *model.Resource) error
	GetByID(ctx context.Context, id string) (*model.Resource, error)
	List(ctx context.Context, includeFired bool) ([]model.Resource, error)
	Update(ctx context.Context, res *model.Resource) error
	Delete(ctx context.Context, id string) error
}

type resourceRepo struct {
	db *gorm.DB
}

// NewResourceRepo 创建 ResourceRepository 实例
func NewResourceRepo(db *gorm.DB) ResourceRepository {
	return &resourceRepo{db: db}
}

func (r *resourceRepo) Create(ctx context.Context, res *model.Resource) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *resourceRepo) GetByID(ctx context.Context, id string) (*model.Resource, error) {
	var res model.Resource
	err := r.db.WithContext(ctx).
		Where("resource_id = ?", id).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resourceRepo) List(ctx context.Context, includeFired bool) ([]model.Resource, error) {
	var resources []model.Resource
	db := r.db.WithContext(ctx)

	if !includeFired {
		db = db.Where("status = ?", model.ResourceStatusActive)
	}

	err := db.Order("name ASC").Find(&resources).Error
	return resources, err
}

func (r *resourceRepo) Update(ctx context.Context, res *model.Resource) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *resourceRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("resource_id = ?", id).
		Delete(&model.Resource{}).Error
}
