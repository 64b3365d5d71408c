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

// ── 产品模块业务错误 ──

var (
	ErrProductNotFound        = errors.New("产品不存在")
	ErrProductOrderNotFound   = errors.New("产品所属订单不存在")
	ErrProductStartDateFormat = errors.New("开工日期格式无效，应为 YYYY-MM-DD")
)

// ProductService 产品业务接口
type ProductService interface {
	Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProductResponse, error)
	List(ctx context.Context, req *dto.ProductListRequest) ([]dto.ProductResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	repo   *repository.Repository
	rdb    *redis.Client // 可为 nil
	logger *zap.Logger
}

// NewProductService 创建 ProductService 实例
func NewProductService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) ProductService {
	return &productService{repo: repo, rdb: rdb, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *productService) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.OrderID != nil && *req.OrderID != "" {
		if _, err := s.repo.Order.GetByID(ctx, *req.OrderID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductOrderNotFound
			}
			s.logger.Error("校验所属订单失败", zap.Error(err))
			return nil, err
		}
	}

	product := &model.Product{
		OrderID:   req.OrderID,
		Name:      req.Name,
		Quantity:  req.Quantity,
		StartDate: req.StartDate,
		Status:    model.ProductStatusActive,
		IsResale:  req.IsResale,
	}
	product.Operations = toOperationModels(req.Operations)

	if err := s.repo.Product.Create(ctx, product); err != nil {
		s.logger.Error("创建产品失败", zap.Error(err))
		return nil, err
	}

	s.invalidateSnapshots(ctx)
	return toProductResponse(product), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *productService) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := s.repo.Product.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		s.logger.Error("查询产品失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toProductResponse(product), nil
}

// ────────────────────── List ──────────────────────

func (s *productService) List(ctx context.Context, req *dto.ProductListRequest) ([]dto.ProductResponse, int64, error) {
	filter := repository.ProductFilter{
		OrderID: req.OrderID,
		Status:  req.Status,
		Offset:  req.GetOffset(),
		Limit:   req.GetPageSize(),
	}

	products, total, err := s.repo.Product.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出产品失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, *toProductResponse(&products[i]))
	}

	return result, total, nil
}

// ────────────────────── Update ──────────────────────

// Update 更新产品。Operations 非 nil 时在单事务内整体替换工序；
// StartDate 传空字符串表示清除开工日期
func (s *productService) Update(ctx context.Context, id string, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.repo.Product.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		s.logger.Error("查询产品失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.OrderID != nil {
		if *req.OrderID != "" {
			if _, err := s.repo.Order.GetByID(ctx, *req.OrderID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrProductOrderNotFound
				}
				s.logger.Error("校验所属订单失败", zap.Error(err))
				return nil, err
			}
			product.OrderID = req.OrderID
		} else {
			product.OrderID = nil
		}
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.StartDate != nil {
		if *req.StartDate != "" {
			if _, ok := parsePlanningDate(*req.StartDate); !ok {
				return nil, ErrProductStartDateFormat
			}
		}
		product.StartDate = *req.StartDate
	}
	if req.Status != nil {
		product.Status = *req.Status
	}
	if req.IsResale != nil {
		product.IsResale = *req.IsResale
	}

	// 先替换工序再保存本体，工序替换失败时产品字段不落库
	if req.Operations != nil {
		ops := toOperationModels(req.Operations)
		if err := s.repo.Product.ReplaceOperations(ctx, product.ProductID, ops); err != nil {
			s.logger.Error("替换产品工序失败", zap.String("id", id), zap.Error(err))
			return nil, err
		}
		product.Operations = ops
	}

	if err := s.repo.Product.Update(ctx, product); err != nil {
		s.logger.Error("更新产品失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidateSnapshots(ctx)
	return toProductResponse(product), nil
}

// ────────────────────── Delete ──────────────────────

func (s *productService) Delete(ctx context.Context, id string) error {
	_, err := s.repo.Product.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		s.logger.Error("查询产品失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Product.Delete(ctx, id); err != nil {
		s.logger.Error("删除产品失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.invalidateSnapshots(ctx)
	return nil
}

// ── 内部辅助方法 ──

func (s *productService) invalidateSnapshots(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.InvalidateSnapshots(ctx); err != nil {
		s.logger.Warn("清除看板快照失败", zap.Error(err))
	}
}

func toOperationModels(inputs []dto.OperationInput) []model.Operation {
	ops := make([]model.Operation, 0, len(inputs))
	for i, in := range inputs {
		ops = append(ops, model.Operation{
			Name:           in.Name,
			MinutesPerUnit: in.MinutesPerUnit,
			ActualMinutes:  in.ActualMinutes,
			ResourceIDs:    model.UUIDArray(in.ResourceIDs),
			SortOrder:      i,
		})
	}
	return ops
}

// toProductResponse 产品实体转响应体（订单/产品服务共用）
func toProductResponse(product *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:        product.ProductID,
		OrderID:   product.OrderID,
		Name:      product.Name,
		Quantity:  product.Quantity,
		StartDate: product.StartDate,
		Status:    product.Status,
		IsResale:  product.IsResale,
		CreatedAt: product.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: product.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}

	for i := range product.Operations {
		op := &product.Operations[i]
		resp.Operations = append(resp.Operations, dto.OperationResponse{
			ID:             op.OperationID,
			Name:           op.Name,
			MinutesPerUnit: op.MinutesPerUnit,
			ActualMinutes:  op.ActualMinutes,
			ResourceIDs:    []string(op.ResourceIDs),
		})
	}

	return resp
}
