package service

import (
	"go.uber.org/zap"

	"ferrum/backend/config"
	"ferrum/backend/internal/repository"
	"ferrum/backend/pkg/jwt"
	"ferrum/backend/pkg/redis"
)

// Service 业务层聚合
type Service struct {
	Auth     AuthService
	Resource ResourceService
	Order    OrderService
	Product  ProductService
	Planning PlanningService
	Export   ExportService
}

// New 创建业务层聚合实例
// rdb 允许为 nil：缓存与黑名单功能整体降级，核心业务不受影响
func New(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	planning := NewPlanningService(cfg, repo, rdb, logger)

	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Resource: NewResourceService(repo, rdb, logger),
		Order:    NewOrderService(repo, rdb, logger),
		Product:  NewProductService(repo, rdb, logger),
		Planning: planning,
		Export:   NewExportService(planning, logger),
	}
}
