package handler

import (
	"go.uber.org/zap"

	"ferrum/backend/internal/service"
	"ferrum/backend/pkg/jwt"
)

// Handler HTTP 处理器聚合
type Handler struct {
	Auth     *AuthHandler
	Resource *ResourceHandler
	Order    *OrderHandler
	Product  *ProductHandler
	Planning *PlanningHandler
	Export   *ExportHandler
}

// New 创建处理器聚合实例
func New(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth, logger),
		Resource: NewResourceHandler(svc.Resource, logger),
		Order:    NewOrderHandler(svc.Order, logger),
		Product:  NewProductHandler(svc.Product, logger),
		Planning: NewPlanningHandler(svc.Planning, logger),
		Export:   NewExportHandler(svc.Export, logger),
	}
}

// ── context 取值辅助 ──

// mustGetClaims 从 gin.Context 取认证声明（Auth 中间件保证存在）
func mustGetClaims(v interface{}) *jwt.Claims {
	claims, _ := v.(*jwt.Claims)
	return claims
}
