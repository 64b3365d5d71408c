package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ferrum/backend/internal/dto"
	"ferrum/backend/internal/service"
	"ferrum/backend/pkg/response"
)

// ProductHandler 产品接口处理器
type ProductHandler struct {
	svc    service.ProductService
	logger *zap.Logger
}

// NewProductHandler 创建 ProductHandler 实例
func NewProductHandler(svc service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, logger: logger}
}

// Create 创建产品
// POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "请求参数无效")
		return
	}

	product, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleProductError(c, err)
		return
	}

	response.Created(c, product)
}

// Get 产品详情（含工序）
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleProductError(c, err)
		return
	}

	response.OK(c, product)
}

// List 产品分页列表
// GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 40001, "请求参数无效")
		return
	}

	products, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleProductError(c, err)
		return
	}

	response.OKPage(c, products, total, req.GetPage(), req.GetPageSize())
}

// Update 更新产品（Operations 非 null 时整体替换工序）
// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "请求参数无效")
		return
	}

	product, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleProductError(c, err)
		return
	}

	response.OK(c, product)
}

// Delete 删除产品
// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleProductError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ProductHandler) handleProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		response.NotFound(c, 40404, err.Error())
	case errors.Is(err, service.ErrProductOrderNotFound):
		response.BadRequest(c, 40005, err.Error())
	case errors.Is(err, service.ErrProductStartDateFormat):
		response.BadRequest(c, 40006, err.Error())
	default:
		h.logger.Error("产品接口内部错误", zap.Error(err))
		response.InternalError(c)
	}
}
