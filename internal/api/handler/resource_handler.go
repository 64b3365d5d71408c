package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ferrum/backend/internal/dto"
	"ferrum/backend/internal/service"
	"ferrum/backend/pkg/response"
)

// ResourceHandler 生产资源接口处理器
type ResourceHandler struct {
	svc    service.ResourceService
	logger *zap.Logger
}

// NewResourceHandler 创建 ResourceHandler 实例
func NewResourceHandler(svc service.ResourceService, logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{svc: svc, logger: logger}
}

// Create 创建资源
// POST /api/v1/resources
func (h *ResourceHandler) Create(c *gin.Context) {
	var req dto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "请求参数无效")
		return
	}

	res, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.Created(c, res)
}

// Get 资源详情
// GET /api/v1/resources/:id
func (h *ResourceHandler) Get(c *gin.Context) {
	res, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.OK(c, res)
}

// List 资源列表
// GET /api/v1/resources
func (h *ResourceHandler) List(c *gin.Context) {
	var req dto.ResourceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 40001, "请求参数无效")
		return
	}

	resources, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.OK(c, resources)
}

// Update 更新资源
// PUT /api/v1/resources/:id
func (h *ResourceHandler) Update(c *gin.Context) {
	var req dto.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "请求参数无效")
		return
	}

	res, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.OK(c, res)
}

// Delete 删除资源
// DELETE /api/v1/resources/:id
func (h *ResourceHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ResourceHandler) handleResourceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrResourceNotFound):
		response.NotFound(c, 40402, err.Error())
	default:
		h.logger.Error("资源接口内部错误", zap.Error(err))
		response.InternalError(c)
	}
}
