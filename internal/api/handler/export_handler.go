package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ferrum/backend/internal/dto"
	"ferrum/backend/internal/service"
	"ferrum/backend/pkg/response"
)

// ExportHandler 看板导出接口处理器
type ExportHandler struct {
	svc    service.ExportService
	logger *zap.Logger
}

// NewExportHandler 创建 ExportHandler 实例
func NewExportHandler(svc service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, logger: logger}
}

// BoardXLSX 导出排程看板 Excel
// GET /api/v1/export/board.xlsx?date=&days=
func (h *ExportHandler) BoardXLSX(c *gin.Context) {
	var req dto.PlanningBoardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 40001, "请求参数无效")
		return
	}

	buf, err := h.svc.BoardXLSX(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	filename := fmt.Sprintf("planning-board-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// DeadlineICS 导出订单截止日期 iCalendar 订阅源
// GET /api/v1/export/deadlines.ics?date=
func (h *ExportHandler) DeadlineICS(c *gin.Context) {
	buf, err := h.svc.DeadlineICS(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="order-deadlines.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanningDateInvalid):
		response.BadRequest(c, 40007, err.Error())
	default:
		h.logger.Error("导出接口内部错误", zap.Error(err))
		response.InternalError(c)
	}
}
