package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"asset-verify/internal/dto"
	"asset-verify/internal/service"
	"asset-verify/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HistoryHandler 事件与分组历史 HTTP 处理器
type HistoryHandler struct {
	historySvc service.HistoryService
	exportSvc  service.ExportService
}

// NewHistoryHandler 创建 HistoryHandler
func NewHistoryHandler(historySvc service.HistoryService, exportSvc service.ExportService) *HistoryHandler {
	return &HistoryHandler{historySvc: historySvc, exportSvc: exportSvc}
}

// ListEvents 最近的核验事件
// GET /api/events?limit=100
func (h *HistoryHandler) ListEvents(c *gin.Context) {
	var req dto.EventListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "limit 必须为正整数")
		return
	}

	events, err := h.historySvc.ListEvents(c.Request.Context(), req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OKList(c, events, len(events))
}

// GroupedHistory 按设备分组的访问记录
// GET /api/history/grouped?limit=100
func (h *HistoryHandler) GroupedHistory(c *gin.Context) {
	var req dto.EventListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "limit 必须为正整数")
		return
	}

	groups, err := h.historySvc.GroupedHistory(c.Request.Context(), req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OKList(c, groups, len(groups))
}

// ExportGroupedHistory 导出分组历史
// GET /api/history/grouped/export?limit=100
func (h *HistoryHandler) ExportGroupedHistory(c *gin.Context) {
	var req dto.EventListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "limit 必须为正整数")
		return
	}

	buf, filename, err := h.exportSvc.ExportGroupedHistory(c.Request.Context(), req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	// 设置下载响应头
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
