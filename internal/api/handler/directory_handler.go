package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"asset-verify/internal/dto"
	"asset-verify/internal/service"
	"asset-verify/pkg/response"
)

// DirectoryHandler 设备与标签目录 HTTP 处理器
type DirectoryHandler struct {
	directorySvc service.DirectoryService
}

// NewDirectoryHandler 创建 DirectoryHandler
func NewDirectoryHandler(directorySvc service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directorySvc: directorySvc}
}

// CreateDevice 创建设备
// POST /api/devices
func (h *DirectoryHandler) CreateDevice(c *gin.Context) {
	var req dto.CreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	device, err := h.directorySvc.CreateDevice(c.Request.Context(), &req)
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}

	response.Created(c, device)
}

// BindLabel 绑定标签到设备
// POST /api/labels/bind
func (h *DirectoryHandler) BindLabel(c *gin.Context) {
	var req dto.BindLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	label, err := h.directorySvc.BindLabel(c.Request.Context(), &req)
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}

	response.OK(c, label)
}

// GetLabel 查询标签当前绑定
// GET /api/labels/:label_id
func (h *DirectoryHandler) GetLabel(c *gin.Context) {
	labelID := c.Param("label_id")
	if labelID == "" {
		response.BadRequest(c, 10001, "label_id 不能为空")
		return
	}

	binding, err := h.directorySvc.GetActiveBinding(c.Request.Context(), labelID)
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}

	response.OK(c, binding)
}

// DeleteMapping 物理删除绑定
// DELETE /api/admin/mappings?label_id=xxx
func (h *DirectoryHandler) DeleteMapping(c *gin.Context) {
	var q dto.LabelQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "label_id 不能为空")
		return
	}

	if err := h.directorySvc.DeleteBinding(c.Request.Context(), q.LabelID); err != nil {
		h.handleDirectoryError(c, err)
		return
	}

	response.OK(c, gin.H{"label_id": q.LabelID})
}

// DeactivateMapping 停用绑定，保留行
// PUT /api/admin/mappings/deactivate?label_id=xxx
func (h *DirectoryHandler) DeactivateMapping(c *gin.Context) {
	var q dto.LabelQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "label_id 不能为空")
		return
	}

	if err := h.directorySvc.DeactivateBinding(c.Request.Context(), q.LabelID); err != nil {
		h.handleDirectoryError(c, err)
		return
	}

	response.OK(c, gin.H{"label_id": q.LabelID})
}

// ListMappings 列出启用中的绑定
// GET /api/admin/mappings
func (h *DirectoryHandler) ListMappings(c *gin.Context) {
	mappings, err := h.directorySvc.ListActiveMappings(c.Request.Context())
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}

	response.OKList(c, mappings, len(mappings))
}

// VerifyAdmin 校验管理口令；能到达这里说明口令已通过中间件
// GET /api/admin/verify
func (h *DirectoryHandler) VerifyAdmin(c *gin.Context) {
	response.OK(c, gin.H{"valid": true})
}

// handleDirectoryError 统一处理目录模块业务错误
func (h *DirectoryHandler) handleDirectoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptySerial):
		response.BadRequest(c, 12001, "序列号不能为空")
	case errors.Is(err, service.ErrSerialTooLong):
		response.BadRequest(c, 12006, "序列号规范化后超过 255 个字符")
	case errors.Is(err, service.ErrInvalidMfgDate):
		response.BadRequest(c, 12002, "生产日期格式应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrDeviceExists):
		response.BadRequest(c, 12003, "该序列号的设备已存在")
	case errors.Is(err, service.ErrDeviceNotFound):
		response.NotFound(c, 12004, "设备不存在，请先创建设备")
	case errors.Is(err, service.ErrBindingNotFound):
		response.NotFound(c, 12005, "标签不存在或已停用")
	default:
		respondError(c, err)
	}
}
