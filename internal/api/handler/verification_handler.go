package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"asset-verify/internal/dto"
	"asset-verify/internal/service"
	"asset-verify/pkg/response"
)

// VerificationHandler 核验模块 HTTP 处理器
type VerificationHandler struct {
	verificationSvc service.VerificationService
}

// NewVerificationHandler 创建 VerificationHandler
func NewVerificationHandler(verificationSvc service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationSvc: verificationSvc}
}

// Verify 标签核验
// POST /api/verify
//
// FAIL 也是正常的业务结果，返回 200
func (h *VerificationHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.verificationSvc.Verify(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMethod) {
			response.BadRequest(c, 13001, "核验方式必须为 SCAN、MANUAL 或 URL_REDIRECT")
			return
		}
		respondError(c, err)
		return
	}

	response.OK(c, result)
}
