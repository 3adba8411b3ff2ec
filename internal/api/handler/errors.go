package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "asset-verify/pkg/errors"
	"asset-verify/pkg/response"
)

// respondError 按错误分类兜底映射：
// VALIDATION / CONFLICT → 400，NOT_FOUND → 404，UNAUTHORIZED → 401，其余 → 500
func respondError(c *gin.Context, err error) {
	switch kind := pkgerrors.Kind(err); {
	case errors.Is(kind, pkgerrors.ErrValidation), errors.Is(kind, pkgerrors.ErrConflict):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(kind, pkgerrors.ErrNotFound):
		response.NotFound(c, 10006, err.Error())
	case errors.Is(kind, pkgerrors.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, 10002, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
