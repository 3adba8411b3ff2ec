package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// 扫码前端需要发送管理口令并读取导出文件名与追踪 ID
var (
	corsAllowHeaders  = strings.Join([]string{"Content-Type", "Authorization", AdminPinHeader, RequestIDHeader}, ", ")
	corsAllowMethods  = strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}, ", ")
	corsExposeHeaders = strings.Join([]string{"Content-Disposition", RequestIDHeader}, ", ")
)

// CORS 跨域中间件
// 只回显白名单内的 Origin；来自未知 Origin 的预检请求返回 403
func CORS(allowOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowOrigins))
	for _, o := range allowOrigins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		_, ok := allowed[origin]
		preflight := c.Request.Method == http.MethodOptions

		if origin != "" {
			c.Writer.Header().Add("Vary", "Origin")
		}
		if ok {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Expose-Headers", corsExposeHeaders)
		}

		if !preflight {
			c.Next()
			return
		}
		if origin != "" && !ok {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		if ok {
			c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
			c.Header("Access-Control-Allow-Methods", corsAllowMethods)
			c.Header("Access-Control-Max-Age", "86400")
		}
		c.AbortWithStatus(http.StatusNoContent)
	}
}
