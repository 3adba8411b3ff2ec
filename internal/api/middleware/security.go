package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// 服务只返回 JSON 与 xlsx，不渲染页面，CSP 可以全部禁止
var securityHeaders = map[string]string{
	"X-Frame-Options":         "DENY",
	"X-Content-Type-Options":  "nosniff",
	"Referrer-Policy":         "no-referrer",
	"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
}

// noStorePrefixes 响应含员工、设备或核验记录，禁止浏览器与代理缓存
var noStorePrefixes = []string{"/api/"}

// SecurityHeaders 安全 HTTP 头中间件
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		for k, v := range securityHeaders {
			h.Set(k, v)
		}
		if sensitivePath(c.Request.URL.Path) {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
		}

		c.Next()
	}
}

func sensitivePath(path string) bool {
	for _, p := range noStorePrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
