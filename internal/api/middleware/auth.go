package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"asset-verify/internal/policy"
	"asset-verify/pkg/jwt"
	"asset-verify/pkg/response"
)

// AdminPinHeader 管理口令请求头
const AdminPinHeader = "X-Admin-Pin"

const employeeCodeKey = "employee_code"

// AdminAuth 管理口令中间件
// 口令未配置时拒绝所有请求
func AdminAuth(p *policy.AccessPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !p.AllowAdmin(c.GetHeader(AdminPinHeader)) {
			response.Forbidden(c, 10003, "管理口令无效")
			c.Abort()
			return
		}

		c.Next()
	}
}

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token
func JWTAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		// 将员工信息注入上下文
		c.Set(employeeCodeKey, claims.EmployeeCode)

		c.Next()
	}
}

// HistoryAuth 历史查看名单中间件，需挂在 JWTAuth 之后
func HistoryAuth(p *policy.AccessPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.GetString(employeeCodeKey)
		if code == "" {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		if !p.AllowHistory(code) {
			response.Forbidden(c, 10003, "无权限查看访问记录")
			c.Abort()
			return
		}

		c.Next()
	}
}
