package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"asset-verify/config"
	"asset-verify/internal/api/handler"
	"asset-verify/internal/api/middleware"
	"asset-verify/internal/policy"
	"asset-verify/pkg/jwt"
	"asset-verify/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可以为 nil，此时限流降级放行
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	p *policy.AccessPolicy,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查与指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// 认证模块（登录限流）
		auth := api.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, cfg.RateLimit.LoginPerMinute, time.Minute, logger), h.Auth.Login)
			auth.POST("/change-password", middleware.RateLimit(rdb, cfg.RateLimit.LoginPerMinute, time.Minute, logger), h.Auth.ChangePassword)
		}

		// 核验（公开，限流）
		api.POST("/verify", middleware.RateLimit(rdb, cfg.RateLimit.VerifyPerMinute, time.Minute, logger), h.Verification.Verify)

		// 标签查询（公开）
		api.GET("/labels/:label_id", h.Directory.GetLabel)

		// 目录写入（管理口令）
		adminOnly := middleware.AdminAuth(p)
		api.POST("/devices", adminOnly, h.Directory.CreateDevice)
		api.POST("/labels/bind", adminOnly, h.Directory.BindLabel)

		admin := api.Group("/admin")
		admin.Use(adminOnly)
		{
			admin.GET("/verify", h.Directory.VerifyAdmin)
			admin.GET("/mappings", h.Directory.ListMappings)
			admin.DELETE("/mappings", h.Directory.DeleteMapping)
			admin.PUT("/mappings/deactivate", h.Directory.DeactivateMapping)
		}

		// 访问记录（员工令牌 + 查看名单）
		history := api.Group("")
		history.Use(middleware.JWTAuth(jwtMgr), middleware.HistoryAuth(p))
		{
			history.GET("/events", h.History.ListEvents)
			history.GET("/history/grouped", h.History.GroupedHistory)
			history.GET("/history/grouped/export", h.History.ExportGroupedHistory)
		}
	}

	return r
}
