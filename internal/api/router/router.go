package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cosmoport/config"
	"cosmoport/internal/api/handler"
	"cosmoport/internal/api/middleware"
	"cosmoport/pkg/jwt"
	"cosmoport/pkg/redis"
)

// maxBodyBytes 单个飞船的 JSON 请求体上限
const maxBodyBytes = 64 << 10

// Setup 初始化并返回 Gin 路由引擎
// jwtMgr 为 nil 时写接口不做认证；rdb 为 nil 时限流降级为进程内计数
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── 飞船目录 ──
	ships := r.Group("/rest/ships")
	{
		ships.GET("", h.Ship.ListShips)
		ships.GET("/count", h.Ship.CountShips)
		ships.GET("/export", h.Export.ExportShips)
		ships.GET("/:id", h.Ship.GetShip)

		writes := ships.Group("")
		writes.Use(middleware.RateLimit(rdb, cfg.RateLimit.WritesPerMinute, time.Minute))
		if jwtMgr != nil {
			writes.Use(middleware.OperatorAuth(jwtMgr))
		}
		{
			writes.POST("", h.Ship.CreateShip)
			writes.POST("/:id", h.Ship.UpdateShip)
			writes.DELETE("/:id", h.Ship.DeleteShip)
		}
	}

	return r
}
