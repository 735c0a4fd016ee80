// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ai-content-api/internal/config"
	"ai-content-api/internal/interfaces/http/dto"
	"ai-content-api/internal/interfaces/http/handler"
	"ai-content-api/internal/interfaces/http/middleware"
)

// Router HTTP 路由器
type Router struct {
	engine  *gin.Engine
	cfg     *config.Config
	content *handler.ContentHandler
	health  *handler.HealthHandler
}

// New 创建新的路由器
func New(cfg *config.Config, contentHandler *handler.ContentHandler, healthHandler *handler.HealthHandler) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	r := &Router{
		engine:  engine,
		cfg:     cfg,
		content: contentHandler,
		health:  healthHandler,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}

	skipPaths := r.cfg.Observability.Logging.SkipPaths
	if skipPaths == nil {
		skipPaths = middleware.DefaultAccessLogSkipPaths
	}
	r.engine.Use(middleware.AccessLog(skipPaths))
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	// 系统端点
	r.engine.GET("/", r.content.Index)
	r.engine.GET("/health", r.health.Health)
	r.engine.GET("/ready", r.health.Ready)
	r.engine.GET("/live", r.health.Live)

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// 内容生成
	r.engine.POST("/generate", r.content.Generate)
	r.engine.GET("/generate", r.content.Generate)
	r.engine.OPTIONS("/generate", r.content.Preflight)
	r.engine.POST("/batch", r.content.Batch)
	r.engine.GET("/test", r.content.Sample)

	r.engine.NoRoute(func(c *gin.Context) {
		dto.NotFound(c, "no route for "+c.Request.URL.Path)
	})
	r.engine.NoMethod(func(c *gin.Context) {
		dto.MethodNotAllowed(c, c.Request.Method+" is not supported on "+c.Request.URL.Path)
	})
}
