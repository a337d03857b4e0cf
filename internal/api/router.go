package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeBuilder/internal/api/middleware"
	"resumeBuilder/internal/metrics"
	"resumeBuilder/internal/render"
)

// NewRouter 构建 Gin 路由引擎，挂载通用中间件、静态资源、健康检查与指标端点。
func NewRouter(renderer *render.Renderer, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.CorrelationIDMiddleware(),
		middleware.SlogLoggerMiddleware(logger),
		metrics.GinMiddleware(),
	)
	router.SetHTMLTemplate(renderer.Templates())
	router.StaticFS("/static", http.FS(render.StaticFS()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return router
}
