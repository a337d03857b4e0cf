package api

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册页面路由。
func RegisterRoutes(router *gin.Engine, handler *ResumeHandler) {
	router.GET("/", handler.ShowForm)
	router.POST("/submit", handler.Submit)
	router.GET("/resume/:id", handler.Preview)
	router.POST("/download/:id", handler.Download)

	router.NoRoute(handler.NotFound)
}
