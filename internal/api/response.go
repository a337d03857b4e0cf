package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeBuilder/internal/render"
)

const (
	notFoundTitle   = "Not Found"
	notFoundMessage = "The requested resume could not be found."
)

// renderNotFound 渲染 404 页面。
func renderNotFound(c *gin.Context, flashes []string) {
	c.HTML(http.StatusNotFound, render.PageNotFound, render.NotFoundPage{
		Title:   notFoundTitle,
		Flashes: flashes,
		Message: notFoundMessage,
	})
}

func Internal(c *gin.Context, msg string) {
	c.String(http.StatusInternalServerError, msg)
}

func BadRequest(c *gin.Context, msg string) {
	c.String(http.StatusBadRequest, msg)
}
