package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	"github.com/ogurasousui/employee-directory/internal/platform/metrics"
)

// NewRouter はミドルウェアと全ルートを組み立てた gin.Engine を返します。
func NewRouter(svc employee.UseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(), Metrics())

	NewEmployeeHandler(svc).Register(router)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return router
}
