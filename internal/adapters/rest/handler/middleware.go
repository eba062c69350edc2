package handler

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ogurasousui/employee-directory/internal/platform/metrics"
)

const requestIDHeader = "X-Request-ID"

// RequestID はリクエスト ID を採番し、レスポンスヘッダに付与します。
// クライアントが指定した ID はそのまま引き継ぎます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// AccessLog はリクエスト単位のアクセスログを出力します。
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Printf("%s %s status=%d duration=%s request_id=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			c.GetString("request_id"),
		)
	}
}

// Metrics はリクエストメトリクスを記録します。
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
