package middleware

import (
	"Moodboard/pkg/metrics"
	"time"

	"github.com/gin-gonic/gin"
)

// PrometheusMiddleware 按路由模板记录请求数和耗时
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		metrics.ObserveHTTP(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
