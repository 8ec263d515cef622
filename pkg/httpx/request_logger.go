package httpx

import (
	"strconv"
	"time"

	"github.com/Gunvolt24/fiveka-shop/internal/ports"
	"github.com/Gunvolt24/fiveka-shop/pkg/ctxmeta"
	"github.com/Gunvolt24/fiveka-shop/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// RequestLogger — access-лог и счётчик HTTP-запросов по маршруту.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()

		// служебные эндпоинты не логируем
		switch route {
		case "/metrics", "/ping":
			return
		}

		sp, _ := ctxmeta.SpanIDFromContext(c.Request.Context())

		line := "request method=%s path=%s status=%d ip=%s duration=%s size=%d span=%s"
		args := []any{
			c.Request.Method, c.Request.URL.Path, status, c.ClientIP(),
			time.Since(start), c.Writer.Size(), sp,
		}
		if status >= 500 {
			log.Errorf(c.Request.Context(), line, args...)
			return
		}
		log.Infof(c.Request.Context(), line, args...)
	}
}
