package httpx

import (
	"github.com/Gunvolt24/fiveka-shop/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID — заголовок корреляции запросов (Mini App, бот, прокси).
const HeaderRequestID = "X-Request-ID"

// maxRequestIDLen — клиентские ID длиннее заменяем своим.
const maxRequestIDLen = 128

// RequestIDMiddleware берёт X-Request-ID клиента или генерирует UUID,
// кладёт его в контекст запроса и возвращает в ответе.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		ctx := ctxmeta.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
