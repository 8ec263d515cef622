package rest

import (
	"net/http"
	"time"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
	"github.com/Gunvolt24/fiveka-shop/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"
)

// HeaderInitData — подписанные init-data Telegram Mini App (query-строка как есть).
const HeaderInitData = "X-Telegram-Init-Data"

const ctxKeyIdentity = "telegram_identity"

// InitDataMiddleware проверяет подпись init-data токеном бота и кладёт
// пользователя из них в контекст запроса. maxAge <= 0: без проверки срока.
func InitDataMiddleware(botToken string, maxAge time.Duration, log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderInitData)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Telegram init data required"})
			return
		}

		if err := initdata.Validate(raw, botToken, maxAge); err != nil {
			log.Warnf(c.Request.Context(), "init data rejected: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid init data"})
			return
		}

		data, err := initdata.Parse(raw)
		if err != nil || data.User.ID == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msgInvalidTgUser})
			return
		}

		c.Set(ctxKeyIdentity, domain.TelegramIdentity{
			ID:        data.User.ID,
			Username:  data.User.Username,
			FirstName: data.User.FirstName,
			LastName:  data.User.LastName,
		})
		c.Request = c.Request.WithContext(ctxmeta.WithTelegramID(c.Request.Context(), data.User.ID))
		c.Next()
	}
}

func verifiedIdentity(c *gin.Context) (domain.TelegramIdentity, bool) {
	v, ok := c.Get(ctxKeyIdentity)
	if !ok {
		return domain.TelegramIdentity{}, false
	}
	identity, ok := v.(domain.TelegramIdentity)
	return identity, ok
}
