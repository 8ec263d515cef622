// Пакет ctxmeta: нейтральный слой для метаданных запроса, которые
// прокидываются через context.Context (request_id, telegram user id, trace_id).
// HTTP-слой и логгер зависят от него, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// Ключи контекста (неэкспортируемый тип: чтобы избежать коллизий).
	KeyRequestID  ctxKey = "request_id"
	KeyTelegramID ctxKey = "telegram_id"
)

// WithRequestID кладёт request_id в контекст (если пусто: ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTelegramID кладёт проверенный Telegram ID пользователя (0: ничего не делает).
func WithTelegramID(ctx context.Context, telegramID int64) context.Context {
	if ctx == nil || telegramID == 0 {
		return ctx
	}
	return context.WithValue(ctx, KeyTelegramID, telegramID)
}

// TelegramIDFromContext достаёт Telegram ID, положенный после проверки init-data.
func TelegramIDFromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	if v, ok := ctx.Value(KeyTelegramID).(int64); ok && v != 0 {
		return v, true
	}
	return 0, false
}
