package ports

import "context"

// Logger — минимальный контракт логгера для внешних слоёв.
// Контекст передаётся, чтобы реализация могла достать request_id/trace_id.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)  // Infof — информационные сообщения.
	Warnf(ctx context.Context, format string, args ...any)  // Warnf — предупреждения (в т.ч. сбои кэша).
	Errorf(ctx context.Context, format string, args ...any) // Errorf — ошибки (в т.ч. сбои хранилища).
}
