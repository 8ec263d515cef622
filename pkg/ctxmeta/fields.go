package ctxmeta

import "context"

// Fields — пары ключ/значение метаданных запроса для структурного логгера.
// Пустые значения пропускаются.
func Fields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	var kv []any
	if rid, ok := RequestIDFromContext(ctx); ok {
		kv = append(kv, "request_id", rid)
	}
	if tgID, ok := TelegramIDFromContext(ctx); ok {
		kv = append(kv, "telegram_id", tgID)
	}
	if tr, ok := TraceIDFromContext(ctx); ok {
		kv = append(kv, "trace_id", tr)
	}
	return kv
}
