//go:build !otel || gopls

package ctxmeta

import "context"

// Сборка без тега `otel`: трейсинг в логах не участвует.
func TraceIDFromContext(context.Context) (string, bool) { return "", false }
func SpanIDFromContext(context.Context) (string, bool)  { return "", false }
