package xlog

import (
	"context"
	"log/slog"

	"github.com/omeyang/xctxkit/pkg/context/xctx"
)

// FromContext 返回请求上下文 logger 槽位中的 Logger。
//
// 槽位为空、请求上下文不存在或槽位中的实现不是 xlog.Logger 时返回 Default()。
func FromContext(ctx context.Context) Logger {
	if l, ok := xctx.LoggerFromContext(ctx).(Logger); ok && l != nil {
		return l
	}
	return Default()
}

// ForRequest 派生带追踪标识的请求级 logger 并写入 c。
// 返回派生出的 logger。
func ForRequest[C interface {
	xctx.HasSpanID
	xctx.HasLogger
}](base Logger, c C) Logger {
	l := base
	if id := xctx.SpanIDOf(c); id != "" {
		l = base.With(slog.String(xctx.KeySpanID, string(id)))
	}
	c.SetLogger(l)
	return l
}
