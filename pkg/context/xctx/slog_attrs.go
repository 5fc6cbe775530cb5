package xctx

import (
	"context"
	"log/slog"
)

// 日志属性 key
const (
	KeySpanID      = "x_span_id"
	KeyAuthSubject = "auth_subject"
	KeyAuthScheme  = "auth_scheme"

	// attrCount 最多追加的属性数量
	attrCount = 3
)

// Attrs 从请求上下文提取日志属性，空值跳过，全部为空时返回 nil。
// 凭据只输出方案，不输出秘密。
func Attrs[C Carrier](c C) []slog.Attr {
	attrs := appendCarrierAttrs(make([]slog.Attr, 0, attrCount), c)
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

// AppendAttrs 将 ctx 中请求上下文的日志属性追加到 dst。
// ctx 为 nil 或不含请求上下文时原样返回 dst。
func AppendAttrs(dst []slog.Attr, ctx context.Context) []slog.Attr {
	c, ok := FromContext(ctx)
	if !ok {
		return dst
	}
	return appendCarrierAttrs(dst, c)
}

func appendCarrierAttrs(dst []slog.Attr, c Carrier) []slog.Attr {
	if id := c.SpanIDSlot().Get(); id != "" {
		dst = append(dst, slog.String(KeySpanID, string(id)))
	}
	if a := c.AuthorizationSlot().Get(); a != nil && a.Subject != "" {
		dst = append(dst, slog.String(KeyAuthSubject, a.Subject))
	}
	if d := c.AuthDataSlot().Get(); d != nil {
		dst = append(dst, slog.String(KeyAuthScheme, string(d.Scheme)))
	}
	return dst
}
