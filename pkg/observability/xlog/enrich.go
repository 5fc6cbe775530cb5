package xlog

import (
	"context"
	"log/slog"

	"github.com/omeyang/xctxkit/pkg/context/xctx"
)

// maxEnrichAttrs x_span_id、auth_subject、auth_scheme
const maxEnrichAttrs = 3

// EnrichHandler 包装 slog.Handler，从 ctx 的请求上下文提取字段追加到记录。
//
// ctx 中没有请求上下文时原样转发。对 logger 调用 WithGroup 后，
// 追加的字段位于该分组下。
type EnrichHandler struct {
	base slog.Handler
	// spanBound 已经通过 WithAttrs 绑定了 x_span_id，不再重复追加
	spanBound bool
}

var _ slog.Handler = (*EnrichHandler)(nil)

// NewEnrichHandler 创建 EnrichHandler
func NewEnrichHandler(base slog.Handler) (*EnrichHandler, error) {
	if base == nil {
		return nil, ErrNilHandler
	}
	return &EnrichHandler{base: base}, nil
}

// Enabled 委托给 base
func (h *EnrichHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// Handle 追加请求上下文字段后交给 base。按 slog 约定先 Clone 记录。
func (h *EnrichHandler) Handle(ctx context.Context, r slog.Record) error {
	var buf [maxEnrichAttrs]slog.Attr
	attrs := xctx.AppendAttrs(buf[:0], ctx)
	if h.spanBound && len(attrs) > 0 && attrs[0].Key == xctx.KeySpanID {
		attrs = attrs[1:]
	}
	if len(attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(attrs...)
	}
	return h.base.Handle(ctx, r)
}

// WithAttrs 实现 slog.Handler
func (h *EnrichHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := h.spanBound
	for _, a := range attrs {
		if a.Key == xctx.KeySpanID {
			bound = true
			break
		}
	}
	return &EnrichHandler{base: h.base.WithAttrs(attrs), spanBound: bound}
}

// WithGroup 实现 slog.Handler
func (h *EnrichHandler) WithGroup(name string) slog.Handler {
	return &EnrichHandler{base: h.base.WithGroup(name), spanBound: h.spanBound}
}
