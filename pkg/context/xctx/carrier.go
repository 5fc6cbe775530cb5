package xctx

import (
	"context"
	"fmt"
)

// contextKey 包私有 key 类型，避免与其他包冲突
type contextKey string

const keyCarrier = contextKey("xctx:carrier")

// WithCarrier 将请求上下文放入 context.Context
//
// ctx 为 nil 返回 ErrNilContext，c 为 nil 返回 ErrNilCarrier。
func WithCarrier(ctx context.Context, c Carrier) (context.Context, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if c == nil {
		return nil, ErrNilCarrier
	}
	return context.WithValue(ctx, keyCarrier, c), nil
}

// FromContext 从 context.Context 取回请求上下文
func FromContext(ctx context.Context) (Carrier, bool) {
	if ctx == nil {
		return nil, false
	}
	c, ok := ctx.Value(keyCarrier).(Carrier)
	return c, ok
}

// RequireCarrier 取回请求上下文，不存在时返回 ErrMissingCarrier
func RequireCarrier(ctx context.Context) (Carrier, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	c, ok := FromContext(ctx)
	if !ok {
		return nil, ErrMissingCarrier
	}
	return c, nil
}

// Lookup 按具体类型取回请求上下文。
//
// 请求上下文不存在返回 ErrMissingCarrier；类型不符返回 ErrCarrierType。
func Lookup[C Carrier](ctx context.Context) (C, error) {
	var zero C
	c, err := RequireCarrier(ctx)
	if err != nil {
		return zero, err
	}
	typed, ok := c.(C)
	if !ok {
		return zero, fmt.Errorf("%w: have %T, want %T", ErrCarrierType, c, zero)
	}
	return typed, nil
}

// EnsureCarrier 确保 context.Context 中存在请求上下文。
//
// 已存在时原样返回；否则注入一个空的 *Context。不生成追踪标识，
// 追踪标识由入站中间件或调用方设置。
func EnsureCarrier(ctx context.Context) (context.Context, Carrier, error) {
	if ctx == nil {
		return nil, nil, ErrNilContext
	}
	if c, ok := FromContext(ctx); ok {
		return ctx, c, nil
	}
	c := New()
	ctx, err := WithCarrier(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	return ctx, c, nil
}

// SpanIDFromContext 读取追踪标识，不存在返回空字符串
func SpanIDFromContext(ctx context.Context) XSpanID {
	c, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return c.SpanIDSlot().Get()
}

// LoggerFromContext 读取请求级 logger。
// 请求上下文不存在、未实现 HasLogger 或未设置 logger 时返回 nil。
func LoggerFromContext(ctx context.Context) Logger {
	c, ok := FromContext(ctx)
	if !ok {
		return nil
	}
	if hl, ok := c.(HasLogger); ok {
		return hl.Logger()
	}
	return nil
}
