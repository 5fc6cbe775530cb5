package xtrace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/omeyang/xctxkit/pkg/business/xauth"
	"github.com/omeyang/xctxkit/pkg/context/xctx"
	"github.com/omeyang/xctxkit/pkg/observability/xlog"
)

// 请求头名称
const (
	HeaderSpanID      = "X-Span-ID"
	HeaderTraceparent = "traceparent"
)

// maxSpanIDLen 入站追踪标识的长度上限，超出视为无效
const maxSpanIDLen = 128

// headerGetter 统一 http.Header 和 gRPC metadata 的读取
type headerGetter func(name string) string

// resolveSpanID 按优先级确定追踪标识
func resolveSpanID(ctx context.Context, get headerGetter, cfg *config) (xctx.XSpanID, error) {
	if id := strings.TrimSpace(get(HeaderSpanID)); validSpanID(id) {
		return xctx.XSpanID(id), nil
	}
	if traceID, ok := parseTraceparent(get(HeaderTraceparent)); ok {
		return xctx.XSpanID(traceID), nil
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return xctx.XSpanID(sc.TraceID().String()), nil
	}
	if !cfg.autoGenerate {
		return "", nil
	}
	id, err := cfg.generator.Generate()
	if err != nil {
		return "", fmt.Errorf("xtrace: generate span id: %w", err)
	}
	return xctx.XSpanID(id), nil
}

// validSpanID 非空、长度受限、只含可见 ASCII
func validSpanID(id string) bool {
	if id == "" || len(id) > maxSpanIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}

// authenticate 解析并校验凭据。未配置 Authorizer 时不解析，返回 nil。
func authenticate(ctx context.Context, get headerGetter, cfg *config) (*xauth.Authorization, error) {
	if cfg.authorizer == nil {
		if cfg.requireAuth {
			return nil, xauth.ErrUnauthorized
		}
		return nil, nil
	}
	data, err := xauth.ParseCredentials(get, cfg.apiKeyHeader)
	if err != nil {
		return nil, err
	}
	if data == nil {
		if cfg.requireAuth {
			return nil, xauth.ErrMissingCredentials
		}
		return nil, nil
	}
	return cfg.authorizer.Authorize(ctx, data)
}

// newCarrier 为入站请求构造请求上下文。
// 追踪标识总是先确定，以便拒绝请求时也能回写给调用方。
func newCarrier(ctx context.Context, get headerGetter, cfg *config) (*xctx.Context, error) {
	spanID, err := resolveSpanID(ctx, get, cfg)
	c := xctx.NewWithSpanID(string(spanID))
	if err != nil {
		return c, err
	}
	if cfg.logger != nil {
		xlog.ForRequest(cfg.logger, c)
	}

	auth, err := authenticate(ctx, get, cfg)
	if err != nil {
		return c, err
	}
	c.AuthorizationSlot().Set(auth)
	return c, nil
}

// rejectLogger 拒绝请求时使用的 logger
func rejectLogger(c *xctx.Context, cfg *config) xlog.Logger {
	if l, ok := c.Logger().(xlog.Logger); ok && l != nil {
		return l
	}
	if cfg.logger != nil {
		return cfg.logger
	}
	return xlog.Default()
}

func logReject(ctx context.Context, c *xctx.Context, cfg *config, transport, target string, err error) {
	rejectLogger(c, cfg).Warn(ctx, "xtrace: request rejected",
		slog.String("transport", transport),
		xlog.Path(target),
		xlog.Err(err),
	)
}
