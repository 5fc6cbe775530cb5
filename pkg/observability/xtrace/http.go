package xtrace

import (
	"net/http"

	"github.com/omeyang/xctxkit/pkg/business/xauth"
	"github.com/omeyang/xctxkit/pkg/context/xctx"
)

// HTTPMiddleware 为每个请求创建请求上下文，见包文档
func HTTPMiddleware(opts ...Option) func(http.Handler) http.Handler {
	cfg := applyOptions(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			c, err := newCarrier(ctx, r.Header.Get, cfg)
			if id := c.SpanIDSlot().Get(); id != "" {
				w.Header().Set(HeaderSpanID, string(id))
			}
			if err != nil {
				logReject(ctx, c, cfg, "http", r.URL.Path, err)
				writeHTTPError(w, err)
				return
			}

			// c 非 nil，WithCarrier 不会失败
			ctx, _ = xctx.WithCarrier(ctx, c)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeHTTPError(w http.ResponseWriter, err error) {
	if xauth.IsAuthError(err) {
		w.Header().Set("WWW-Authenticate", `Bearer, Basic realm="api"`)
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// InjectHeader 将追踪标识和凭据写入出站请求头。空值不写。
//
// 只接受 WithAPIKeyHeader 选项，其余选项被忽略。
func InjectHeader[C interface {
	xctx.HasSpanID
	xctx.HasAuthData
}](c C, h http.Header, opts ...Option) {
	if h == nil {
		return
	}
	cfg := applyOptions(opts)
	injectTo(c, h.Set, cfg.apiKeyHeader)
}

// injectTo 供 HTTP 与 gRPC 共用
func injectTo[C interface {
	xctx.HasSpanID
	xctx.HasAuthData
}](c C, set func(key, value string), apiKeyHeader string) {
	if id := xctx.SpanIDOf(c); id != "" {
		set(HeaderSpanID, string(id))
	}
	if name, value := xctx.AuthDataOf(c).HeaderField(apiKeyHeader); name != "" {
		set(name, value)
	}
}

// InjectToRequest 从 req 的 context 取出请求上下文并写入请求头。
// 不存在请求上下文时不做修改。
func InjectToRequest(req *http.Request, opts ...Option) {
	if req == nil {
		return
	}
	c, ok := xctx.FromContext(req.Context())
	if !ok {
		return
	}
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	InjectHeader(c, req.Header, opts...)
}

// Transport 出站 RoundTripper，发送前写入请求上下文
type Transport struct {
	base http.RoundTripper
	opts []Option
}

var _ http.RoundTripper = (*Transport)(nil)

// NewTransport base 为 nil 时使用 http.DefaultTransport
func NewTransport(base http.RoundTripper, opts ...Option) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, opts: opts}
}

// RoundTrip 实现 http.RoundTripper。原请求不被修改。
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if _, ok := xctx.FromContext(req.Context()); !ok {
		return t.base.RoundTrip(req)
	}
	out := req.Clone(req.Context())
	InjectToRequest(out, t.opts...)
	return t.base.RoundTrip(out)
}

// CloseIdleConnections 转发给 base，使 http.Client.CloseIdleConnections 生效
func (t *Transport) CloseIdleConnections() {
	type closeIdler interface{ CloseIdleConnections() }
	if ci, ok := t.base.(closeIdler); ok {
		ci.CloseIdleConnections()
	}
}
