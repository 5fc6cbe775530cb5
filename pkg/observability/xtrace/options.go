package xtrace

import (
	"github.com/omeyang/xctxkit/pkg/business/xauth"
	"github.com/omeyang/xctxkit/pkg/observability/xlog"
	"github.com/omeyang/xctxkit/pkg/util/xid"
)

// Option 中间件、拦截器和出站注入共用的选项
type Option func(*config)

type config struct {
	authorizer   xauth.Authorizer
	requireAuth  bool
	logger       xlog.Logger
	autoGenerate bool
	generator    xid.Generator
	apiKeyHeader string
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		autoGenerate: true,
		generator:    xid.UUID(),
		apiKeyHeader: xauth.DefaultAPIKeyHeader,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithAuthorizer 校验入站凭据，成功后写入授权结果
func WithAuthorizer(a xauth.Authorizer) Option {
	return func(c *config) {
		c.authorizer = a
	}
}

// WithRequireAuth 缺少凭据的请求也被拒绝。需配合 WithAuthorizer，否则所有请求都被拒绝。
func WithRequireAuth(required bool) Option {
	return func(c *config) {
		c.requireAuth = required
	}
}

// WithLogger 为每个请求派生带 x_span_id 的 logger 并写入请求上下文
func WithLogger(l xlog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithAutoGenerate 入站未携带追踪标识时是否生成，默认 true
func WithAutoGenerate(enabled bool) Option {
	return func(c *config) {
		c.autoGenerate = enabled
	}
}

// WithIDGenerator 替换追踪标识生成器，nil 被忽略
func WithIDGenerator(g xid.Generator) Option {
	return func(c *config) {
		if g != nil {
			c.generator = g
		}
	}
}

// WithAPIKeyHeader 替换 API Key 头名称，空字符串被忽略
func WithAPIKeyHeader(name string) Option {
	return func(c *config) {
		if name != "" {
			c.apiKeyHeader = name
		}
	}
}
