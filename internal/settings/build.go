package settings

import (
	"context"
	"log/slog"

	"github.com/omeyang/xctxkit/pkg/business/xauth"
	"github.com/omeyang/xctxkit/pkg/config/xconf"
	"github.com/omeyang/xctxkit/pkg/observability/xlog"
	"github.com/omeyang/xctxkit/pkg/observability/xtrace"
	"github.com/omeyang/xctxkit/pkg/util/xbody"
	"github.com/omeyang/xctxkit/pkg/util/xid"
)

// BuildLogger 按 Log 配置构建 logger，返回的清理函数关闭轮转文件
func (s Settings) BuildLogger(attrs ...slog.Attr) (xlog.LoggerWithLevel, func() error, error) {
	b := xlog.New().
		SetLevelString(s.Log.Level).
		SetFormat(s.Log.Format).
		SetAddSource(s.Log.AddSource).
		SetAttrs(attrs...)
	if s.Log.File != "" {
		b = b.SetRotation(s.Log.File, s.Log.Rotation)
	}
	return b.Build()
}

// BuildAuthorizer 由静态凭据表构建 Authorizer。未配置任何凭据时返回 nil。
func (s Settings) BuildAuthorizer(opts ...xauth.CacheOption) (xauth.Authorizer, error) {
	a := s.Auth
	if len(a.Bearer)+len(a.APIKeys)+len(a.Basic) == 0 {
		return nil, nil
	}
	static := xauth.NewStaticAuthorizer()
	for _, c := range a.Bearer {
		static.AddBearer(c.Token, c.authorization())
	}
	for _, c := range a.APIKeys {
		static.AddAPIKey(c.Token, c.authorization())
	}
	for _, u := range a.Basic {
		subject := u.Subject
		if subject == "" {
			subject = u.Username
		}
		static.AddBasic(u.Username, u.Password, &xauth.Authorization{Subject: subject, Scopes: scopes(u.Scopes)})
	}
	if !a.Cache.Enabled {
		return static, nil
	}
	return xauth.NewCachingAuthorizer(static, xauth.CacheConfig{Size: a.Cache.Size, TTL: a.Cache.TTL}, opts...)
}

func (c Credential) authorization() *xauth.Authorization {
	return &xauth.Authorization{Subject: c.Subject, Scopes: scopes(c.Scopes), Issuer: c.Issuer}
}

// scopes 列表中含 "*" 表示全部范围
func scopes(list []string) xauth.Scopes {
	for _, s := range list {
		if s == "*" {
			return xauth.AllScopes()
		}
	}
	return xauth.NewScopes(list...)
}

// MiddlewareOptions 组装 xtrace 选项。logger、authz 可为 nil。
func (s Settings) MiddlewareOptions(logger xlog.Logger, authz xauth.Authorizer) ([]xtrace.Option, error) {
	gen, err := xid.ByName(s.Trace.Generator)
	if err != nil {
		return nil, err
	}
	opts := []xtrace.Option{
		xtrace.WithAutoGenerate(s.Trace.AutoGenerate),
		xtrace.WithIDGenerator(gen),
		xtrace.WithAPIKeyHeader(s.Trace.APIKeyHeader),
		xtrace.WithRequireAuth(s.Auth.Require),
	}
	if logger != nil {
		opts = append(opts, xtrace.WithLogger(logger))
	}
	if authz != nil {
		opts = append(opts, xtrace.WithAuthorizer(authz))
	}
	return opts, nil
}

// BodyOptions 组装 xbody 选项
func (s Settings) BodyOptions() []xbody.Option {
	if s.Body.MaxSize <= 0 {
		return nil
	}
	return []xbody.Option{xbody.WithMaxSize(s.Body.MaxSize)}
}

// WatchLevel 配置文件变更后重新读取 log.level 并应用到 lv。
// 其余字段的变更需要重启进程。调用方负责运行返回的 Watcher。
func WatchLevel(cfg *xconf.Config, lv xlog.Leveler, logger xlog.Logger) (*xconf.Watcher, error) {
	if logger == nil {
		logger = xlog.Default()
	}
	return xconf.Watch(cfg, func(c *xconf.Config, err error) {
		ctx := context.Background()
		if err != nil {
			logger.Warn(ctx, "settings: reload failed", xlog.Err(err))
			return
		}
		level, err := xlog.ParseLevel(c.Client().String("log.level"))
		if err != nil {
			logger.Warn(ctx, "settings: ignore invalid log level", xlog.Err(err))
			return
		}
		if level != lv.GetLevel() {
			lv.SetLevel(level)
			logger.Info(ctx, "settings: log level changed", slog.String("level", level.String()))
		}
	})
}
