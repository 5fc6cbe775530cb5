package settings

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/omeyang/xctxkit/pkg/business/xauth"
	"github.com/omeyang/xctxkit/pkg/config/xconf"
	"github.com/omeyang/xctxkit/pkg/observability/xlog"
	"github.com/omeyang/xctxkit/pkg/observability/xrotate"
	"github.com/omeyang/xctxkit/pkg/util/xid"
)

// ErrInvalid 配置校验失败
var ErrInvalid = errors.New("settings: invalid")

// Settings 进程配置
type Settings struct {
	Log    Log    `koanf:"log"`
	Trace  Trace  `koanf:"trace"`
	Auth   Auth   `koanf:"auth"`
	Body   Body   `koanf:"body"`
	Server Server `koanf:"server"`
}

// Log 日志配置。File 非空时输出到轮转文件，否则输出到 stderr。
type Log struct {
	Level     string         `koanf:"level"`
	Format    string         `koanf:"format"`
	AddSource bool           `koanf:"add_source"`
	File      string         `koanf:"file"`
	Rotation  xrotate.Config `koanf:"rotation"`
}

// Trace 追踪标识配置
type Trace struct {
	AutoGenerate bool   `koanf:"auto_generate"`
	Generator    string `koanf:"generator"`
	APIKeyHeader string `koanf:"api_key_header"`
}

// Credential Bearer token 或 API Key
type Credential struct {
	Token   string   `koanf:"token"`
	Subject string   `koanf:"subject"`
	Scopes  []string `koanf:"scopes"`
	Issuer  string   `koanf:"issuer"`
}

// BasicUser Basic 认证用户
type BasicUser struct {
	Username string   `koanf:"username"`
	Password string   `koanf:"password"`
	Subject  string   `koanf:"subject"`
	Scopes   []string `koanf:"scopes"`
}

// Cache Authorizer 缓存
type Cache struct {
	Enabled bool          `koanf:"enabled"`
	Size    int           `koanf:"size"`
	TTL     time.Duration `koanf:"ttl"`
}

// Auth 静态凭据表
type Auth struct {
	Require bool         `koanf:"require"`
	Bearer  []Credential `koanf:"bearer"`
	APIKeys []Credential `koanf:"api_keys"`
	Basic   []BasicUser  `koanf:"basic"`
	Cache   Cache        `koanf:"cache"`
}

// Body 请求体聚合
type Body struct {
	MaxSize int `koanf:"max_size"`
}

// Server demo 服务
type Server struct {
	Addr string `koanf:"addr"`
}

// 默认值
const (
	DefaultAddr        = ":8080"
	DefaultBodyMaxSize = 8 << 20
)

// Default 返回默认配置
func Default() Settings {
	return Settings{
		Log: Log{Level: "info", Format: xlog.FormatText},
		Trace: Trace{
			AutoGenerate: true,
			Generator:    xid.NameUUID,
			APIKeyHeader: xauth.DefaultAPIKeyHeader,
		},
		Auth: Auth{Cache: Cache{
			Size: xauth.DefaultCacheSize,
			TTL:  xauth.DefaultCacheTTL,
		}},
		Body:   Body{MaxSize: DefaultBodyMaxSize},
		Server: Server{Addr: DefaultAddr},
	}
}

// Load 从文件加载，path 为空时返回默认配置和 nil Config。
// 返回的 Config 可用于 WatchLevel。
func Load(path string) (Settings, *xconf.Config, error) {
	if path == "" {
		return Default(), nil, nil
	}
	cfg, err := xconf.New(path)
	if err != nil {
		return Settings{}, nil, err
	}
	s, err := FromConfig(cfg)
	if err != nil {
		return Settings{}, nil, err
	}
	return s, cfg, nil
}

// FromConfig 以 Default 为基础反序列化并校验
func FromConfig(cfg *xconf.Config) (Settings, error) {
	s, err := xconf.Load(cfg, "", Default())
	if err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate 校验取值范围
func (s Settings) Validate() error {
	var errs []error
	if _, err := xlog.ParseLevel(s.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if _, err := xlog.ParseFormat(s.Log.Format); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains([]string{"", xid.NameUUID, xid.NameHex, xid.NameSonyflake}, strings.ToLower(strings.TrimSpace(s.Trace.Generator))) {
		errs = append(errs, fmt.Errorf("%w: unknown generator %q", xid.ErrUnknownGenerator, s.Trace.Generator))
	}
	if s.Auth.Cache.Size < 0 || s.Auth.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("%w: auth cache size/ttl must not be negative", xauth.ErrInvalidCacheConfig))
	}
	if s.Body.MaxSize < 0 {
		errs = append(errs, errors.New("body max_size must not be negative"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
