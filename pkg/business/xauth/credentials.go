package xauth

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
)

// Header 名称
const (
	// HeaderAuthorization 标准认证头
	HeaderAuthorization = "Authorization"

	// DefaultAPIKeyHeader 默认 API Key 头
	DefaultAPIKeyHeader = "X-API-Key"
)

// Scheme 认证方案
type Scheme string

// 支持的认证方案
const (
	SchemeBasic  Scheme = "basic"
	SchemeBearer Scheme = "bearer"
	SchemeAPIKey Scheme = "apikey"
)

// IsValid 判断方案是否受支持
func (s Scheme) IsValid() bool {
	switch s {
	case SchemeBasic, SchemeBearer, SchemeAPIKey:
		return true
	default:
		return false
	}
}

// AuthData 原始认证凭据
//
// Basic 使用 Username/Password；Bearer 与 API Key 使用 Token。
type AuthData struct {
	Scheme   Scheme
	Username string
	Password string
	Token    string
}

// Basic 创建 Basic 认证凭据
func Basic(username, password string) *AuthData {
	return &AuthData{Scheme: SchemeBasic, Username: username, Password: password}
}

// Bearer 创建 Bearer Token 凭据
func Bearer(token string) *AuthData {
	return &AuthData{Scheme: SchemeBearer, Token: token}
}

// APIKey 创建 API Key 凭据
func APIKey(key string) *AuthData {
	return &AuthData{Scheme: SchemeAPIKey, Token: key}
}

// Clone 返回副本，nil 安全
func (a *AuthData) Clone() *AuthData {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// HeaderField 返回发起下游调用时应设置的 header 名称和值。
//
// API Key 写入 apiKeyHeader（为空时使用 DefaultAPIKeyHeader），
// 其余方案写入 Authorization。a 为 nil 或方案未知时返回空字符串。
func (a *AuthData) HeaderField(apiKeyHeader string) (name, value string) {
	if a == nil {
		return "", ""
	}
	switch a.Scheme {
	case SchemeBasic:
		raw := a.Username + ":" + a.Password
		return HeaderAuthorization, "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
	case SchemeBearer:
		return HeaderAuthorization, "Bearer " + a.Token
	case SchemeAPIKey:
		if apiKeyHeader == "" {
			apiKeyHeader = DefaultAPIKeyHeader
		}
		return apiKeyHeader, a.Token
	default:
		return "", ""
	}
}

// String 返回脱敏后的描述，不包含任何秘密
func (a *AuthData) String() string {
	if a == nil {
		return "<none>"
	}
	if a.Scheme == SchemeBasic {
		return fmt.Sprintf("%s(%s:***)", a.Scheme, a.Username)
	}
	return fmt.Sprintf("%s(***)", a.Scheme)
}

// LogValue 实现 slog.LogValuer，只输出方案和用户名
func (a *AuthData) LogValue() slog.Value {
	if a == nil {
		return slog.StringValue("<none>")
	}
	attrs := []slog.Attr{slog.String("scheme", string(a.Scheme))}
	if a.Username != "" {
		attrs = append(attrs, slog.String("username", a.Username))
	}
	return slog.GroupValue(attrs...)
}

// ParseCredentials 从请求头提取凭据。
//
// get 通常为 http.Header.Get，或 gRPC metadata 的等价取值函数。
// 优先级：Authorization 头 → API Key 头。
// 未携带任何凭据时返回 (nil, nil)。
func ParseCredentials(get func(name string) string, apiKeyHeader string) (*AuthData, error) {
	if get == nil {
		return nil, nil
	}
	if apiKeyHeader == "" {
		apiKeyHeader = DefaultAPIKeyHeader
	}

	if v := strings.TrimSpace(get(HeaderAuthorization)); v != "" {
		return ParseAuthorizationHeader(v)
	}
	if key := strings.TrimSpace(get(apiKeyHeader)); key != "" {
		return APIKey(key), nil
	}
	return nil, nil
}

// ParseAuthorizationHeader 解析 Authorization 头的值（Basic / Bearer，方案名大小写不敏感）
func ParseAuthorizationHeader(v string) (*AuthData, error) {
	scheme, param, ok := strings.Cut(strings.TrimSpace(v), " ")
	param = strings.TrimSpace(param)
	if !ok || param == "" {
		return nil, fmt.Errorf("%w: expected \"<scheme> <credentials>\"", ErrMalformedCredentials)
	}

	switch strings.ToLower(scheme) {
	case "basic":
		raw, err := base64.StdEncoding.DecodeString(param)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCredentials, err)
		}
		user, pass, found := strings.Cut(string(raw), ":")
		if !found {
			return nil, fmt.Errorf("%w: basic credentials missing ':'", ErrMalformedCredentials)
		}
		return Basic(user, pass), nil
	case "bearer":
		return Bearer(param), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}
