package xauth

import "errors"

var (
	// ErrUnauthorized 凭据无效
	ErrUnauthorized = errors.New("xauth: unauthorized")

	// ErrMissingCredentials 请求要求认证但未携带凭据
	ErrMissingCredentials = errors.New("xauth: missing credentials")

	// ErrMalformedCredentials 凭据格式错误（如 Basic 非法 base64）
	ErrMalformedCredentials = errors.New("xauth: malformed credentials")

	// ErrUnsupportedScheme Authorization 头使用了不支持的认证方案
	ErrUnsupportedScheme = errors.New("xauth: unsupported auth scheme")

	// ErrNilAuthorizer Authorizer 为 nil
	ErrNilAuthorizer = errors.New("xauth: nil authorizer")

	// ErrInvalidCacheConfig 缓存配置无效
	ErrInvalidCacheConfig = errors.New("xauth: invalid cache config")
)

// IsAuthError 判断 err 是否属于凭据问题（应向调用方返回 401/Unauthenticated），
// 而不是 Authorizer 后端故障
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrMalformedCredentials) ||
		errors.Is(err, ErrUnsupportedScheme)
}
