package xauth

import (
	"context"
	"crypto/subtle"
	"sync"
)

//go:generate mockgen -source=authorizer.go -destination=mock_authorizer_test.go -package=xauth

// Authorizer 将原始凭据校验为授权结果。
//
// 凭据无效时返回 ErrUnauthorized（可包装）。实现必须并发安全。
type Authorizer interface {
	Authorize(ctx context.Context, data *AuthData) (*Authorization, error)
}

// AuthorizerFunc 函数适配器
type AuthorizerFunc func(ctx context.Context, data *AuthData) (*Authorization, error)

// Authorize 调用 f 本身
func (f AuthorizerFunc) Authorize(ctx context.Context, data *AuthData) (*Authorization, error) {
	return f(ctx, data)
}

// AllowAll 返回接受任意非空凭据的 Authorizer，授予全部范围。
// Basic 凭据以用户名作为 subject，其余使用 subject 参数。仅用于开发和测试。
func AllowAll(subject string) Authorizer {
	return AuthorizerFunc(func(_ context.Context, data *AuthData) (*Authorization, error) {
		if data == nil {
			return nil, ErrMissingCredentials
		}
		sub := subject
		if data.Scheme == SchemeBasic && data.Username != "" {
			sub = data.Username
		}
		return &Authorization{Subject: sub, Scopes: AllScopes()}, nil
	})
}

type basicEntry struct {
	password string
	auth     *Authorization
}

// StaticAuthorizer 基于内存表的 Authorizer，适用于少量固定凭据（配置文件、测试）。
type StaticAuthorizer struct {
	mu     sync.RWMutex
	tokens map[string]*Authorization
	keys   map[string]*Authorization
	basic  map[string]basicEntry
}

var _ Authorizer = (*StaticAuthorizer)(nil)

// NewStaticAuthorizer 创建空的 StaticAuthorizer
func NewStaticAuthorizer() *StaticAuthorizer {
	return &StaticAuthorizer{
		tokens: make(map[string]*Authorization),
		keys:   make(map[string]*Authorization),
		basic:  make(map[string]basicEntry),
	}
}

// AddBearer 登记 Bearer Token
func (s *StaticAuthorizer) AddBearer(token string, a *Authorization) *StaticAuthorizer {
	s.mu.Lock()
	s.tokens[token] = a.Clone()
	s.mu.Unlock()
	return s
}

// AddAPIKey 登记 API Key
func (s *StaticAuthorizer) AddAPIKey(key string, a *Authorization) *StaticAuthorizer {
	s.mu.Lock()
	s.keys[key] = a.Clone()
	s.mu.Unlock()
	return s
}

// AddBasic 登记 Basic 用户
func (s *StaticAuthorizer) AddBasic(username, password string, a *Authorization) *StaticAuthorizer {
	s.mu.Lock()
	s.basic[username] = basicEntry{password: password, auth: a.Clone()}
	s.mu.Unlock()
	return s
}

// Authorize 实现 Authorizer
func (s *StaticAuthorizer) Authorize(_ context.Context, data *AuthData) (*Authorization, error) {
	if data == nil {
		return nil, ErrMissingCredentials
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	switch data.Scheme {
	case SchemeBearer:
		if a, ok := s.tokens[data.Token]; ok {
			return a.Clone(), nil
		}
	case SchemeAPIKey:
		if a, ok := s.keys[data.Token]; ok {
			return a.Clone(), nil
		}
	case SchemeBasic:
		if e, ok := s.basic[data.Username]; ok &&
			subtle.ConstantTimeCompare([]byte(e.password), []byte(data.Password)) == 1 {
			return e.auth.Clone(), nil
		}
	default:
		return nil, ErrUnsupportedScheme
	}
	return nil, ErrUnauthorized
}
