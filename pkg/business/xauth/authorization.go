package xauth

import (
	"log/slog"
	"slices"
	"strings"
)

// Scopes 授权范围：显式集合或全部
type Scopes struct {
	all bool
	set map[string]struct{}
}

// AllScopes 返回代表全部范围的 Scopes
func AllScopes() Scopes {
	return Scopes{all: true}
}

// NewScopes 由列表创建 Scopes，空字符串被忽略
func NewScopes(scopes ...string) Scopes {
	s := Scopes{set: make(map[string]struct{}, len(scopes))}
	for _, v := range scopes {
		if v != "" {
			s.set[v] = struct{}{}
		}
	}
	return s
}

// All 是否为全部范围
func (s Scopes) All() bool {
	return s.all
}

// Contains 判断是否包含指定范围
func (s Scopes) Contains(scope string) bool {
	if s.all {
		return true
	}
	_, ok := s.set[scope]
	return ok
}

// List 返回排序后的范围列表，全部范围返回 nil
func (s Scopes) List() []string {
	if s.all || len(s.set) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.set))
	for k := range s.set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// String 返回 "*" 或逗号分隔的范围
func (s Scopes) String() string {
	if s.all {
		return "*"
	}
	return strings.Join(s.List(), ",")
}

func (s Scopes) clone() Scopes {
	if s.all || s.set == nil {
		return s
	}
	c := Scopes{set: make(map[string]struct{}, len(s.set))}
	for k := range s.set {
		c.set[k] = struct{}{}
	}
	return c
}

// Authorization 凭据校验后的授权结果，由入口中间件写入上下文
type Authorization struct {
	Subject string
	Scopes  Scopes
	Issuer  string
}

// Clone 返回深拷贝，nil 安全
func (a *Authorization) Clone() *Authorization {
	if a == nil {
		return nil
	}
	return &Authorization{
		Subject: a.Subject,
		Scopes:  a.Scopes.clone(),
		Issuer:  a.Issuer,
	}
}

// HasScope 判断是否具备指定范围，nil 返回 false
func (a *Authorization) HasScope(scope string) bool {
	if a == nil {
		return false
	}
	return a.Scopes.Contains(scope)
}

// LogValue 实现 slog.LogValuer
func (a *Authorization) LogValue() slog.Value {
	if a == nil {
		return slog.StringValue("<none>")
	}
	attrs := []slog.Attr{slog.String("subject", a.Subject)}
	if a.Issuer != "" {
		attrs = append(attrs, slog.String("issuer", a.Issuer))
	}
	attrs = append(attrs, slog.String("scopes", a.Scopes.String()))
	return slog.GroupValue(attrs...)
}
