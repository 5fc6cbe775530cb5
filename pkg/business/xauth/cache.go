package xauth

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// 缓存默认值与上限
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 5 * time.Minute

	maxCacheSize = 1 << 20
)

// CacheConfig 缓存配置
type CacheConfig struct {
	// Size 最大条目数，0 使用 DefaultCacheSize
	Size int
	// TTL 条目有效期，0 使用 DefaultCacheTTL，不允许负值
	TTL time.Duration
}

// CacheOption 缓存可选配置
type CacheOption func(*cacheOptions)

type cacheOptions struct {
	meterProvider metric.MeterProvider
}

// WithMeterProvider 设置指标 MeterProvider，默认使用 otel 全局 provider
func WithMeterProvider(mp metric.MeterProvider) CacheOption {
	return func(o *cacheOptions) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}

type cacheEntry struct {
	fingerprint [sha256.Size]byte
	auth        *Authorization
}

// CachingAuthorizer 为下游 Authorizer 加一层 LRU + TTL 缓存
type CachingAuthorizer struct {
	next    Authorizer
	lru     *expirable.LRU[uint64, cacheEntry]
	lookups metric.Int64Counter

	attrHit   metric.AddOption
	attrMiss  metric.AddOption
	attrError metric.AddOption
}

var _ Authorizer = (*CachingAuthorizer)(nil)

// NewCachingAuthorizer 创建缓存 Authorizer
func NewCachingAuthorizer(next Authorizer, cfg CacheConfig, opts ...CacheOption) (*CachingAuthorizer, error) {
	if next == nil {
		return nil, ErrNilAuthorizer
	}
	if cfg.Size == 0 {
		cfg.Size = DefaultCacheSize
	}
	if cfg.Size < 0 || cfg.Size > maxCacheSize {
		return nil, fmt.Errorf("%w: size %d out of range (1..%d)", ErrInvalidCacheConfig, cfg.Size, maxCacheSize)
	}
	if cfg.TTL < 0 {
		return nil, fmt.Errorf("%w: negative ttl %s", ErrInvalidCacheConfig, cfg.TTL)
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultCacheTTL
	}

	o := &cacheOptions{meterProvider: otel.GetMeterProvider()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	lookups, err := o.meterProvider.Meter(MetricsScope).Int64Counter(
		MetricCacheLookups,
		metric.WithDescription("Authorization cache lookups by result"),
	)
	if err != nil {
		return nil, fmt.Errorf("xauth: create counter: %w", err)
	}

	return &CachingAuthorizer{
		next:      next,
		lru:       expirable.NewLRU[uint64, cacheEntry](cfg.Size, nil, cfg.TTL),
		lookups:   lookups,
		attrHit:   metric.WithAttributes(attribute.String(MetricsAttrResult, MetricsResultHit)),
		attrMiss:  metric.WithAttributes(attribute.String(MetricsAttrResult, MetricsResultMiss)),
		attrError: metric.WithAttributes(attribute.String(MetricsAttrResult, MetricsResultError)),
	}, nil
}

// Authorize 实现 Authorizer。
// nil 凭据直接交给下游，不参与缓存；只缓存成功结果。
func (c *CachingAuthorizer) Authorize(ctx context.Context, data *AuthData) (*Authorization, error) {
	if data == nil {
		return c.next.Authorize(ctx, data)
	}

	key, fp := credentialKey(data)
	if e, ok := c.lru.Get(key); ok && e.fingerprint == fp {
		c.lookups.Add(ctx, 1, c.attrHit)
		return e.auth.Clone(), nil
	}

	auth, err := c.next.Authorize(ctx, data)
	if err != nil {
		c.lookups.Add(ctx, 1, c.attrError)
		return nil, err
	}
	c.lookups.Add(ctx, 1, c.attrMiss)
	c.lru.Add(key, cacheEntry{fingerprint: fp, auth: auth.Clone()})
	return auth, nil
}

// Len 当前缓存条目数（可能包含尚未清理的过期条目）
func (c *CachingAuthorizer) Len() int {
	return c.lru.Len()
}

// Purge 清空缓存，凭据轮换后调用
func (c *CachingAuthorizer) Purge() {
	c.lru.Purge()
}

// credentialKey 计算缓存 key（xxhash）和碰撞校验指纹（sha256）。
// 字段间以 0 字节分隔，避免 "ab"+"c" 与 "a"+"bc" 相同。
func credentialKey(data *AuthData) (uint64, [sha256.Size]byte) {
	d := xxhash.New()
	h := sha256.New()
	for _, part := range [...]string{string(data.Scheme), data.Username, data.Password, data.Token} {
		_, _ = d.WriteString(part)
		_, _ = d.Write([]byte{0})
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0})
	}
	var fp [sha256.Size]byte
	copy(fp[:], h.Sum(nil))
	return d.Sum64(), fp
}
