package xauth

// 指标名称常量
const (
	// MetricsScope instrumentation scope 名称
	MetricsScope = "github.com/omeyang/xctxkit/pkg/business/xauth"

	// MetricCacheLookups 缓存查询次数
	MetricCacheLookups = "xauth.cache.lookups"

	// MetricsAttrResult 查询结果属性 key
	MetricsAttrResult = "result"

	// 查询结果
	MetricsResultHit   = "hit"
	MetricsResultMiss  = "miss"
	MetricsResultError = "error"
)
