// Package xlog 基于 log/slog 的结构化日志。
//
// # 创建 Logger
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetRotation("/var/log/app.log", xrotate.Config{MaxSizeMB: 100}).
//		Build()
//	defer cleanup()
//
// Builder 遵循 first-error-wins：第一个配置错误之后的 Set 不再生效，由 Build 返回该错误。
//
// # 请求上下文注入
//
// EnrichHandler（默认启用）从 context.Context 中的请求上下文提取
// x_span_id、auth_subject、auth_scheme 并追加到每条日志。凭据只输出方案。
//
// # 请求级 logger
//
// xlog.Logger 满足 xctx.Logger，可以放入请求上下文的 logger 槽位。
// FromContext 取回该 logger，没有时返回全局 Default。
//
// # 动态级别
//
// Build 返回 LoggerWithLevel，SetLevel 运行时生效，With/WithGroup 派生的 logger 共享级别。
package xlog
