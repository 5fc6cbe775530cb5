// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展，从请求上下文注入 x_span_id 等字段
//   - xtrace: HTTP/gRPC 边界上请求上下文的创建与传播
//   - xrotate: 日志文件轮转
//
// 设计原则：
//   - 追踪标识优先沿用上游传入的值，兼容 W3C traceparent 和 OpenTelemetry span
//   - 日志不输出任何凭据
package observability
