// Package xtrace 在 HTTP/gRPC 边界上创建和传播请求上下文（xctx.Context）。
//
// # 入站
//
// HTTPMiddleware、UnaryServerInterceptor、StreamServerInterceptor 为每个请求
// 创建一个 *xctx.Context 并通过 xctx.WithCarrier 放入 context.Context：
//
//   - 追踪标识：X-Span-ID → traceparent 的 trace-id → 当前 OpenTelemetry span
//     的 trace-id → 生成（WithIDGenerator，默认 UUID v4）；
//     WithAutoGenerate(false) 时保持为空
//   - 凭据：Authorization（Basic/Bearer）或 X-API-Key；配置 WithAuthorizer 后
//     校验并写入授权结果槽位。原始凭据不写入上下文
//   - 日志：配置 WithLogger 后，派生带 x_span_id 的请求级 logger 写入 logger 槽位
//
// 凭据无效返回 401 / codes.Unauthenticated；WithRequireAuth(true) 时缺少凭据同样拒绝；
// Authorizer 后端故障返回 500 / codes.Internal。追踪标识回写到响应头。
//
// # 出站
//
// InjectHeader 接受任意持有追踪标识和凭据的上下文（编译期检查），写入 X-Span-ID
// 和凭据头。InjectToRequest、NewTransport、UnaryClientInterceptor、
// StreamClientInterceptor 从 context.Context 取出请求上下文后调用同样的逻辑。
//
// gRPC metadata key 为小写：x-span-id、authorization、x-api-key。
package xtrace
