// Package xauth 定义请求上下文中携带的认证数据，以及凭据到授权结果的校验接口。
//
// 两类值：
//   - AuthData：原始凭据（Basic / Bearer / API Key），作为客户端发起下游调用时的认证材料
//   - Authorization：凭据校验通过后的授权结果（subject、scopes、issuer）
//
// xauth 不感知请求上下文，上下文的存取由 xctx 负责；HTTP/gRPC 入口的组装由 xtrace 负责。
//
// # 凭据解析与渲染
//
//	data, err := xauth.ParseCredentials(r.Header.Get, xauth.DefaultAPIKeyHeader)
//	name, value := xauth.Bearer("token").HeaderField(xauth.DefaultAPIKeyHeader)
//
// 解析结果为 nil 且 err 为 nil 表示请求未携带凭据。
//
// # 校验
//
// Authorizer 将 AuthData 转换为 Authorization。CachingAuthorizer 在任意 Authorizer
// 之前加一层 LRU + TTL 缓存：
//   - 缓存 key 为凭据的 xxhash 摘要，缓存值额外保存 sha256 指纹，哈希碰撞时按未命中处理
//   - 只缓存成功结果，校验失败不缓存
//   - 命中/未命中/失败通过 OpenTelemetry counter 上报
//
// 注意：golang-lru expirable 在 TTL > 0 时启动的清理 goroutine 不可停止，
// CachingAuthorizer 应作为进程级单例使用。
package xauth
