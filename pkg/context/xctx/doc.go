// Package xctx 提供类型化、可组合的请求上下文。
//
// 请求上下文携带一组编译期已知的值：追踪标识（X-Span-ID）、授权结果、
// 原始凭据和请求级 logger。每个值通过独立的能力接口读写，不经过 map 查找，
// 也不做运行时类型断言。
//
// # 槽位与能力
//
// Slot[T] 是一个类型化存储单元，提供 Get/GetMut/Set，满足 Has[T]。
// 可扩展值的集合是封闭的，每个值对应一个能力接口：
//
//	HasSpanID         SpanIDSlot() *Slot[XSpanID]
//	HasAuthorization  AuthorizationSlot() *Slot[*xauth.Authorization]
//	HasAuthData       AuthDataSlot() *Slot[*xauth.AuthData]
//
// Carrier 组合以上三者。缺少某能力的上下文不满足对应接口，这是编译期事实。
// 可选值用指针表达，nil 即“未设置”。
//
// # 扩展层
//
// 扩展层拥有内层上下文和一个新值，直接实现新值的能力，其余能力转发给内层：
//
//	ExtendSpanID(inner, id)          *SpanIDExtension[C]
//	ExtendAuthorization(inner, a)    *AuthorizationExtension[C]
//	ExtendAuthData(inner, d)         *AuthDataExtension[C]
//	Extend(inner, item)              *Extension[C, T]   // 封闭集合之外的任意值
//
// 三个专用扩展各自枚举其余两种能力的转发实现。新增一种可扩展值需要为
// 每个已有扩展补一个转发方法，这个成本换来零分配、编译期可检查的访问。
// Extension[C, T] 的 T 不应是封闭集合中的类型，否则新值与内层同类槽位并存，
// 能力接口读到的是内层值。
//
// # 与 context.Context 的衔接
//
// 入口中间件通过 WithCarrier 把请求上下文放入 context.Context，
// 下游通过 FromContext / Lookup / RequireCarrier 取回。
// 这一层基于 context.Value，是唯一涉及运行时断言的地方。
//
// # 并发
//
// 上下文值只属于一条调用路径，读写不加锁；跨 goroutine 共享需外部同步，
// 或先 Clone。
package xctx
