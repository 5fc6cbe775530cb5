// Package xbody 把分块到达的响应体聚合为一个完整的字节切片。
//
// 数据源可以是 Stream、iter.Seq2、channel 或 io.Reader，聚合算法一致：
//
//   - 按到达顺序拼接各块
//   - 遇到第一个错误立即停止消费，原样返回该错误（不包装），丢弃已拼接的部分
//   - 序列结束时返回完整缓冲区；没有任何块时返回非 nil 的空切片
//   - ctx 取消时返回 ctx.Err()
//
// 聚合本身不做超时和重试，超时由调用方通过 ctx 控制。
//
// 块数据在追加时被复制，数据源可以复用自己的缓冲区。
//
// # 并发聚合
//
// CollectAll 并发聚合多个互不相关的流，任一流失败时取消其余流并返回首个错误。
package xbody
