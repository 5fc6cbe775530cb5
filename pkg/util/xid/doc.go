// Package xid 提供请求追踪标识（X-Span-ID）的生成器。
//
// 三种实现：
//   - UUID：RFC 4122 v4，默认实现，与上游服务常见的 X-Span-ID 格式一致
//   - Hex：32 位小写十六进制（128-bit 随机），与 W3C trace-id 格式一致
//   - Sonyflake：基于 sony/sonyflake 的时序 ID，base36 编码，可排序
//
// 所有实现都满足 [Generator] 接口，并发安全。
//
// # 快速开始
//
//	gen := xid.UUID()
//	id, err := gen.Generate()
//
// 按名称选择（配置驱动）：
//
//	gen, err := xid.ByName("sonyflake", xid.WithMachineID(func() (uint16, error) { return 7, nil }))
package xid
