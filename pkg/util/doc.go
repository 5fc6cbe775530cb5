// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xbody: 流式请求体聚合，支持 Stream、iter.Seq2、channel、io.Reader 数据源
//   - xid: 追踪标识生成器（UUID v4、随机 hex、sonyflake）
//   - xjson: JSON 输出，缩进且不转义 HTML
package util
