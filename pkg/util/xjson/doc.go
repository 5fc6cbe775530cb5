// Package xjson 命令行和 demo 服务共用的 JSON 输出。
//
// 与 encoding/json 默认行为不同，输出不转义 HTML 字符，便于在终端查看 header 值和 URL。
package xjson
