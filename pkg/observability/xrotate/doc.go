// Package xrotate 为日志文件提供按大小轮转的 io.WriteCloser，基于 lumberjack。
//
// 通常不直接使用，而是通过 xlog.Builder.SetRotation 接入。
package xrotate
