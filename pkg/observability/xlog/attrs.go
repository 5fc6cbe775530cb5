package xlog

import (
	"log/slog"
	"time"
)

// 常用字段名
const (
	KeyError      = "error"
	KeyDuration   = "duration"
	KeyComponent  = "component"
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatusCode = "status_code"
	KeySize       = "size"
)

// Err 错误属性，err 为 nil 时返回空属性（slog 会忽略）
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 人类可读的耗时，如 "1.5s"
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Component 日志来源组件
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Method HTTP/RPC 方法
func Method(m string) slog.Attr {
	return slog.String(KeyMethod, m)
}

// Path 请求路径
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// StatusCode HTTP 状态码
func StatusCode(code int) slog.Attr {
	return slog.Int(KeyStatusCode, code)
}

// Size 字节数
func Size(n int) slog.Attr {
	return slog.Int(KeySize, n)
}
