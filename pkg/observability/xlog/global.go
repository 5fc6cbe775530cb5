package xlog

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// 全局 logger 面向命令行工具等简单场景，服务端代码应显式持有 Logger。

var global atomic.Pointer[LoggerWithLevel]

// Default 返回全局 logger，首次调用时按 New() 的默认配置创建
func Default() LoggerWithLevel {
	if l := global.Load(); l != nil {
		return *l
	}
	l, _, err := New().Build()
	if err != nil {
		lv := new(slog.LevelVar)
		l = newLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}), lv, false, nil)
	}
	if global.CompareAndSwap(nil, &l) {
		return l
	}
	return *global.Load()
}

// SetDefault 替换全局 logger，nil 被忽略
func SetDefault(l LoggerWithLevel) {
	if l == nil {
		return
	}
	global.Store(&l)
}

// ResetDefault 恢复为未初始化状态，仅用于测试
func ResetDefault() {
	global.Store(nil)
}

func globalLog(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	l := Default()
	if xl, ok := l.(*xlogger); ok {
		xl.logSkip(ctx, level, msg, attrs, 1)
		return
	}
	switch level {
	case slog.LevelDebug:
		l.Debug(ctx, msg, attrs...)
	case slog.LevelInfo:
		l.Info(ctx, msg, attrs...)
	case slog.LevelWarn:
		l.Warn(ctx, msg, attrs...)
	default:
		l.Error(ctx, msg, attrs...)
	}
}

func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	globalLog(ctx, slog.LevelDebug, msg, attrs)
}

func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	globalLog(ctx, slog.LevelInfo, msg, attrs)
}

func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	globalLog(ctx, slog.LevelWarn, msg, attrs)
}

func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	globalLog(ctx, slog.LevelError, msg, attrs)
}
