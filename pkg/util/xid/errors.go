package xid

import "errors"

var (
	// ErrUnknownGenerator 生成器名称未知
	ErrUnknownGenerator = errors.New("xid: unknown generator")

	// ErrInvalidConfig 生成器配置无效
	ErrInvalidConfig = errors.New("xid: invalid config")

	// ErrNilGenerator 生成器为 nil 或未初始化
	ErrNilGenerator = errors.New("xid: nil generator")
)
