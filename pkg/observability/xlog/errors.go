package xlog

import "errors"

var (
	// ErrUnknownLevel 无法解析的级别
	ErrUnknownLevel = errors.New("xlog: unknown level")

	// ErrUnknownFormat 不支持的输出格式
	ErrUnknownFormat = errors.New("xlog: unknown format")

	// ErrNilHandler NewEnrichHandler 的 base 为 nil
	ErrNilHandler = errors.New("xlog: base handler is nil")

	// ErrNilOutput SetOutput 传入 nil
	ErrNilOutput = errors.New("xlog: nil output")
)
