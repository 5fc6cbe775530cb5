package xbody

import "errors"

var (
	// ErrNilContext ctx 为 nil
	ErrNilContext = errors.New("xbody: nil context")

	// ErrNilStream 数据源为 nil
	ErrNilStream = errors.New("xbody: nil stream")

	// ErrTooLarge 聚合结果超过 WithMaxSize 设置的上限
	ErrTooLarge = errors.New("xbody: body exceeds max size")

	// ErrInvalidOption 选项取值非法
	ErrInvalidOption = errors.New("xbody: invalid option")
)
