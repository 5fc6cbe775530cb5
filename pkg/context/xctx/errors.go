package xctx

import "errors"

var (
	// ErrNilContext 传入的 context.Context 为 nil
	ErrNilContext = errors.New("xctx: nil context")

	// ErrNilCarrier 传入的请求上下文为 nil
	ErrNilCarrier = errors.New("xctx: nil carrier")

	// ErrMissingCarrier context.Context 中没有请求上下文
	ErrMissingCarrier = errors.New("xctx: missing request context")

	// ErrCarrierType 请求上下文存在，但不是调用方期望的具体类型
	ErrCarrierType = errors.New("xctx: unexpected request context type")
)
