package xctx

// Wrapper 把 API 句柄与请求上下文绑在一起传递，不改变 API 自身的方法签名。
//
// A 通常是指针或接口，Wrapper 不拥有它；C 由 Wrapper 持有。
type Wrapper[A any, C any] struct {
	api     A
	context C
}

// Bind 创建 Wrapper
func Bind[A any, C any](api A, c C) Wrapper[A, C] {
	return Wrapper[A, C]{api: api, context: c}
}

// API 返回绑定的 API
func (w Wrapper[A, C]) API() A {
	return w.api
}

// Context 返回绑定的上下文
func (w Wrapper[A, C]) Context() C {
	return w.context
}

// ContextBinder API 类型可选实现的便捷方法约定：
//
//	func (c *PetClient) WithContext(ctx *xctx.Context) xctx.Wrapper[*PetClient, *xctx.Context] {
//		return xctx.Bind(c, ctx)
//	}
type ContextBinder[A any, C any] interface {
	WithContext(c C) Wrapper[A, C]
}
