package xctx

import "github.com/omeyang/xctxkit/pkg/business/xauth"

// 各专用扩展对内层的要求：内层必须持有扩展层不提供的另外两种值。
type (
	// SpanIDBase SpanIDExtension 的内层约束
	SpanIDBase interface {
		HasAuthorization
		HasAuthData
	}

	// AuthorizationBase AuthorizationExtension 的内层约束
	AuthorizationBase interface {
		HasSpanID
		HasAuthData
	}

	// AuthDataBase AuthDataExtension 的内层约束
	AuthDataBase interface {
		HasSpanID
		HasAuthorization
	}
)

// =============================================================================
// SpanIDExtension
// =============================================================================

// SpanIDExtension 在内层之上附加追踪标识
type SpanIDExtension[C SpanIDBase] struct {
	inner C
	item  Slot[XSpanID]
}

// ExtendSpanID 组合内层与追踪标识
func ExtendSpanID[C SpanIDBase](inner C, spanID XSpanID) *SpanIDExtension[C] {
	return &SpanIDExtension[C]{inner: inner, item: NewSlot(spanID)}
}

// Inner 返回内层上下文
func (e *SpanIDExtension[C]) Inner() C { return e.inner }

// Get 实现 Has[XSpanID]
func (e *SpanIDExtension[C]) Get() XSpanID { return e.item.Get() }

// GetMut 实现 Has[XSpanID]
func (e *SpanIDExtension[C]) GetMut() *XSpanID { return e.item.GetMut() }

// Set 实现 Has[XSpanID]
func (e *SpanIDExtension[C]) Set(v XSpanID) { e.item.Set(v) }

// SpanIDSlot 返回本层槽位
func (e *SpanIDExtension[C]) SpanIDSlot() *Slot[XSpanID] { return &e.item }

// AuthorizationSlot 转发给内层
func (e *SpanIDExtension[C]) AuthorizationSlot() *Slot[*xauth.Authorization] {
	return e.inner.AuthorizationSlot()
}

// AuthDataSlot 转发给内层
func (e *SpanIDExtension[C]) AuthDataSlot() *Slot[*xauth.AuthData] {
	return e.inner.AuthDataSlot()
}

// =============================================================================
// AuthorizationExtension
// =============================================================================

// AuthorizationExtension 在内层之上附加授权结果
type AuthorizationExtension[C AuthorizationBase] struct {
	inner C
	item  Slot[*xauth.Authorization]
}

// ExtendAuthorization 组合内层与授权结果
func ExtendAuthorization[C AuthorizationBase](inner C, a *xauth.Authorization) *AuthorizationExtension[C] {
	return &AuthorizationExtension[C]{inner: inner, item: NewSlot(a)}
}

// Inner 返回内层上下文
func (e *AuthorizationExtension[C]) Inner() C { return e.inner }

// Get 实现 Has[*xauth.Authorization]
func (e *AuthorizationExtension[C]) Get() *xauth.Authorization { return e.item.Get() }

// GetMut 实现 Has[*xauth.Authorization]
func (e *AuthorizationExtension[C]) GetMut() **xauth.Authorization { return e.item.GetMut() }

// Set 实现 Has[*xauth.Authorization]
func (e *AuthorizationExtension[C]) Set(v *xauth.Authorization) { e.item.Set(v) }

// AuthorizationSlot 返回本层槽位
func (e *AuthorizationExtension[C]) AuthorizationSlot() *Slot[*xauth.Authorization] {
	return &e.item
}

// SpanIDSlot 转发给内层
func (e *AuthorizationExtension[C]) SpanIDSlot() *Slot[XSpanID] {
	return e.inner.SpanIDSlot()
}

// AuthDataSlot 转发给内层
func (e *AuthorizationExtension[C]) AuthDataSlot() *Slot[*xauth.AuthData] {
	return e.inner.AuthDataSlot()
}

// =============================================================================
// AuthDataExtension
// =============================================================================

// AuthDataExtension 在内层之上附加原始凭据
type AuthDataExtension[C AuthDataBase] struct {
	inner C
	item  Slot[*xauth.AuthData]
}

// ExtendAuthData 组合内层与原始凭据
func ExtendAuthData[C AuthDataBase](inner C, d *xauth.AuthData) *AuthDataExtension[C] {
	return &AuthDataExtension[C]{inner: inner, item: NewSlot(d)}
}

// Inner 返回内层上下文
func (e *AuthDataExtension[C]) Inner() C { return e.inner }

// Get 实现 Has[*xauth.AuthData]
func (e *AuthDataExtension[C]) Get() *xauth.AuthData { return e.item.Get() }

// GetMut 实现 Has[*xauth.AuthData]
func (e *AuthDataExtension[C]) GetMut() **xauth.AuthData { return e.item.GetMut() }

// Set 实现 Has[*xauth.AuthData]
func (e *AuthDataExtension[C]) Set(v *xauth.AuthData) { e.item.Set(v) }

// AuthDataSlot 返回本层槽位
func (e *AuthDataExtension[C]) AuthDataSlot() *Slot[*xauth.AuthData] { return &e.item }

// SpanIDSlot 转发给内层
func (e *AuthDataExtension[C]) SpanIDSlot() *Slot[XSpanID] {
	return e.inner.SpanIDSlot()
}

// AuthorizationSlot 转发给内层
func (e *AuthDataExtension[C]) AuthorizationSlot() *Slot[*xauth.Authorization] {
	return e.inner.AuthorizationSlot()
}

// =============================================================================
// Extension 通用扩展
// =============================================================================

// Extension 在内层之上附加任意类型的值，封闭集合的能力转发给内层。
//
// T 为封闭集合中的类型（XSpanID、*xauth.Authorization、*xauth.AuthData）时，
// 对应能力由本层槽位回答，与 Get 保持一致，内层同类值经 Inner() 取得。
// 多层 Extension 叠加时，外层 Get 返回最外层的值。
type Extension[C Carrier, T any] struct {
	inner C
	item  Slot[T]
}

// Extend 组合内层与新值
func Extend[C Carrier, T any](inner C, item T) *Extension[C, T] {
	return &Extension[C, T]{inner: inner, item: NewSlot(item)}
}

// Inner 返回内层上下文
func (e *Extension[C, T]) Inner() C { return e.inner }

// Get 实现 Has[T]
func (e *Extension[C, T]) Get() T { return e.item.Get() }

// GetMut 实现 Has[T]
func (e *Extension[C, T]) GetMut() *T { return e.item.GetMut() }

// Set 实现 Has[T]
func (e *Extension[C, T]) Set(v T) { e.item.Set(v) }

// SpanIDSlot T 为 XSpanID 时返回本层槽位，否则转发给内层
func (e *Extension[C, T]) SpanIDSlot() *Slot[XSpanID] {
	if s, ok := any(&e.item).(*Slot[XSpanID]); ok {
		return s
	}
	return e.inner.SpanIDSlot()
}

// AuthorizationSlot T 为 *xauth.Authorization 时返回本层槽位，否则转发给内层
func (e *Extension[C, T]) AuthorizationSlot() *Slot[*xauth.Authorization] {
	if s, ok := any(&e.item).(*Slot[*xauth.Authorization]); ok {
		return s
	}
	return e.inner.AuthorizationSlot()
}

// AuthDataSlot T 为 *xauth.AuthData 时返回本层槽位，否则转发给内层
func (e *Extension[C, T]) AuthDataSlot() *Slot[*xauth.AuthData] {
	if s, ok := any(&e.item).(*Slot[*xauth.AuthData]); ok {
		return s
	}
	return e.inner.AuthDataSlot()
}

// 编译时接口检查
var (
	_ Carrier                   = (*SpanIDExtension[*Context])(nil)
	_ Has[XSpanID]              = (*SpanIDExtension[*Context])(nil)
	_ Carrier                   = (*AuthorizationExtension[*Context])(nil)
	_ Has[*xauth.Authorization] = (*AuthorizationExtension[*Context])(nil)
	_ Carrier                   = (*AuthDataExtension[*Context])(nil)
	_ Has[*xauth.AuthData]      = (*AuthDataExtension[*Context])(nil)
	_ Carrier                   = (*Extension[*Context, int])(nil)
	_ Has[int]                  = (*Extension[*Context, int])(nil)
)
