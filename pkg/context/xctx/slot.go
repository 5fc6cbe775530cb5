package xctx

// Has 表示能读取、修改、替换一个 T 类型的值。
//
// 没有错误路径：只有确实持有 T 的类型才实现 Has[T]。
type Has[T any] interface {
	// Get 返回当前值
	Get() T
	// GetMut 返回指向存储位置的指针，可原地修改
	GetMut() *T
	// Set 替换当前值
	Set(v T)
}

// Slot 类型化存储单元，零值可用
type Slot[T any] struct {
	v T
}

var _ Has[string] = (*Slot[string])(nil)

// NewSlot 创建持有 v 的槽位
func NewSlot[T any](v T) Slot[T] {
	return Slot[T]{v: v}
}

// Get 返回当前值
func (s *Slot[T]) Get() T {
	return s.v
}

// GetMut 返回指向存储位置的指针
func (s *Slot[T]) GetMut() *T {
	return &s.v
}

// Set 替换当前值
func (s *Slot[T]) Set(v T) {
	s.v = v
}
