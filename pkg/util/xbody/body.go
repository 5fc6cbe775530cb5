package xbody

import (
	"context"
	"io"
	"iter"
)

// Stream 异步分块数据源。
//
// Next 返回下一块数据；序列结束时返回 io.EOF。
// 与 io.Reader 一致，和 io.EOF 一同返回的数据仍然有效。
type Stream interface {
	Next(ctx context.Context) ([]byte, error)
}

// StreamFunc 函数适配器
type StreamFunc func(ctx context.Context) ([]byte, error)

// Next 实现 Stream
func (f StreamFunc) Next(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// Chunk channel 数据源的元素。Err 非 nil 表示数据源失败。
type Chunk struct {
	Data []byte
	Err  error
}

// buffer 聚合缓冲区
type buffer struct {
	data    []byte
	maxSize int
}

func newBuffer(o options) *buffer {
	return &buffer{data: make([]byte, 0, o.sizeHint), maxSize: o.maxSize}
}

func (b *buffer) append(p []byte) error {
	if b.maxSize > 0 && len(b.data)+len(p) > b.maxSize {
		return ErrTooLarge
	}
	b.data = append(b.data, p...)
	return nil
}

// Collect 按顺序拉取 s 的全部块并拼接。
//
// s 返回的第一个非 io.EOF 错误原样返回，已拼接的数据丢弃。
func Collect(ctx context.Context, s Stream, opts ...Option) ([]byte, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if s == nil {
		return nil, ErrNilStream
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	buf := newBuffer(o)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chunk, err := s.Next(ctx)
		if err != nil && err != io.EOF { //nolint:errorlint // io.EOF 按约定不包装
			return nil, err
		}
		if appendErr := buf.append(chunk); appendErr != nil {
			return nil, appendErr
		}
		if err == io.EOF { //nolint:errorlint // 同上
			return buf.data, nil
		}
	}
}

// CollectSeq 聚合 iter.Seq2 数据源。遇到错误时停止迭代。
func CollectSeq(ctx context.Context, seq iter.Seq2[[]byte, error], opts ...Option) ([]byte, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if seq == nil {
		return nil, ErrNilStream
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	buf := newBuffer(o)
	for chunk, err := range seq {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := buf.append(chunk); err != nil {
			return nil, err
		}
	}
	// 序列在最后一块之后才被取消
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return buf.data, nil
}

// CollectChan 聚合 channel 数据源，channel 关闭表示序列结束。
//
// 提前返回（出错或取消）时不再从 ch 接收，生产方应监听同一个 ctx 退出。
func CollectChan(ctx context.Context, ch <-chan Chunk, opts ...Option) ([]byte, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if ch == nil {
		return nil, ErrNilStream
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	buf := newBuffer(o)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case c, ok := <-ch:
			if !ok {
				return buf.data, nil
			}
			if c.Err != nil {
				return nil, c.Err
			}
			if err := buf.append(c.Data); err != nil {
				return nil, err
			}
		}
	}
}

// CollectReader 分块读取 r 直到 io.EOF。
//
// 单次 Read 调用本身不受 ctx 控制；需要中断阻塞读取时，调用方应关闭 r。
func CollectReader(ctx context.Context, r io.Reader, opts ...Option) ([]byte, error) {
	if r == nil {
		return nil, ErrNilStream
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return Collect(ctx, &readerStream{r: r, buf: make([]byte, o.chunkSize)}, opts...)
}

// FromReader 将 io.Reader 适配为 Stream。
//
// 返回的块在下一次 Next 调用前有效。chunkSize 非法时使用 DefaultChunkSize。
func FromReader(r io.Reader, chunkSize int) Stream {
	if chunkSize <= 0 || chunkSize > maxChunkSize {
		chunkSize = DefaultChunkSize
	}
	return &readerStream{r: r, buf: make([]byte, chunkSize)}
}

type readerStream struct {
	r   io.Reader
	buf []byte
}

func (s *readerStream) Next(_ context.Context) ([]byte, error) {
	n, err := s.r.Read(s.buf)
	return s.buf[:n], err
}
