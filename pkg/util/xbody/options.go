package xbody

import "fmt"

const (
	// DefaultChunkSize CollectReader / FromReader 单次读取的字节数
	DefaultChunkSize = 32 << 10

	maxChunkSize = 16 << 20
)

// Option 聚合选项
type Option func(*options)

type options struct {
	maxSize     int
	sizeHint    int
	chunkSize   int
	concurrency int
}

func defaultOptions() options {
	return options{chunkSize: DefaultChunkSize}
}

func applyOptions(opts []Option) (options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := o.validate(); err != nil {
		return options{}, err
	}
	return o, nil
}

// WithMaxSize 设置聚合结果的字节上限，超过时返回 ErrTooLarge。
// n <= 0 表示不限制（默认）。
func WithMaxSize(n int) Option {
	if n < 0 {
		n = 0
	}
	return func(o *options) {
		o.maxSize = n
	}
}

// WithSizeHint 预分配缓冲区容量，通常取 Content-Length
func WithSizeHint(n int) Option {
	if n < 0 {
		n = 0
	}
	return func(o *options) {
		o.sizeHint = n
	}
}

// WithChunkSize 设置从 io.Reader 单次读取的字节数，默认 32KiB，上限 16MiB
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithConcurrency 限制 CollectAll 同时聚合的流数量，n <= 0 表示不限制
func WithConcurrency(n int) Option {
	if n < 0 {
		n = 0
	}
	return func(o *options) {
		o.concurrency = n
	}
}

func (o *options) validate() error {
	if o.chunkSize <= 0 || o.chunkSize > maxChunkSize {
		return fmt.Errorf("%w: chunk size must be in (0, %d], got %d",
			ErrInvalidOption, maxChunkSize, o.chunkSize)
	}
	// 预分配不超过上限
	if o.maxSize > 0 && o.sizeHint > o.maxSize {
		o.sizeHint = o.maxSize
	}
	return nil
}
