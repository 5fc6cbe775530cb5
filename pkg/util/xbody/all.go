package xbody

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CollectAll 并发聚合多个互不相关的流，结果与 streams 顺序一一对应。
//
// 任一流失败时取消其余流，返回首个失败的错误（不包装），结果为 nil。
// 每个流内部仍然按顺序拉取。
func CollectAll(ctx context.Context, streams []Stream, opts ...Option) ([][]byte, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	for _, s := range streams {
		if s == nil {
			return nil, ErrNilStream
		}
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	results := make([][]byte, len(streams))
	g, gctx := errgroup.WithContext(ctx)
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}
	for i, s := range streams {
		g.Go(func() error {
			body, err := Collect(gctx, s, opts...)
			if err != nil {
				return err
			}
			results[i] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
