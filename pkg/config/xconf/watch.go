package xconf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce 默认防抖窗口
const DefaultDebounce = 100 * time.Millisecond

// ChangeFunc 配置变更回调。err 非 nil 表示重载失败或监视出错，此时 cfg 仍为旧配置。
type ChangeFunc func(cfg *Config, err error)

// WatchOption 监视选项
type WatchOption func(*Watcher)

// WithDebounce 设置防抖窗口，非正值被忽略
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger 设置记录回调 panic 的 logger，默认 slog.Default()，nil 被忽略
func WithLogger(l *slog.Logger) WatchOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher 配置文件监视器
type Watcher struct {
	cfg      *Config
	fs       *fsnotify.Watcher
	onChange ChangeFunc
	debounce time.Duration
	file     string
	logger   *slog.Logger

	running   atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Watch 创建监视器，调用 Run 开始监视。未调用 Run 时需调用 Close 释放资源。
func Watch(cfg *Config, onChange ChangeFunc, opts ...WatchOption) (*Watcher, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.path == "" {
		return nil, ErrNotFromFile
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xconf: create watcher: %w", err)
	}
	dir := filepath.Dir(cfg.path)
	if err := fs.Add(dir); err != nil {
		return nil, errors.Join(fmt.Errorf("xconf: watch %s: %w", dir, err), fs.Close())
	}

	w := &Watcher{
		cfg:      cfg,
		fs:       fs,
		onChange: onChange,
		debounce: DefaultDebounce,
		file:     filepath.Base(cfg.path),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Run 阻塞直到 ctx 取消，返回前关闭底层 fsnotify。重复调用返回 ErrWatcherRunning。
func (w *Watcher) Run(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		return ErrWatcherRunning
	}
	defer func() { _ = w.Close() }()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.relevant(ev) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.notify(fmt.Errorf("xconf: watch error: %w", err))
		case <-timer.C:
			w.notify(w.cfg.Reload())
		}
	}
}

// Close 释放 fsnotify 资源，可重复调用
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.fs.Close()
	})
	return w.closeErr
}

// relevant 只关心目标文件的写入、创建和 rename
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != w.file {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// notify 回调 panic 被记录，不终止监视循环
func (w *Watcher) notify(err error) {
	if w.onChange == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("xconf: change callback panic recovered",
				slog.String("path", w.cfg.path),
				slog.Any("panic", r),
				slog.Uint64("version", w.cfg.Version()),
			)
		}
	}()
	w.onChange(w.cfg, err)
}
