package xrotate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// 默认值
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 7
	DefaultMaxAgeDays = 30

	maxSizeMB  = 10240
	maxBackups = 1024
	maxAgeDays = 3650
)

// Rotator 并发安全的轮转写入器。Close 之后 Write/Rotate 返回 ErrClosed。
type Rotator interface {
	io.WriteCloser
	// Rotate 立即切换到新文件
	Rotate() error
}

// Config 轮转参数，零值字段使用默认值
type Config struct {
	MaxSizeMB  int  `koanf:"max_size_mb"`
	MaxBackups int  `koanf:"max_backups"`
	MaxAgeDays int  `koanf:"max_age_days"`
	Compress   bool `koanf:"compress"`
	LocalTime  bool `koanf:"local_time"`
}

func (c Config) withDefaults() Config {
	if c.MaxSizeMB == 0 {
		c.MaxSizeMB = DefaultMaxSizeMB
	}
	if c.MaxBackups == 0 && c.MaxAgeDays == 0 {
		c.MaxBackups = DefaultMaxBackups
		c.MaxAgeDays = DefaultMaxAgeDays
	}
	return c
}

// Validate 校验参数范围
func (c Config) Validate() error {
	switch {
	case c.MaxSizeMB <= 0 || c.MaxSizeMB > maxSizeMB:
		return fmt.Errorf("%w: max_size_mb %d not in 1~%d", ErrInvalidConfig, c.MaxSizeMB, maxSizeMB)
	case c.MaxBackups < 0 || c.MaxBackups > maxBackups:
		return fmt.Errorf("%w: max_backups %d not in 0~%d", ErrInvalidConfig, c.MaxBackups, maxBackups)
	case c.MaxAgeDays < 0 || c.MaxAgeDays > maxAgeDays:
		return fmt.Errorf("%w: max_age_days %d not in 0~%d", ErrInvalidConfig, c.MaxAgeDays, maxAgeDays)
	}
	return nil
}

type rotator struct {
	logger *lumberjack.Logger
	closed atomic.Bool
}

// New 创建轮转器。父目录不存在时以 0750 创建。
func New(filename string, cfg Config) (Rotator, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path := filepath.Clean(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("xrotate: create dir: %w", err)
	}

	return &rotator{
		logger: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		},
	}, nil
}

func (r *rotator) Write(p []byte) (int, error) {
	if r.closed.Load() {
		return 0, ErrClosed
	}
	n, err := r.logger.Write(p)
	// Close 可能发生在 Write 执行期间
	if err != nil && r.closed.Load() {
		return n, ErrClosed
	}
	return n, err
}

func (r *rotator) Rotate() error {
	if r.closed.Load() {
		return ErrClosed
	}
	return r.logger.Rotate()
}

// Close 重复调用返回 ErrClosed
func (r *rotator) Close() error {
	if r.closed.Swap(true) {
		return ErrClosed
	}
	return r.logger.Close()
}
