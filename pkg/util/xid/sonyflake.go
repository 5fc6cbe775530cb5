package xid

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sony/sonyflake/v2"
)

// Option Sonyflake 配置选项
type Option func(*options)

type options struct {
	machineID      func() (uint16, error)
	checkMachineID func(uint16) bool
}

// WithMachineID 设置机器 ID 获取函数。
// 未设置时使用 sonyflake 默认策略（私有 IP 低 16 位），
// 容器内无私有 IP 时会在 NewSonyflake 返回错误。
func WithMachineID(fn func() (uint16, error)) Option {
	return func(o *options) {
		o.machineID = fn
	}
}

// WithCheckMachineID 设置机器 ID 校验函数，返回 false 时 NewSonyflake 失败。
func WithCheckMachineID(fn func(uint16) bool) Option {
	return func(o *options) {
		o.checkMachineID = fn
	}
}

// Sonyflake 基于 sonyflake 的时序标识生成器，输出 base36 字符串。
type Sonyflake struct {
	sf *sonyflake.Sonyflake
}

var _ Generator = (*Sonyflake)(nil)

// NewSonyflake 创建 Sonyflake 生成器
func NewSonyflake(opts ...Option) (*Sonyflake, error) {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	var settings sonyflake.Settings
	if o.machineID != nil {
		fn := o.machineID
		settings.MachineID = func() (int, error) {
			id, err := fn()
			return int(id), err
		}
	}
	if o.checkMachineID != nil {
		check := o.checkMachineID
		settings.CheckMachineID = func(id int) bool {
			return check(uint16(id))
		}
	}

	sf, err := sonyflake.New(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &Sonyflake{sf: sf}, nil
}

// Generate 生成下一个标识
func (s *Sonyflake) Generate() (string, error) {
	if s == nil || s.sf == nil {
		return "", ErrNilGenerator
	}
	id, err := s.sf.NextID()
	if err != nil {
		if errors.Is(err, sonyflake.ErrOverTimeLimit) {
			return "", fmt.Errorf("xid: sonyflake time limit exceeded: %w", err)
		}
		return "", err
	}
	return strconv.FormatInt(id, 36), nil
}
