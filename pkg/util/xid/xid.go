package xid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// 生成器名称，用于配置。
const (
	NameUUID      = "uuid"
	NameHex       = "hex"
	NameSonyflake = "sonyflake"
)

// hexIDSize 128-bit (16 bytes) -> 32 hex chars
const hexIDSize = 16

// Generator 追踪标识生成器
type Generator interface {
	// Generate 生成一个新的非空标识
	Generate() (string, error)
}

// GeneratorFunc 函数适配器
type GeneratorFunc func() (string, error)

// Generate 调用 f 本身
func (f GeneratorFunc) Generate() (string, error) {
	return f()
}

// UUID 返回 UUID v4 生成器
func UUID() Generator {
	return GeneratorFunc(func() (string, error) {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", fmt.Errorf("xid: uuid: %w", err)
		}
		return id.String(), nil
	})
}

// Hex 返回 32 位十六进制随机标识生成器。
//
// W3C 规范禁止全零 trace-id，出现全零时重新生成。
func Hex() Generator {
	return GeneratorFunc(func() (string, error) {
		var buf [hexIDSize]byte
		for {
			if _, err := rand.Read(buf[:]); err != nil {
				return "", fmt.Errorf("xid: crypto/rand: %w", err)
			}
			if !isAllZeros(buf[:]) {
				return hex.EncodeToString(buf[:]), nil
			}
		}
	})
}

// ByName 按名称创建生成器，名称大小写不敏感，空字符串等价于 uuid。
// opts 仅对 sonyflake 生效。
func ByName(name string, opts ...Option) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameUUID:
		return UUID(), nil
	case NameHex:
		return Hex(), nil
	case NameSonyflake:
		return NewSonyflake(opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, name)
	}
}

// Must 生成标识，失败时 panic。
// 仅用于熵源不可用即应终止进程的入口场景。
func Must(g Generator) string {
	id, err := g.Generate()
	if err != nil {
		panic(err)
	}
	return id
}

func isAllZeros(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}
