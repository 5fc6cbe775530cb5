package xjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMarshal 序列化失败
var ErrMarshal = errors.New("xjson: marshal failed")

// Write 将 v 编码为缩进 JSON 写入 w，末尾带换行
func Write(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrMarshal, err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Pretty 返回缩进 JSON，不带末尾换行。失败时返回 "<marshal error: ...>"，用于日志和调试。
func Pretty(v any) string {
	var sb strings.Builder
	if err := Write(&sb, v); err != nil {
		return fmt.Sprintf("<marshal error: %v>", err)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
