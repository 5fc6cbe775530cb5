package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloSHA256 = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

// runCLI 执行命令，返回退出码和输出
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"xctxctl"}, args...),
		strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestHeaders(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bearer", []string{"--span-id", "abc", "--bearer", "t1"}, "Authorization: Bearer t1\nX-Span-Id: abc\n"},
		{"basic", []string{"--span-id", "abc", "--basic", "u:p"}, "Authorization: Basic dTpw\nX-Span-Id: abc\n"},
		{"api key", []string{"--api-key", "k1"}, "X-Api-Key: k1\n"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, "", append([]string{"headers"}, tt.args...)...)
			require.Equal(t, 0, code, errOut)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestHeaders_GenerateJSON(t *testing.T) {
	code, out, errOut := runCLI(t, "", "headers", "--generate", "--bearer", "t1", "--json")
	require.Equal(t, 0, code, errOut)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Bearer t1", got["Authorization"])
	assert.Len(t, got["X-Span-Id"], 36, "默认 UUID 生成器")
}

func TestHeaders_ConfigAPIKeyHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trace:\n  api_key_header: X-Key\n"), 0o600))

	code, out, errOut := runCLI(t, "", "-c", path, "headers", "--api-key", "k1")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "X-Key: k1\n", out)
}

func TestHeaders_UsageErrors(t *testing.T) {
	code, _, errOut := runCLI(t, "", "headers", "--bearer", "t", "--api-key", "k")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "mutually exclusive")

	code, _, errOut = runCLI(t, "", "headers", "--basic", "nocolon")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "user:password")
}

func TestHeaders_BadConfig(t *testing.T) {
	code, _, errOut := runCLI(t, "", "-c", filepath.Join(t.TempDir(), "missing.yaml"), "headers")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "xconf")
}

func TestCollect_Stdin(t *testing.T) {
	code, out, errOut := runCLI(t, "hello", "collect", "--chunk-size", "2")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "5\t"+helloSHA256+"\t-\n", out)
}

func TestCollect_Files(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("hello"), 0o600))
	require.NoError(t, os.WriteFile(b, nil, 0o600))

	code, out, errOut := runCLI(t, "", "collect", "-j", "2", a, b)
	require.Equal(t, 0, code, errOut)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "5\t"+helloSHA256+"\t"+a, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0\te3b0c44298fc1c149afbf4c8996fb924"), lines[1])
}

func TestCollect_Errors(t *testing.T) {
	code, _, errOut := runCLI(t, "hello", "collect", "--max-size", "3")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "xbody")

	code, _, _ = runCLI(t, "hello", "collect", "--chunk-size", "0")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI(t, "", "collect", filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, 1, code)
}
