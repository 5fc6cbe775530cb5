package xlog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xctxkit/pkg/observability/xlog"
	"github.com/omeyang/xctxkit/pkg/observability/xrotate"
)

var errWrite = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func buildJSON(t *testing.T, b *xlog.Builder) (xlog.LoggerWithLevel, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, cleanup, err := b.SetOutput(&buf).SetFormat("json").Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })
	return l, &buf
}

func decode(t *testing.T, line string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &m))
	return m
}

func TestBuilder_Defaults(t *testing.T) {
	l, buf := buildJSON(t, xlog.New())
	ctx := context.Background()

	l.Debug(ctx, "hidden")
	l.Info(ctx, "shown", slog.Int("n", 1))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	m := decode(t, lines[0])
	assert.Equal(t, "shown", m["msg"])
	assert.Equal(t, "INFO", m["level"])
	assert.EqualValues(t, 1, m["n"])
	assert.Equal(t, xlog.LevelInfo, l.GetLevel())
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name string
		b    *xlog.Builder
		want error
	}{
		{"bad level", xlog.New().SetLevelString("verbose"), xlog.ErrUnknownLevel},
		{"bad format", xlog.New().SetFormat("xml"), xlog.ErrUnknownFormat},
		{"nil output", xlog.New().SetOutput(nil), xlog.ErrNilOutput},
		{"first error wins", xlog.New().SetFormat("xml").SetLevelString("nope"), xlog.ErrUnknownFormat},
		{"bad rotation", xlog.New().SetRotation("", xrotate.Config{}), xrotate.ErrEmptyFilename},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.b.Build()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuilder_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l, _, err := xlog.New().SetOutput(&buf).SetFormat(" TEXT ").Build()
	require.NoError(t, err)

	l.Warn(context.Background(), "careful", xlog.Component("auth"))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "component=auth")
}

func TestBuilder_ReplaceAttrAndFixedAttrs(t *testing.T) {
	b := xlog.New().
		SetAttrs(slog.String("service", "pets")).
		SetReplaceAttr(func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "token" {
				return slog.String("token", "***")
			}
			return a
		})
	l, buf := buildJSON(t, b)

	l.Info(context.Background(), "login", slog.String("token", "abc"))
	m := decode(t, strings.TrimSpace(buf.String()))
	assert.Equal(t, "***", m["token"])
	assert.Equal(t, "pets", m["service"])
}

func TestBuilder_AddSource(t *testing.T) {
	l, buf := buildJSON(t, xlog.New().SetAddSource(true))
	l.Info(context.Background(), "where")

	m := decode(t, strings.TrimSpace(buf.String()))
	src, ok := m["source"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, src["file"], "xlog_test.go")
}

func TestBuilder_Rotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, cleanup, err := xlog.New().SetRotation(path, xrotate.Config{MaxBackups: 1}).Build()
	require.NoError(t, err)

	l.Info(context.Background(), "to file")
	require.NoError(t, cleanup())
	// 重复调用返回相同结果
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestLogger_DynamicLevel(t *testing.T) {
	l, buf := buildJSON(t, xlog.New())
	child := l.With(slog.String("k", "v"))
	ctx := context.Background()

	child.Debug(ctx, "before")
	assert.Empty(t, buf.String())

	l.SetLevel(xlog.LevelDebug)
	assert.True(t, l.Enabled(ctx, xlog.LevelDebug))
	child.Debug(ctx, "after")
	assert.Contains(t, buf.String(), `"msg":"after"`)
	assert.Contains(t, buf.String(), `"k":"v"`)

	lwl, ok := child.(xlog.LoggerWithLevel)
	require.True(t, ok)
	assert.Equal(t, xlog.LevelDebug, lwl.GetLevel())
}

func TestLogger_WithGroup(t *testing.T) {
	l, buf := buildJSON(t, xlog.New())
	assert.Same(t, l, l.WithGroup(""))
	assert.Same(t, l, l.With())

	l.WithGroup("req").Info(context.Background(), "grouped", slog.String("id", "1"))
	m := decode(t, strings.TrimSpace(buf.String()))
	req, ok := m["req"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1", req["id"])
}

func TestLogger_OnError(t *testing.T) {
	var got []error
	l, _, err := xlog.New().
		SetOutput(failingWriter{}).
		SetOnError(func(err error) { got = append(got, err) }).
		Build()
	require.NoError(t, err)

	l.Error(context.Background(), "lost")
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], errWrite)
}

func TestLogger_OnErrorPanicIsolated(t *testing.T) {
	l, _, err := xlog.New().
		SetOutput(failingWriter{}).
		SetOnError(func(error) { panic("boom") }).
		Build()
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		l.Error(context.Background(), "lost")
	})
}

func TestLogger_NilContext(t *testing.T) {
	l, buf := buildJSON(t, xlog.New())
	var nilCtx context.Context
	assert.NotPanics(t, func() {
		l.Info(nilCtx, "no ctx")
	})
	assert.Contains(t, buf.String(), "no ctx")
}

func TestAttrs(t *testing.T) {
	assert.Equal(t, slog.Attr{}, xlog.Err(nil))
	assert.Equal(t, slog.String(xlog.KeyError, "x"), xlog.Err(errors.New("x")))
	assert.Equal(t, slog.Int(xlog.KeyStatusCode, 401), xlog.StatusCode(401))
	assert.Equal(t, slog.Int(xlog.KeySize, 3), xlog.Size(3))
	assert.Equal(t, slog.String(xlog.KeyMethod, "GET"), xlog.Method("GET"))
	assert.Equal(t, slog.String(xlog.KeyPath, "/x"), xlog.Path("/x"))
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	l, _, err := xlog.New().SetOutput(&buf).SetFormat("json").Build()
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		l.Info(ctx, "bench", slog.Int("i", i))
	}
}
