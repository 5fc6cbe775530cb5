package xrotate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	dir := t.TempDir()

	_, err := New("", Config{})
	assert.ErrorIs(t, err, ErrEmptyFilename)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"size too large", Config{MaxSizeMB: maxSizeMB + 1}},
		{"negative size", Config{MaxSizeMB: -1}},
		{"negative backups", Config{MaxBackups: -1, MaxAgeDays: 1}},
		{"age too large", Config{MaxAgeDays: maxAgeDays + 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(filepath.Join(dir, "a.log"), tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	c := Config{}.withDefaults()
	assert.Equal(t, DefaultMaxSizeMB, c.MaxSizeMB)
	assert.Equal(t, DefaultMaxBackups, c.MaxBackups)
	assert.Equal(t, DefaultMaxAgeDays, c.MaxAgeDays)

	// 显式设置了清理策略时不覆盖
	c = Config{MaxBackups: 2}.withDefaults()
	assert.Equal(t, 2, c.MaxBackups)
	assert.Zero(t, c.MaxAgeDays)
}

func TestRotator_WriteRotateClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "app.log")

	r, err := New(path, Config{MaxBackups: 2})
	require.NoError(t, err)

	n, err := r.Write([]byte("line 1\n"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	require.NoError(t, r.Rotate())
	_, err = r.Write([]byte("line 2\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line 2\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, r.Close())
	assert.ErrorIs(t, r.Close(), ErrClosed)
	_, err = r.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, r.Rotate(), ErrClosed)
}
