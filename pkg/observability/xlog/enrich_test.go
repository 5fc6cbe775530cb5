package xlog_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xctxkit/pkg/business/xauth"
	"github.com/omeyang/xctxkit/pkg/context/xctx"
	"github.com/omeyang/xctxkit/pkg/observability/xlog"
)

func TestNewEnrichHandler_Nil(t *testing.T) {
	_, err := xlog.NewEnrichHandler(nil)
	assert.ErrorIs(t, err, xlog.ErrNilHandler)
}

func TestEnrichHandler(t *testing.T) {
	tests := []struct {
		name    string
		carrier func() *xctx.Context
		want    []string
		notWant []string
	}{
		{
			name:    "no carrier",
			want:    []string{`"msg":"m"`},
			notWant: []string{xctx.KeySpanID, xctx.KeyAuthSubject},
		},
		{
			name:    "span only",
			carrier: func() *xctx.Context { return xctx.NewWithSpanID("s-1") },
			want:    []string{`"x_span_id":"s-1"`},
			notWant: []string{xctx.KeyAuthSubject, xctx.KeyAuthScheme},
		},
		{
			name: "authorized",
			carrier: func() *xctx.Context {
				c := xctx.NewWithSpanID("s-2")
				c.AuthorizationSlot().Set(&xauth.Authorization{Subject: "svc"})
				c.AuthBearer("secret-token")
				return c
			},
			want:    []string{`"x_span_id":"s-2"`, `"auth_subject":"svc"`, `"auth_scheme":"bearer"`},
			notWant: []string{"secret-token"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h, err := xlog.NewEnrichHandler(slog.NewJSONHandler(&buf, nil))
			require.NoError(t, err)

			ctx := context.Background()
			if tt.carrier != nil {
				ctx, err = xctx.WithCarrier(ctx, tt.carrier())
				require.NoError(t, err)
			}
			slog.New(h).InfoContext(ctx, "m")

			out := buf.String()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, out, nw)
			}
		})
	}
}

func TestEnrichHandler_SpanBoundOnce(t *testing.T) {
	var buf bytes.Buffer
	h, err := xlog.NewEnrichHandler(slog.NewJSONHandler(&buf, nil))
	require.NoError(t, err)

	c := xctx.NewWithSpanID("s-3")
	ctx, _ := xctx.WithCarrier(context.Background(), c)
	logger := slog.New(h).With(slog.String(xctx.KeySpanID, "s-3"))
	logger.InfoContext(ctx, "once")

	assert.Equal(t, 1, strings.Count(buf.String(), xctx.KeySpanID))
}

func TestEnrichHandler_DoesNotMutateRecord(t *testing.T) {
	var a, b bytes.Buffer
	h, err := xlog.NewEnrichHandler(slog.NewJSONHandler(&a, nil))
	require.NoError(t, err)

	ctx, _ := xctx.WithCarrier(context.Background(), xctx.NewWithSpanID("s-4"))
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "shared", 0)
	require.NoError(t, h.Handle(ctx, r))
	require.NoError(t, slog.NewJSONHandler(&b, nil).Handle(ctx, r))

	assert.Contains(t, a.String(), "s-4")
	assert.NotContains(t, b.String(), "s-4")
}
