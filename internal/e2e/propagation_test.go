//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/omeyang/xctxkit/internal/settings"
	"github.com/omeyang/xctxkit/pkg/business/xauth"
	"github.com/omeyang/xctxkit/pkg/context/xctx"
	"github.com/omeyang/xctxkit/pkg/observability/xlog"
	"github.com/omeyang/xctxkit/pkg/observability/xtrace"
	"github.com/omeyang/xctxkit/pkg/util/xbody"
)

// seen gRPC 服务端看到的请求上下文
type seen struct {
	spanID  xctx.XSpanID
	subject string
}

// startGRPC 启动带 xtrace 拦截器的 health 服务，返回客户端连接
func startGRPC(t *testing.T, authz xauth.Authorizer, out chan<- seen) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	record := func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		c, err := xctx.RequireCarrier(ctx)
		if err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
		s := seen{spanID: xctx.SpanIDOf(c)}
		if a := xctx.AuthorizationOf(c); a != nil {
			s.subject = a.Subject
		}
		out <- s
		return handler(ctx, req)
	}
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		xtrace.UnaryServerInterceptor(xtrace.WithAuthorizer(authz), xtrace.WithRequireAuth(true)),
		record,
	))
	healthpb.RegisterHealthServer(srv, health.NewServer())

	served := make(chan struct{})
	go func() {
		defer close(served)
		_ = srv.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(xtrace.UnaryClientInterceptor()),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
		<-served
	})
	return conn
}

// TestHTTPToGRPC 入站 HTTP 请求的追踪标识和凭据经 gRPC 客户端拦截器传到下游服务
func TestHTTPToGRPC(t *testing.T) {
	s := settings.Default()
	s.Auth.Bearer = []settings.Credential{{Token: "edge-token", Subject: "edge"}}
	s.Auth.APIKeys = []settings.Credential{{Token: "internal-key", Subject: "gateway"}}
	authz, err := s.BuildAuthorizer()
	require.NoError(t, err)

	var logBuf bytes.Buffer
	logger, _, err := xlog.New().SetOutput(&logBuf).SetFormat("json").Build()
	require.NoError(t, err)

	downstream := make(chan seen, 1)
	client := healthpb.NewHealthClient(startGRPC(t, authz, downstream))

	opts, err := s.MiddlewareOptions(logger, authz)
	require.NoError(t, err)
	edge := xtrace.HTTPMiddleware(opts...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		c, err := xctx.Lookup[*xctx.Context](ctx)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		// 网关以自身身份调用下游，追踪标识保持不变
		c.AuthAPIKey("internal-key")

		body, err := xbody.CollectReader(ctx, r.Body, s.BodyOptions()...)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if _, err := client.Check(ctx, &healthpb.HealthCheckRequest{}); err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		xlog.FromContext(ctx).Info(ctx, "forwarded", xlog.Size(len(body)))
		_, _ = io.WriteString(w, "ok")
	}))
	srv := httptest.NewServer(edge)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL, strings.NewReader("payload"))
	require.NoError(t, err)
	req.Header.Set("X-Span-ID", "e2e-span")
	req.Header.Set("Authorization", "Bearer edge-token")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "e2e-span", resp.Header.Get("X-Span-ID"))
	assert.Equal(t, seen{spanID: "e2e-span", subject: "gateway"}, <-downstream)
	assert.Contains(t, logBuf.String(), `"x_span_id":"e2e-span"`)
	assert.Equal(t, 1, strings.Count(logBuf.String(), `"x_span_id"`))
}

// TestGRPCRejectsWithoutCredentials 没有请求上下文的调用被下游拒绝
func TestGRPCRejectsWithoutCredentials(t *testing.T) {
	authz := xauth.NewStaticAuthorizer().AddAPIKey("k", &xauth.Authorization{Subject: "s"})
	downstream := make(chan seen, 1)
	client := healthpb.NewHealthClient(startGRPC(t, authz, downstream))

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Empty(t, downstream)
}
