package xtrace

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/omeyang/xctxkit/pkg/business/xauth"
	"github.com/omeyang/xctxkit/pkg/context/xctx"
)

// gRPC metadata key
const (
	MetaSpanID        = "x-span-id"
	MetaAuthorization = "authorization"
	MetaAPIKey        = "x-api-key"
)

// metadataGetter md.Get 对 key 大小写不敏感
func metadataGetter(md metadata.MD) headerGetter {
	return func(name string) string {
		if vs := md.Get(name); len(vs) > 0 {
			return strings.TrimSpace(vs[0])
		}
		return ""
	}
}

func incomingCarrier(ctx context.Context, cfg *config) (*xctx.Context, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	return newCarrier(ctx, metadataGetter(md), cfg)
}

func grpcError(err error) error {
	if xauth.IsAuthError(err) {
		return status.Error(codes.Unauthenticated, err.Error())
	}
	return status.Error(codes.Internal, "xtrace: authorization backend failure")
}

// UnaryServerInterceptor 一元服务端拦截器
func UnaryServerInterceptor(opts ...Option) grpc.UnaryServerInterceptor {
	cfg := applyOptions(opts)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		c, err := incomingCarrier(ctx, cfg)
		if id := c.SpanIDSlot().Get(); id != "" {
			// 不在 gRPC 服务端上下文中（如直接调用）时 SetHeader 返回错误，忽略
			_ = grpc.SetHeader(ctx, metadata.Pairs(MetaSpanID, string(id)))
		}
		if err != nil {
			logReject(ctx, c, cfg, "grpc", info.FullMethod, err)
			return nil, grpcError(err)
		}
		ctx, _ = xctx.WithCarrier(ctx, c)
		return handler(ctx, req)
	}
}

// StreamServerInterceptor 流式服务端拦截器
func StreamServerInterceptor(opts ...Option) grpc.StreamServerInterceptor {
	cfg := applyOptions(opts)
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx := ss.Context()
		c, err := incomingCarrier(ctx, cfg)
		if id := c.SpanIDSlot().Get(); id != "" {
			_ = ss.SetHeader(metadata.Pairs(MetaSpanID, string(id)))
		}
		if err != nil {
			logReject(ctx, c, cfg, "grpc", info.FullMethod, err)
			return grpcError(err)
		}
		ctx, _ = xctx.WithCarrier(ctx, c)
		return handler(srv, &serverStream{ServerStream: ss, ctx: ctx})
	}
}

// serverStream 替换 Context 的 ServerStream
type serverStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *serverStream) Context() context.Context {
	return s.ctx
}

// InjectToOutgoingContext 将 ctx 中请求上下文的追踪标识和凭据写入 outgoing metadata。
// 已有 metadata 被复制后修改，同名 key 被覆盖。
func InjectToOutgoingContext(ctx context.Context, opts ...Option) context.Context {
	c, ok := xctx.FromContext(ctx)
	if !ok {
		return ctx
	}
	md, ok := metadata.FromOutgoingContext(ctx)
	if ok {
		md = md.Copy()
	} else {
		md = metadata.MD{}
	}
	cfg := applyOptions(opts)
	changed := false
	injectTo(c, func(k, v string) {
		md.Set(k, v)
		changed = true
	}, cfg.apiKeyHeader)
	if !changed {
		return ctx
	}
	return metadata.NewOutgoingContext(ctx, md)
}

// UnaryClientInterceptor 一元客户端拦截器
func UnaryClientInterceptor(opts ...Option) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any,
		cc *grpc.ClientConn, invoker grpc.UnaryInvoker, callOpts ...grpc.CallOption,
	) error {
		return invoker(InjectToOutgoingContext(ctx, opts...), method, req, reply, cc, callOpts...)
	}
}

// StreamClientInterceptor 流式客户端拦截器
func StreamClientInterceptor(opts ...Option) grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn,
		method string, streamer grpc.Streamer, callOpts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		return streamer(InjectToOutgoingContext(ctx, opts...), desc, cc, method, callOpts...)
	}
}
