package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xctxkit/internal/settings"
	"github.com/omeyang/xctxkit/pkg/context/xctx"
	"github.com/omeyang/xctxkit/pkg/observability/xlog"
	"github.com/omeyang/xctxkit/pkg/observability/xtrace"
	"github.com/omeyang/xctxkit/pkg/util/xbody"
	"github.com/omeyang/xctxkit/pkg/util/xjson"
)

const shutdownTimeout = 5 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "启动 demo HTTP 服务",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "监听地址，为空时使用配置值"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, cfg, err := settings.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			if addr := cmd.String("addr"); addr != "" {
				s.Server.Addr = addr
			}
			logger, cleanup, err := s.BuildLogger(slog.String("service", "xctxctl"))
			if err != nil {
				return err
			}
			defer func() { _ = cleanup() }()

			ln, err := net.Listen("tcp", s.Server.Addr)
			if err != nil {
				return err
			}
			g, ctx := errgroup.WithContext(ctx)
			if cfg != nil {
				w, err := settings.WatchLevel(cfg, logger, logger)
				if err != nil {
					_ = ln.Close()
					return err
				}
				g.Go(func() error { return w.Run(ctx) })
			}
			g.Go(func() error { return serve(ctx, ln, s, logger) })
			return g.Wait()
		},
	}
}

// serve 在 ln 上提供服务直到 ctx 取消
func serve(ctx context.Context, ln net.Listener, s settings.Settings, logger xlog.Logger) error {
	h, err := newHandler(s, logger)
	if err != nil {
		_ = ln.Close()
		return err
	}
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	logger.Info(ctx, "xctxctl: listening", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newHandler 路由外层包 xtrace 中间件
func newHandler(s settings.Settings, logger xlog.Logger) (http.Handler, error) {
	authz, err := s.BuildAuthorizer()
	if err != nil {
		return nil, err
	}
	opts, err := s.MiddlewareOptions(logger, authz)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /whoami", handleWhoami)
	mux.Handle("POST /collect", collectHandler(s.BodyOptions()))
	return xtrace.HTTPMiddleware(opts...)(mux), nil
}

type whoami struct {
	SpanID  string   `json:"span_id"`
	Subject string   `json:"subject,omitempty"`
	Issuer  string   `json:"issuer,omitempty"`
	Scopes  []string `json:"scopes,omitempty"`
	All     bool     `json:"all_scopes,omitempty"`
}

func handleWhoami(w http.ResponseWriter, r *http.Request) {
	c, err := xctx.RequireCarrier(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resp := whoami{SpanID: string(xctx.SpanIDOf(c))}
	if a := xctx.AuthorizationOf(c); a != nil {
		resp.Subject = a.Subject
		resp.Issuer = a.Issuer
		resp.Scopes = a.Scopes.List()
		resp.All = a.Scopes.All()
	}
	writeJSON(w, r, http.StatusOK, resp)
}

type digest struct {
	SpanID string `json:"span_id"`
	Size   int    `json:"size"`
	SHA256 string `json:"sha256"`
}

// collectHandler 聚合请求体，超过上限返回 413
func collectHandler(opts []xbody.Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := xbody.CollectReader(r.Context(), r.Body, opts...)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, xbody.ErrTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			xlog.FromContext(r.Context()).Warn(r.Context(), "xctxctl: collect failed", xlog.Err(err))
			http.Error(w, http.StatusText(status), status)
			return
		}
		sum := sha256.Sum256(data)
		writeJSON(w, r, http.StatusOK, digest{
			SpanID: string(xctx.SpanIDFromContext(r.Context())),
			Size:   len(data),
			SHA256: hex.EncodeToString(sum[:]),
		})
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := xjson.Write(w, v); err != nil {
		xlog.FromContext(r.Context()).Error(r.Context(), "xctxctl: write response", xlog.Err(err))
	}
}
