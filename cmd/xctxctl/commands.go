package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xctxkit/internal/settings"
	"github.com/omeyang/xctxkit/pkg/context/xctx"
	"github.com/omeyang/xctxkit/pkg/observability/xtrace"
	"github.com/omeyang/xctxkit/pkg/util/xbody"
	"github.com/omeyang/xctxkit/pkg/util/xid"
	"github.com/omeyang/xctxkit/pkg/util/xjson"
)

func loadSettings(cmd *cli.Command) (settings.Settings, error) {
	s, _, err := settings.Load(cmd.String("config"))
	return s, err
}

func headersCommand() *cli.Command {
	return &cli.Command{
		Name:  "headers",
		Usage: "构造请求上下文并打印出站请求头",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "span-id", Usage: "追踪标识"},
			&cli.BoolFlag{Name: "generate", Aliases: []string{"g"}, Usage: "未指定 --span-id 时按配置的生成器生成"},
			&cli.StringFlag{Name: "bearer", Usage: "Bearer token"},
			&cli.StringFlag{Name: "basic", Usage: "Basic 凭据 user:password"},
			&cli.StringFlag{Name: "api-key", Usage: "API Key"},
			&cli.BoolFlag{Name: "json", Usage: "以 JSON 输出"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			c, err := buildContext(s, cmd)
			if err != nil {
				return err
			}
			h := http.Header{}
			xtrace.InjectHeader(c, h, xtrace.WithAPIKeyHeader(s.Trace.APIKeyHeader))
			return printHeaders(cmd.Root().Writer, h, cmd.Bool("json"))
		},
	}
}

// buildContext 由命令行参数构造请求上下文，凭据参数互斥
func buildContext(s settings.Settings, cmd *cli.Command) (*xctx.Context, error) {
	id := cmd.String("span-id")
	if id == "" && cmd.Bool("generate") {
		gen, err := xid.ByName(s.Trace.Generator)
		if err != nil {
			return nil, err
		}
		if id, err = gen.Generate(); err != nil {
			return nil, err
		}
	}
	c := xctx.NewWithSpanID(id)

	set := 0
	for _, name := range []string{"bearer", "basic", "api-key"} {
		if cmd.IsSet(name) {
			set++
		}
	}
	if set > 1 {
		return nil, usagef("--bearer, --basic and --api-key are mutually exclusive")
	}
	switch {
	case cmd.IsSet("bearer"):
		c.AuthBearer(cmd.String("bearer"))
	case cmd.IsSet("api-key"):
		c.AuthAPIKey(cmd.String("api-key"))
	case cmd.IsSet("basic"):
		user, pass, ok := strings.Cut(cmd.String("basic"), ":")
		if !ok {
			return nil, usagef("--basic expects user:password")
		}
		c.AuthBasic(user, pass)
	}
	return c, nil
}

func printHeaders(w io.Writer, h http.Header, asJSON bool) error {
	if asJSON {
		flat := make(map[string]string, len(h))
		for k := range h {
			flat[k] = h.Get(k)
		}
		return xjson.Write(w, flat)
	}
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s: %s\n", k, h.Get(k)); err != nil {
			return err
		}
	}
	return nil
}

func collectCommand() *cli.Command {
	return &cli.Command{
		Name:      "collect",
		Usage:     "聚合文件或标准输入，打印大小和 sha256",
		ArgsUsage: "[file...]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "max-size", Usage: "单个输入上限（字节），0 使用配置值"},
			&cli.IntFlag{Name: "chunk-size", Usage: "每次读取的块大小（字节）", Value: xbody.DefaultChunkSize},
			&cli.IntFlag{Name: "concurrency", Aliases: []string{"j"}, Usage: "并发聚合的文件数", Value: 4},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			opts := s.BodyOptions()
			if n := cmd.Int("max-size"); n > 0 {
				opts = append(opts, xbody.WithMaxSize(n))
			}
			chunk := cmd.Int("chunk-size")
			opts = append(opts,
				xbody.WithChunkSize(chunk),
				xbody.WithConcurrency(cmd.Int("concurrency")),
			)
			return collect(ctx, cmd.Root().Reader, cmd.Root().Writer, cmd.Args().Slice(), chunk, opts)
		},
	}
}

// collect 无参数时读取 stdin，否则并发聚合各文件，按参数顺序输出
func collect(ctx context.Context, stdin io.Reader, w io.Writer, files []string, chunk int, opts []xbody.Option) error {
	if len(files) == 0 {
		data, err := xbody.CollectReader(ctx, stdin, opts...)
		if err != nil {
			return mapCollectErr(err)
		}
		return printDigest(w, data, "-")
	}

	streams := make([]xbody.Stream, 0, len(files))
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		streams = append(streams, xbody.FromReader(f, chunk))
	}
	results, err := xbody.CollectAll(ctx, streams, opts...)
	if err != nil {
		return mapCollectErr(err)
	}
	for i, data := range results {
		if err := printDigest(w, data, files[i]); err != nil {
			return err
		}
	}
	return nil
}

func mapCollectErr(err error) error {
	if errors.Is(err, xbody.ErrInvalidOption) {
		return usagef("%v", err)
	}
	return err
}

func printDigest(w io.Writer, data []byte, name string) error {
	sum := sha256.Sum256(data)
	_, err := fmt.Fprintf(w, "%d\t%s\t%s\n", len(data), hex.EncodeToString(sum[:]), name)
	return err
}
