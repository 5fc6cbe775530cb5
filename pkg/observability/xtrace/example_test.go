package xtrace_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"google.golang.org/grpc/metadata"

	"github.com/omeyang/xctxkit/pkg/business/xauth"
	"github.com/omeyang/xctxkit/pkg/context/xctx"
	"github.com/omeyang/xctxkit/pkg/observability/xtrace"
)

func ExampleHTTPMiddleware() {
	authz := xauth.NewStaticAuthorizer().
		AddBearer("secret", &xauth.Authorization{Subject: "svc-a"})

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, _ := xctx.FromContext(r.Context())
		fmt.Fprintf(w, "%s %s", xctx.SpanIDOf(c), xctx.AuthorizationOf(c).Subject)
	})
	srv := xtrace.HTTPMiddleware(xtrace.WithAuthorizer(authz))(h)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Span-ID", "span-42")
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	fmt.Println(rec.Code, rec.Body.String(), rec.Header().Get("X-Span-ID"))
	// Output: 200 span-42 svc-a span-42
}

func ExampleInjectHeader() {
	c := xctx.NewWithSpanID("span-7")
	c.AuthAPIKey("k-1")

	h := http.Header{}
	xtrace.InjectHeader(c, h)
	fmt.Println(h.Get("X-Span-ID"), h.Get("X-API-Key"))
	// Output: span-7 k-1
}

func ExampleInjectToOutgoingContext() {
	ctx, _ := xctx.WithCarrier(context.Background(), xctx.NewWithSpanID("span-9"))
	ctx = xtrace.InjectToOutgoingContext(ctx)

	md, _ := metadata.FromOutgoingContext(ctx)
	fmt.Println(md.Get("x-span-id"))
	// Output: [span-9]
}
