package adapter

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpproxy"
)

// RawResponse is an undecoded HTTP response
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// Transport performs a GET request, optionally through an HTTP proxy.
// An empty proxy means a direct connection.
type Transport interface {
	Get(ctx context.Context, url string, params map[string]string, proxy string) (*RawResponse, error)
}

// TransportFunc adapts a function to the Transport interface
type TransportFunc func(ctx context.Context, url string, params map[string]string, proxy string) (*RawResponse, error)

// Get calls f
func (f TransportFunc) Get(ctx context.Context, url string, params map[string]string, proxy string) (*RawResponse, error) {
	return f(ctx, url, params, proxy)
}

// FastHTTPTransport is a Transport backed by fasthttp with one client per proxy
type FastHTTPTransport struct {
	timeout time.Duration

	mu      sync.Mutex
	clients map[string]*fasthttp.Client
}

// NewFastHTTPTransport creates a transport whose requests time out after timeout
func NewFastHTTPTransport(timeout time.Duration) *FastHTTPTransport {
	return &FastHTTPTransport{
		timeout: timeout,
		clients: make(map[string]*fasthttp.Client),
	}
}

func (t *FastHTTPTransport) client(proxy string) *fasthttp.Client {
	t.mu.Lock()
	defer t.mu.Unlock()

	if c, ok := t.clients[proxy]; ok {
		return c
	}

	c := &fasthttp.Client{
		Name:                "debank-scanner",
		ReadTimeout:         t.timeout,
		WriteTimeout:        t.timeout,
		MaxIdleConnDuration: 30 * time.Second,
	}
	switch {
	case strings.HasPrefix(proxy, schemeSOCKS5+"://"):
		c.Dial = fasthttpproxy.FasthttpSocksDialer(proxy)
	case proxy != "":
		c.Dial = fasthttpproxy.FasthttpHTTPDialerTimeout(strings.TrimPrefix(proxy, schemeHTTP+"://"), t.timeout)
	}
	t.clients[proxy] = c
	return c
}

// Get sends a GET request with the DeBank web headers and the given query parameters
func (t *FastHTTPTransport) Get(ctx context.Context, url string, params map[string]string, proxy string) (*RawResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := req.URI().QueryArgs()
	for _, k := range keys {
		args.Set(k, params[k])
	}

	for k, v := range DefaultHeaders() {
		req.Header.Set(k, v)
	}

	deadline := time.Now().Add(t.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := t.client(proxy).DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}

	body, err := resp.BodyUncompressed()
	if err != nil {
		return nil, fmt.Errorf("reading body of %s: %w", url, err)
	}

	return &RawResponse{
		StatusCode: resp.StatusCode(),
		Body:       append([]byte(nil), body...),
	}, nil
}
