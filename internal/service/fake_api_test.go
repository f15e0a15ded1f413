package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/debank-scanner/internal/adapter"
	"github.com/debank-scanner/internal/retry"
)

const (
	testBaseURL = "https://api.test/"
	testAddress = "0x5853eD4f26A3fceA565b3FBC698bb19cdF6DEB85"
	testAddrLow = "0x5853ed4f26a3fcea565b3fbc698bb19cdf6deb85"
)

type apiCall struct {
	path   string
	params map[string]string
	proxy  string
}

// apiHandler returns the status and the data payload for one request
type apiHandler func(params map[string]string) (int, string)

// fakeAPI answers DeBank requests in-process, wrapping handler data in the
// response envelope
type fakeAPI struct {
	t        *testing.T
	handlers map[string]apiHandler
	calls    []apiCall
}

func newFakeAPI(t *testing.T) *fakeAPI {
	return &fakeAPI{t: t, handlers: make(map[string]apiHandler)}
}

func (f *fakeAPI) handle(path string, h apiHandler) {
	f.handlers[path] = h
}

// respond registers a handler that always returns data
func (f *fakeAPI) respond(path, data string) {
	f.handle(path, func(map[string]string) (int, string) { return 200, data })
}

func (f *fakeAPI) get(ctx context.Context, url string, params map[string]string, proxy string) (*adapter.RawResponse, error) {
	path := strings.TrimPrefix(url, testBaseURL)
	f.calls = append(f.calls, apiCall{path: path, params: params, proxy: proxy})

	h, ok := f.handlers[path]
	if !ok {
		f.t.Errorf("unexpected request to %s", path)
		return &adapter.RawResponse{StatusCode: 404, Body: []byte(`{}`)}, nil
	}
	status, data := h(params)
	body := fmt.Sprintf(`{"error_code": 0, "error_msg": "", "data": %s}`, data)
	return &adapter.RawResponse{StatusCode: status, Body: []byte(body)}, nil
}

func (f *fakeAPI) client(proxies ...string) *adapter.Client {
	return adapter.NewClient(adapter.ClientConfig{
		BaseURL:   testBaseURL,
		Transport: adapter.TransportFunc(f.get),
		Proxies:   proxies,
	})
}

func (f *fakeAPI) callsTo(path string) []apiCall {
	var out []apiCall
	for _, c := range f.calls {
		if c.path == path {
			out = append(out, c)
		}
	}
	return out
}

func fastPolling() *retry.PollConfig {
	return &retry.PollConfig{MaxAttempts: 3, Delay: time.Millisecond}
}

// jobPending is the payload of a job that is still running
const jobPending = `{"job": {"id": "j1", "status": "pending"}, "result": null}`

func jobDone(data string) string {
	return fmt.Sprintf(`{"job": null, "result": {"data": %s}}`, data)
}
