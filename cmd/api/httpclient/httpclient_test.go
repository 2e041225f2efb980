package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-rebirth/cmd/api/trace"
)

func TestRoundTripPropagatesTraceHeaders(t *testing.T) {
	var gotReqID, gotSpan, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReqID = r.Header.Get("X-Request-Id")
		gotSpan = r.Header.Get("X-Span-Id")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	base := NewBaseClientWithClient(New(Config{}), srv.URL)
	inbound := httptest.NewRequest(http.MethodGet, "/", nil)
	inbound.Header.Set(trace.HeaderRequestID, "req-7")
	ctx := trace.Start(context.Background(), inbound)

	req, err := base.NewRequest(ctx, http.MethodPost, "/api/v1/x", nil, strings.NewReader("payload"))
	require.NoError(t, err)
	resp, err := base.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "req-7", gotReqID)
	assert.Equal(t, "1", gotSpan)
	assert.Equal(t, "payload", gotBody)
}

func TestNewRequestRejectsQueryInPath(t *testing.T) {
	base := NewBaseClientWithClient(nil, "http://example.com")

	_, err := base.NewRequest(context.Background(), http.MethodGet, "/a?b=c", nil, nil)
	assert.Error(t, err)

	req, err := base.NewRequest(context.Background(), http.MethodGet, "/a/b", url.Values{"q": {"1"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/a/b?q=1", req.URL.String())
}

func TestRedactURL(t *testing.T) {
	u, _ := url.Parse("https://host/path?key=secret")
	assert.Equal(t, "https://host/path", redactURL(u))
	assert.Equal(t, "", redactURL(nil))
}
