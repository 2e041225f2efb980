// Package trace correlates one dashboard request with the Meetstream and AI
// provider calls made while serving it.
package trace

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"content-rebirth/config"
)

const (
	HeaderRequestID = "X-Request-Id"
	HeaderSpanID    = "X-Span-Id"
)

type ctxKey struct{}

// state is shared by every outbound call of one inbound request. Span 0 is
// the inbound request itself; outbound calls take 1, 2, 3, ...
type state struct {
	requestID string
	span      atomic.Int64
}

func from(ctx context.Context) *state {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(ctxKey{}).(*state)
	return s
}

// Start attaches a trace to ctx, reusing the caller's X-Request-Id when r
// carries one.
func Start(ctx context.Context, r *http.Request) context.Context {
	id := ""
	if r != nil {
		id = r.Header.Get(HeaderRequestID)
	}
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, ctxKey{}, &state{requestID: id})
}

// RequestID returns the request id of ctx, or "" outside a traced request.
func RequestID(ctx context.Context) string {
	if s := from(ctx); s != nil {
		return s.requestID
	}
	return ""
}

// Span returns the latest span handed out for ctx.
func Span(ctx context.Context) string {
	s := from(ctx)
	if s == nil {
		return "0"
	}
	return strconv.FormatInt(s.span.Load(), 10)
}

// Propagate takes the next span for an outbound call and writes both ids
// onto req. Untraced calls keep an X-Request-Id already set on req or get a
// fresh one, with span 1.
func Propagate(req *http.Request) (requestID, spanID string) {
	if s := from(req.Context()); s != nil {
		requestID = s.requestID
		spanID = strconv.FormatInt(s.span.Add(1), 10)
	} else {
		requestID = req.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		spanID = "1"
	}
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set(HeaderSpanID, spanID)
	return requestID, spanID
}

// WithFields returns f plus request_id and span_id when ctx is traced.
func WithFields(ctx context.Context, f config.Fields) config.Fields {
	out := make(config.Fields, len(f)+2)
	for k, v := range f {
		out[k] = v
	}
	if s := from(ctx); s != nil {
		out["request_id"] = s.requestID
		out["span_id"] = strconv.FormatInt(s.span.Load(), 10)
	}
	return out
}
