package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"content-rebirth/cmd/api/trace"
	"content-rebirth/config"
)

const maxBodyLog = 1024

// RequestTrace makes sure every inbound request carries a request id and a
// span id, exposes both as headers and logs the completed request.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		// inbound logs use span 0; outbound calls count up from 1
		c.Request = req.WithContext(trace.Start(req.Context(), req))
		req = c.Request
		requestID := trace.RequestID(req.Context())

		c.Request.Header.Set(trace.HeaderRequestID, requestID)
		c.Writer.Header().Set(trace.HeaderRequestID, requestID)
		c.Writer.Header().Set(trace.HeaderSpanID, trace.Span(req.Context()))

		queryParams := map[string][]string{}
		for key, values := range req.URL.Query() {
			if len(values) > 0 {
				queryParams[key] = values
			}
		}
		var bodySnippet string
		if req.Body != nil && req.ContentLength != 0 &&
			(req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch || req.Method == http.MethodDelete) {
			if bodyBytes, err := io.ReadAll(req.Body); err == nil {
				if len(bodyBytes) > maxBodyLog {
					bodySnippet = string(bodyBytes[:maxBodyLog])
				} else {
					bodySnippet = string(bodyBytes)
				}
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			}
		}

		c.Next()

		fields := trace.WithFields(req.Context(), config.Fields{
			"method":       req.Method,
			"path":         req.URL.Path,
			"query_params": queryParams,
			"status":       c.Writer.Status(),
			"duration":     time.Since(start).String(),
		})
		if bodySnippet != "" {
			fields["body"] = bodySnippet
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		config.InfoWithFields("completed request", fields)
	}
}
