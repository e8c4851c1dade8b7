package apilog

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/RaghavSood/bridgeswap/db"
)

const maxBodySize = 64 * 1024 // 64KB

// Recorder persists one provider HTTP exchange.
type Recorder interface {
	InsertAPIRequest(ctx context.Context, arg db.InsertAPIRequestParams) error
}

// Transport is an http.RoundTripper that records provider requests and responses.
type Transport struct {
	inner    http.RoundTripper
	provider string
	recorder Recorder
	logger   *zap.Logger
}

// NewHTTPClient returns a client whose traffic is recorded under provider.
// Request timeouts come from the caller's context.
func NewHTTPClient(provider string, recorder Recorder, logger *zap.Logger) *http.Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &Transport{
			inner:    http.DefaultTransport,
			provider: provider,
			recorder: recorder,
			logger:   logger.Named("apilog"),
		},
	}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	var reqBody []byte
	if req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(reqBody))
	}

	start := time.Now()
	resp, err := t.inner.RoundTrip(req)
	duration := time.Since(start)

	params := db.InsertAPIRequestParams{
		Provider:       t.provider,
		Method:         req.Method,
		Url:            req.URL.String(),
		RequestHeaders: toNullString(headerString(redact(req.Header))),
		RequestBody:    toNullString(truncate(string(reqBody))),
		DurationMs:     sql.NullInt64{Int64: duration.Milliseconds(), Valid: true},
	}

	if err != nil {
		params.Error = toNullString(err.Error())
	} else {
		var respBody []byte
		if resp.Body != nil {
			respBody, _ = io.ReadAll(resp.Body)
			resp.Body = io.NopCloser(bytes.NewReader(respBody))
		}
		params.ResponseStatus = sql.NullInt64{Int64: int64(resp.StatusCode), Valid: true}
		params.ResponseHeaders = toNullString(headerString(resp.Header))
		params.ResponseBody = toNullString(truncate(string(respBody)))
	}

	t.logger.Debug("provider request",
		zap.String("provider", t.provider),
		zap.String("method", req.Method),
		zap.String("url", params.Url),
		zap.Int64("status", params.ResponseStatus.Int64),
		zap.Duration("duration", duration),
	)

	if t.recorder == nil {
		return resp, err
	}

	// Insert asynchronously so we don't slow down the request
	go func() {
		if dbErr := t.recorder.InsertAPIRequest(context.Background(), params); dbErr != nil {
			t.logger.Warn("failed to record request", zap.String("method", params.Method), zap.String("url", params.Url), zap.Error(dbErr))
		}
	}()

	return resp, err
}

// redact blanks credentials before headers are stored.
func redact(h http.Header) http.Header {
	if h.Get("Authorization") == "" {
		return h
	}
	c := h.Clone()
	c.Set("Authorization", "[redacted]")
	return c
}

func headerString(h http.Header) string {
	var buf bytes.Buffer
	h.Write(&buf)
	return buf.String()
}

func truncate(s string) string {
	if len(s) > maxBodySize {
		return s[:maxBodySize] + "...[truncated]"
	}
	return s
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
