package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"log/slog"

	"github.com/alkias2/SolunarBase/internal/infra/config"
)

// POST bodies are buffered for replay, so cap how much we hold in memory.
const replayBodyLimit = 1 << 20

var errBodyTooLarge = errors.New("request body exceeds replay limit")

// withRetry re-runs POST requests that fail with a 5xx, up to the
// configured attempt count with exponential backoff. Forecast POSTs are
// idempotent (same inputs, same result), which is what makes the replay
// safe. Non-POST methods and excluded paths pass straight through.
func withRetry(handler http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return handler
	}
	excluded := make(map[string]struct{}, len(cfg.Exclude))
	for _, path := range cfg.Exclude {
		excluded[path] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, skip := excluded[r.URL.Path]; skip || r.Method != http.MethodPost {
			handler.ServeHTTP(w, r)
			return
		}
		body, err := bufferBody(r)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, errBodyTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			http.Error(w, err.Error(), status)
			return
		}

		for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
			if attempt > 1 {
				if delay := cfg.BaseBackoff * time.Duration(1<<(attempt-2)); delay > 0 {
					time.Sleep(delay)
				}
			}

			buffered := newBufferedResponse(w)
			replay := r.Clone(r.Context())
			replay.Body = io.NopCloser(bytes.NewReader(body))
			replay.ContentLength = int64(len(body))

			handler.ServeHTTP(buffered, replay)
			if !buffered.transientFailure() || attempt == cfg.MaxAttempts {
				buffered.flushTo()
				return
			}

			logger.Warn("retrying request after transient failure", "path", r.URL.Path, "status", buffered.status, "attempt", attempt)
		}
	})
}

func bufferBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, replayBodyLimit+1))
	if err != nil {
		return nil, err
	}
	if len(data) > replayBodyLimit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

// bufferedResponse holds a whole attempt's response so a failed attempt can
// be discarded without having touched the real writer.
type bufferedResponse struct {
	dst       http.ResponseWriter
	header    http.Header
	body      bytes.Buffer
	status    int
	headerSet bool
}

func newBufferedResponse(dst http.ResponseWriter) *bufferedResponse {
	return &bufferedResponse{
		dst:    dst,
		header: make(http.Header),
		status: http.StatusOK,
	}
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.headerSet {
		return
	}
	b.status = status
	b.headerSet = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	return b.body.Write(p)
}

// flushTo replays the buffered headers, status and body onto the real
// response writer.
func (b *bufferedResponse) flushTo() {
	dst := b.dst.Header()
	for k := range dst {
		dst.Del(k)
	}
	for k, values := range b.header {
		copied := make([]string, len(values))
		copy(copied, values)
		dst[k] = copied
	}
	if !b.headerSet {
		b.status = http.StatusOK
	}
	b.dst.WriteHeader(b.status)
	if b.body.Len() > 0 {
		_, _ = b.dst.Write(b.body.Bytes())
	}
}

func (b *bufferedResponse) transientFailure() bool {
	return b.status >= http.StatusInternalServerError
}

func (b *bufferedResponse) Flush() {}
