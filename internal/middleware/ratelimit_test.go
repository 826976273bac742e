package middleware_test

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/shortlink/internal/middleware"
	"github.com/serroba/shortlink/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const (
	testHostAddr  = "192.168.1.1:12345"
	testUserAgent = "TestAgent/1.0"
)

var (
	errMultipartNotSupported = errors.New("multipart not supported in mock")
	errLimiterDown           = errors.New("limiter store down")
)

func newTestAPI() huma.API {
	return humachi.New(chi.NewMux(), huma.DefaultConfig("Test", "1.0.0"))
}

type mockLimiter struct {
	decision ratelimit.Decision
	err      error
	lastKey  string
}

func (m *mockLimiter) Allow(_ context.Context, key string) (ratelimit.Decision, error) {
	m.lastKey = key

	return m.decision, m.err
}

// mockHumaContext implements huma.Context for testing.
type mockHumaContext struct {
	headers    map[string]string
	host       string
	remoteAddr string
	written    []byte
	statusCode int
	method     string
	operation  *huma.Operation
}

func newMockHumaContext() *mockHumaContext {
	return &mockHumaContext{
		headers: make(map[string]string),
		method:  "GET",
	}
}

func (m *mockHumaContext) Operation() *huma.Operation {
	return m.operation
}
func (m *mockHumaContext) Context() context.Context              { return context.Background() }
func (m *mockHumaContext) TLS() *tls.ConnectionState             { return nil }
func (m *mockHumaContext) Version() huma.ProtoVersion            { return huma.ProtoVersion{} }
func (m *mockHumaContext) Method() string                        { return m.method }
func (m *mockHumaContext) Host() string                          { return m.host }
func (m *mockHumaContext) RemoteAddr() string                    { return m.remoteAddr }
func (m *mockHumaContext) URL() url.URL                          { return url.URL{} }
func (m *mockHumaContext) Param(_ string) string                 { return "" }
func (m *mockHumaContext) Query(_ string) string                 { return "" }
func (m *mockHumaContext) Header(name string) string             { return m.headers[name] }
func (m *mockHumaContext) EachHeader(_ func(name, value string)) {}
func (m *mockHumaContext) BodyReader() io.Reader                 { return nil }
func (m *mockHumaContext) GetMultipartForm() (*multipart.Form, error) {
	return nil, errMultipartNotSupported
}
func (m *mockHumaContext) SetReadDeadline(_ time.Time) error { return nil }
func (m *mockHumaContext) SetStatus(code int)                { m.statusCode = code }
func (m *mockHumaContext) Status() int                       { return m.statusCode }
func (m *mockHumaContext) AppendHeader(_, _ string)          {}
func (m *mockHumaContext) SetHeader(_, _ string)             {}
func (m *mockHumaContext) BodyWriter() io.Writer             { return &mockBodyWriter{ctx: m} }

type mockBodyWriter struct {
	ctx *mockHumaContext
}

func (w *mockBodyWriter) Write(p []byte) (n int, err error) {
	w.ctx.written = append(w.ctx.written, p...)

	return len(p), nil
}

func TestRateLimiter(t *testing.T) {
	logger := zap.NewNop()

	t.Run("allows request when limiter allows", func(t *testing.T) {
		api := newTestAPI()
		limiter := &mockLimiter{decision: ratelimit.Allowed}
		mw := middleware.RateLimiter(api, limiter, logger)

		ctx := newMockHumaContext()
		ctx.host = testHostAddr
		ctx.headers["User-Agent"] = testUserAgent

		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.True(t, nextCalled, "next should be called when allowed")
	})

	t.Run("returns 429 when rate limited", func(t *testing.T) {
		api := newTestAPI()
		limiter := &mockLimiter{decision: ratelimit.Denied}
		mw := middleware.RateLimiter(api, limiter, logger)

		ctx := newMockHumaContext()
		ctx.host = testHostAddr

		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.False(t, nextCalled, "next should not be called when denied")
		assert.Equal(t, http.StatusTooManyRequests, ctx.statusCode)
	})

	t.Run("fails open when the limiter is unavailable", func(t *testing.T) {
		api := newTestAPI()
		limiter := &mockLimiter{decision: ratelimit.Unavailable, err: errLimiterDown}
		mw := middleware.RateLimiter(api, limiter, logger)

		ctx := newMockHumaContext()
		ctx.host = testHostAddr

		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.True(t, nextCalled, "limiter outage must not block requests")
	})

	t.Run("keys differ for different clients", func(t *testing.T) {
		api := newTestAPI()
		limiter := &mockLimiter{decision: ratelimit.Allowed}
		mw := middleware.RateLimiter(api, limiter, logger)

		ctx := newMockHumaContext()
		ctx.headers["X-Forwarded-For"] = "10.0.0.1"
		mw(ctx, func(_ huma.Context) {})
		firstKey := limiter.lastKey

		ctx = newMockHumaContext()
		ctx.headers["X-Forwarded-For"] = "10.0.0.2"
		mw(ctx, func(_ huma.Context) {})

		assert.NotEqual(t, firstKey, limiter.lastKey)
	})

	t.Run("same client yields a stable key", func(t *testing.T) {
		api := newTestAPI()
		limiter := &mockLimiter{decision: ratelimit.Allowed}
		mw := middleware.RateLimiter(api, limiter, logger)

		ctx := newMockHumaContext()
		ctx.host = testHostAddr
		ctx.headers["User-Agent"] = testUserAgent
		mw(ctx, func(_ huma.Context) {})
		firstKey := limiter.lastKey

		ctx = newMockHumaContext()
		ctx.host = testHostAddr
		ctx.headers["User-Agent"] = testUserAgent
		mw(ctx, func(_ huma.Context) {})

		assert.Equal(t, firstKey, limiter.lastKey)
	})
}
