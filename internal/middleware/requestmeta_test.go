package middleware_test

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/middleware"
	"github.com/stretchr/testify/assert"
)

func TestRequestMeta(t *testing.T) {
	t.Run("extracts client IP from X-Forwarded-For", func(t *testing.T) {
		api := newTestAPI()
		mw := middleware.RequestMeta(api)

		ctx := newMockHumaContext()
		ctx.headers["X-Forwarded-For"] = "203.0.113.7, 10.0.0.1"
		ctx.headers["User-Agent"] = testUserAgent
		ctx.headers["Referer"] = "https://referrer.example.com"

		var meta handlers.RequestMeta

		mw(ctx, func(c huma.Context) {
			meta = handlers.RequestMetaFromContext(c.Context())
		})

		assert.Equal(t, "203.0.113.7", meta.ClientIP)
		assert.Equal(t, testUserAgent, meta.UserAgent)
		assert.Equal(t, "https://referrer.example.com", meta.Referrer)
	})

	t.Run("falls back to X-Real-IP then host", func(t *testing.T) {
		api := newTestAPI()
		mw := middleware.RequestMeta(api)

		ctx := newMockHumaContext()
		ctx.headers["X-Real-IP"] = "198.51.100.4"

		var meta handlers.RequestMeta

		mw(ctx, func(c huma.Context) {
			meta = handlers.RequestMetaFromContext(c.Context())
		})

		assert.Equal(t, "198.51.100.4", meta.ClientIP)

		ctx = newMockHumaContext()
		ctx.host = testHostAddr

		mw(ctx, func(c huma.Context) {
			meta = handlers.RequestMetaFromContext(c.Context())
		})

		assert.Equal(t, "192.168.1.1", meta.ClientIP)
	})

	t.Run("missing metadata yields zero value", func(t *testing.T) {
		meta := handlers.RequestMetaFromContext(context.Background())

		assert.Empty(t, meta.ClientIP)
		assert.Empty(t, meta.UserAgent)
	})
}
