package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler handles short link operations.
type URLHandler struct {
	creator    *shortener.Creator
	resolver   *shortener.Resolver
	baseURL    string
	defaultTTL time.Duration
	logger     *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	creator *shortener.Creator,
	resolver *shortener.Resolver,
	baseURL string,
	defaultTTL time.Duration,
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		creator:    creator,
		resolver:   resolver,
		baseURL:    baseURL,
		defaultTTL: defaultTTL,
		logger:     logger,
	}
}

type requestMetaKey struct{}

// RequestMeta holds HTTP request metadata extracted by middleware.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Referrer  string
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}

func (h *URLHandler) CreateShortLink(ctx context.Context, req *CreateShortLinkRequest) (*CreateShortLinkResponse, error) {
	ttl := h.defaultTTL
	if req.Body.TTLDays != 0 {
		ttl = time.Duration(req.Body.TTLDays) * 24 * time.Hour
	}

	link, err := h.creator.Create(ctx, req.Body.URL, ttl)
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrInvalidInput):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		case errors.Is(err, shortener.ErrCodeSpaceExhausted):
			h.logger.Error("code generation exhausted retry budget", zap.Error(err))

			return nil, huma.Error500InternalServerError("could not allocate a short code")
		default:
			h.logger.Error("failed to create short link", zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to create short link")
		}
	}

	meta := RequestMetaFromContext(ctx)
	h.logger.Info("short link created",
		zap.String("code", link.Code),
		zap.Time("expires_at", link.ExpiresAt),
		zap.String("client_ip", meta.ClientIP),
	)

	shortURL := fmt.Sprintf("%s/%s", h.baseURL, link.Code)

	resp := &CreateShortLinkResponse{}
	resp.Headers.Location = shortURL
	resp.Body.Code = link.Code
	resp.Body.ShortURL = shortURL
	resp.Body.ExpiresAt = link.ExpiresAt

	return resp, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	longURL, err := h.resolver.Resolve(ctx, req.Code)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short link not found")
		}

		h.logger.Error("failed to resolve short link",
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to resolve short link")
	}

	resp := &RedirectResponse{
		Status: http.StatusMovedPermanently,
	}
	resp.Headers.Location = longURL

	return resp, nil
}
