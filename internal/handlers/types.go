package handlers

import "time"

// CreateShortLinkRequest is the request body for creating a short link.
type CreateShortLinkRequest struct {
	Body struct {
		URL     string `doc:"The URL to shorten"                 example:"https://example.com/very/long/path" json:"url"`
		TTLDays int    `doc:"Days until the short link expires"  example:"30"                                 json:"ttlDays,omitempty" minimum:"1" required:"false"`
	}
}

// CreateShortLinkResponse is the response for a successfully created short link.
type CreateShortLinkResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		Code      string    `doc:"The short code"              example:"Ab3xK9qZ"                         json:"code"`
		ShortURL  string    `doc:"The full short URL"          example:"http://localhost:8888/Ab3xK9qZ"   json:"shortUrl"`
		ExpiresAt time.Time `doc:"When the short link expires" json:"expiresAt"`
	}
}

// RedirectRequest is the request for redirecting a short link.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"Ab3xK9qZ" path:"code"`
}

// RedirectResponse redirects the caller to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}
