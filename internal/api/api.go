// Package api is the client SDK for the archive's REST surface: a
// token-refresh-aware HTTP client plus typed service façades for posts,
// comments, persons, events, verification requests and payments.
package api

import (
	"net/url"
	"strconv"

	"github.com/syrianarchive/archivectl/internal/cache"
	"github.com/syrianarchive/archivectl/internal/model"
	"github.com/syrianarchive/archivectl/internal/session"
)

// maxPageSize is the documented server-side cap on page_size.
const maxPageSize = 100

// API bundles the services sharing one client and session.
// The payment sub-API lives under a separate base path and gets its own
// client, backed by the same session store.
type API struct {
	Auth         *AuthService
	Users        *UsersService
	Posts        *PostsService
	Comments     *CommentsService
	Persons      *PersonsService
	Events       *EventsService
	Verification *VerificationService
	Payments     *PaymentsService

	client *Client
}

// New assembles the SDK from configuration.
func New(cfg model.Config, store *session.Store) *API {
	opts := []Option{
		WithTimeout(cfg.HTTP.Timeout),
		WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes),
	}
	if cfg.HTTP.UserAgent != "" {
		opts = append(opts, WithUserAgent(cfg.HTTP.UserAgent))
	}
	if cfg.HTTP.InsecureTLS {
		opts = append(opts, WithInsecureTLS())
	}
	if cfg.RateLimit.Enabled {
		opts = append(opts, WithRateLimiter(NewEndpointLimiter(cfg.RateLimit.MinInterval, cfg.RateLimit.Burst)))
	}
	if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
		layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		opts = append(opts, WithCache(layered, cfg.Cache.DiskTTL))
	}

	client := NewClient(cfg.API.BaseURL, store, opts...)
	paymentClient := NewClient(cfg.API.PaymentBaseURL, store, opts...)

	return &API{
		Auth:         &AuthService{client: client},
		Users:        &UsersService{client: client},
		Posts:        &PostsService{client: client},
		Comments:     &CommentsService{client: client},
		Persons:      &PersonsService{client: client},
		Events:       &EventsService{client: client},
		Verification: &VerificationService{client: client},
		Payments:     &PaymentsService{client: paymentClient},
		client:       client,
	}
}

// Client returns the underlying HTTP client.
func (a *API) Client() *Client { return a.client }

// ListOptions carries the common pagination and search parameters.
type ListOptions struct {
	Page     int
	PageSize int
	Search   string
}

// values encodes the options, clamping page_size to the server cap and
// falling back to the service default when unset.
func (o ListOptions) values(defaultPageSize int) url.Values {
	params := url.Values{}
	if o.Page > 0 {
		params.Set("page", strconv.Itoa(o.Page))
	}

	size := o.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	params.Set("page_size", strconv.Itoa(size))

	if o.Search != "" {
		params.Set("search", o.Search)
	}
	return params
}
