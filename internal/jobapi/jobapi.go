// Package jobapi is the HTTP client for the job aggregation backend.
package jobapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "http://localhost:5000"

	healthPath = "/api/health"
	searchPath = "/api/jobs/search"

	// The health probe must answer quickly; the search itself may take a
	// while since the backend scrapes upstream boards on demand.
	defaultHealthTimeout = 5 * time.Second
	defaultSearchTimeout = 30 * time.Second

	defaultRateLimit = 2
	defaultBurst     = 4
)

type Client struct {
	logger  *zap.Logger
	limiter *rate.Limiter

	HTTPClient    *http.Client
	BaseURL       string
	HealthTimeout time.Duration
	SearchTimeout time.Duration
}

func New(logger *zap.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		logger:        logger,
		limiter:       rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
		HTTPClient:    &http.Client{},
		BaseURL:       baseURL,
		HealthTimeout: defaultHealthTimeout,
		SearchTimeout: defaultSearchTimeout,
	}
}

// SetRateLimit replaces the request limiter towards the backend.
func (c *Client) SetRateLimit(perSecond float64, burst int) {
	if perSecond <= 0 || burst <= 0 {
		return
	}
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}
