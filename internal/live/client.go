package live

import (
	"log/slog"
	"net/http"
	"time"
)

// Default provider settings.
const (
	DefaultCoinMetricsURL = "https://community-api.coinmetrics.io/v4"
	DefaultCoinGeckoURL   = "https://api.coingecko.com/api/v3"
	DefaultTimeout        = 30 * time.Second
	DefaultPageSize       = 10000
	DefaultUserAgent      = "blockchain-adoption-pro"
)

// Client provides access to the Coin Metrics and CoinGecko REST APIs.
type Client struct {
	coinMetricsURL string
	coinGeckoURL   string
	userAgent      string
	pageSize       int
	httpClient     *http.Client
	logger         *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		coinMetricsURL: DefaultCoinMetricsURL,
		coinGeckoURL:   DefaultCoinGeckoURL,
		userAgent:      DefaultUserAgent,
		pageSize:       DefaultPageSize,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithCoinMetricsURL sets the Coin Metrics base URL.
func WithCoinMetricsURL(u string) ClientOption {
	return func(c *Client) {
		c.coinMetricsURL = u
	}
}

// WithCoinGeckoURL sets the CoinGecko base URL.
func WithCoinGeckoURL(u string) ClientOption {
	return func(c *Client) {
		c.coinGeckoURL = u
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithPageSize sets the Coin Metrics page_size. Only the first page is read.
func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		c.pageSize = n
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}
