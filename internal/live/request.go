package live

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxBodySize caps how much of a response is read.
const maxBodySize = 32 << 20

// doRequest performs a single GET against baseURL+path. Non-2xx responses
// return *StatusError.
func (c *Client) doRequest(ctx context.Context, baseURL, path string, query url.Values) ([]byte, error) {
	fullURL := strings.TrimRight(baseURL, "/") + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	return body, nil
}

// get performs one GET and decodes the JSON body into result.
func (c *Client) get(ctx context.Context, baseURL, path string, query url.Values, result any) error {
	fetchID := uuid.NewString()
	start := time.Now()

	c.logger.Debug("live fetch",
		"fetch_id", fetchID,
		"path", path,
	)

	body, err := c.doRequest(ctx, baseURL, path, query)
	if err != nil {
		c.logger.Warn("live fetch failed",
			"fetch_id", fetchID,
			"path", path,
			"elapsed", time.Since(start),
			"error", err,
		)
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	c.logger.Debug("live fetch done",
		"fetch_id", fetchID,
		"path", path,
		"bytes", len(body),
		"elapsed", time.Since(start),
	)
	return nil
}
