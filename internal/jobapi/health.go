package jobapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Healthy reports whether the backend answered the health probe within
// HealthTimeout. The response body is ignored; any transport error, timeout
// or non-success status counts as unavailable.
func (c *Client) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+healthPath, nil)
	if err != nil {
		return false
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Debug("health probe failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Debug("health probe returned bad status", zap.String("status", resp.Status))
		return false
	}

	return true
}
