package jobapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/jeremyhunt/jobscout/internal/job"
)

type SearchParams struct {
	Search   string `mapstructure:"text"`
	Location string `mapstructure:"location"`
	Limit    int    `mapstructure:"limit"`
}

func (p SearchParams) values() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Location != "" {
		q.Set("location", p.Location)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// Response mirrors the backend search payload.
type Response struct {
	Jobs    []*job.Job `json:"jobs"`
	Total   int        `json:"total"`
	Message string     `json:"message,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// Search issues the remote search call, bounded by SearchTimeout. A non-2xx
// status, malformed JSON or a job violating the schema is an error; deciding
// whether to fall back is the caller's business.
func (c *Client) Search(ctx context.Context, params SearchParams) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.SearchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+searchPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.URL.RawQuery = params.values().Encode()

	c.logger.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var response Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	for _, j := range response.Jobs {
		if j == nil || j.ID == "" {
			return nil, fmt.Errorf("search response contains a job without an id")
		}
		if !j.ApplicationStatus.Valid() {
			j.ApplicationStatus = job.StatusNotApplied
		}
	}

	return &response, nil
}
