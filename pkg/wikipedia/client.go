// Package wikipedia wraps the Wikipedia REST summary endpoint.
package wikipedia

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://en.wikipedia.org/api/rest_v1"

// Client fetches article summaries.
type Client interface {
	Summary(ctx context.Context, topic string) (*Summary, error)
}

// Summary is the condensed article for a topic. A topic with no article
// yields a zero-value Summary, not an error.
type Summary struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

type summaryResponse struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Wikipedia REST client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Summary(ctx context.Context, topic string) (*Summary, error) {
	endpoint := c.baseURL + "/page/summary/" + url.PathEscape(topic)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, eris.Wrap(err, "wikipedia: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "wikipedia: send request")
	}
	defer resp.Body.Close()

	// No article for this topic is a normal empty result.
	if resp.StatusCode == http.StatusNotFound {
		return &Summary{}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "wikipedia: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("wikipedia: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var sr summaryResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, eris.Wrap(err, "wikipedia: unmarshal response")
	}

	return &Summary{
		Title:     sr.Title,
		Extract:   sr.Extract,
		Thumbnail: sr.Thumbnail.Source,
	}, nil
}
