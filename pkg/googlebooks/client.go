// Package googlebooks wraps the Google Books volumes endpoint.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1"

// Client searches the book index.
type Client interface {
	Volumes(ctx context.Context, query string, maxResults int) ([]Volume, error)
}

// Volume is one book result.
type Volume struct {
	ID            string
	Title         string
	Description   string
	Authors       []string
	Publisher     string
	PublishedDate string
	InfoLink      string
}

type volumesResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title         string   `json:"title"`
			Description   string   `json:"description"`
			Authors       []string `json:"authors"`
			Publisher     string   `json:"publisher"`
			PublishedDate string   `json:"publishedDate"`
			InfoLink      string   `json:"infoLink"`
		} `json:"volumeInfo"`
	} `json:"items"`
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
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Google Books client. The key may be empty; the
// volumes endpoint serves unauthenticated requests at a lower quota.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
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

func (c *httpClient) Volumes(ctx context.Context, query string, maxResults int) ([]Volume, error) {
	endpoint := fmt.Sprintf("%s/volumes?q=%s&maxResults=%d&orderBy=relevance",
		c.baseURL, url.QueryEscape(query), maxResults)
	if c.apiKey != "" {
		endpoint += "&key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, eris.Wrap(err, "googlebooks: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "googlebooks: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "googlebooks: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("googlebooks: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var vr volumesResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, eris.Wrap(err, "googlebooks: unmarshal response")
	}

	volumes := make([]Volume, 0, len(vr.Items))
	for _, item := range vr.Items {
		info := item.VolumeInfo
		link := info.InfoLink
		if link == "" {
			link = "https://books.google.com/books?id=" + url.QueryEscape(item.ID)
		}
		volumes = append(volumes, Volume{
			ID:            item.ID,
			Title:         info.Title,
			Description:   info.Description,
			Authors:       info.Authors,
			Publisher:     info.Publisher,
			PublishedDate: info.PublishedDate,
			InfoLink:      link,
		})
	}
	return volumes, nil
}
