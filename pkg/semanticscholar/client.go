// Package semanticscholar wraps the Semantic Scholar Graph API.
package semanticscholar

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

const defaultBaseURL = "https://api.semanticscholar.org"

// Client searches the citation graph.
type Client interface {
	Search(ctx context.Context, query string, limit int) ([]Paper, error)
}

// Paper is one Graph API search result.
type Paper struct {
	Title         string
	Abstract      string
	URL           string
	Year          int
	CitationCount int
	Authors       []string
}

type searchResponse struct {
	Data []struct {
		Title         string `json:"title"`
		Abstract      string `json:"abstract"`
		URL           string `json:"url"`
		Year          int    `json:"year"`
		CitationCount int    `json:"citationCount"`
		Authors       []struct {
			Name string `json:"name"`
		} `json:"authors"`
	} `json:"data"`
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

// NewClient creates a Semantic Scholar client. The Graph API needs no key.
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

func (c *httpClient) Search(ctx context.Context, query string, limit int) ([]Paper, error) {
	endpoint := fmt.Sprintf("%s/graph/v1/paper/search?query=%s&limit=%d&fields=title,abstract,authors,year,url,citationCount",
		c.baseURL, url.QueryEscape(query), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, eris.Wrap(err, "semanticscholar: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "semanticscholar: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "semanticscholar: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("semanticscholar: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, eris.Wrap(err, "semanticscholar: unmarshal response")
	}

	papers := make([]Paper, 0, len(sr.Data))
	for _, d := range sr.Data {
		p := Paper{
			Title:         d.Title,
			Abstract:      d.Abstract,
			URL:           d.URL,
			Year:          d.Year,
			CitationCount: d.CitationCount,
		}
		for _, a := range d.Authors {
			p.Authors = append(p.Authors, a.Name)
		}
		papers = append(papers, p)
	}
	return papers, nil
}
