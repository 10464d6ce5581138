// Package crossref wraps the CrossRef works endpoint.
package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.crossref.org"

// Client searches registered scholarly works.
type Client interface {
	Works(ctx context.Context, query string, rows int) ([]Work, error)
}

// Work is one DOI-bearing record.
type Work struct {
	Title          string
	Abstract       string
	URL            string
	DOI            string
	ContainerTitle string
	Authors        []string
	Year           int
	PublishedDate  string
}

type worksResponse struct {
	Message struct {
		Items []struct {
			Title          []string `json:"title"`
			Abstract       string   `json:"abstract"`
			URL            string   `json:"URL"`
			DOI            string   `json:"DOI"`
			ContainerTitle []string `json:"container-title"`
			Author         []struct {
				Given  string `json:"given"`
				Family string `json:"family"`
			} `json:"author"`
			Published struct {
				DateParts [][]int `json:"date-parts"`
			} `json:"published"`
		} `json:"items"`
	} `json:"message"`
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

// WithMailto sets the polite-pool contact address sent with each query.
func WithMailto(addr string) Option {
	return func(c *httpClient) {
		c.mailto = addr
	}
}

type httpClient struct {
	baseURL string
	mailto  string
	http    *http.Client
}

// NewClient creates a CrossRef client.
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

func (c *httpClient) Works(ctx context.Context, query string, rows int) ([]Work, error) {
	endpoint := fmt.Sprintf("%s/works?query=%s&rows=%d&sort=relevance&order=desc",
		c.baseURL, url.QueryEscape(query), rows)
	if c.mailto != "" {
		endpoint += "&mailto=" + url.QueryEscape(c.mailto)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, eris.Wrap(err, "crossref: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "crossref: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "crossref: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("crossref: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var wr worksResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return nil, eris.Wrap(err, "crossref: unmarshal response")
	}

	works := make([]Work, 0, len(wr.Message.Items))
	for _, item := range wr.Message.Items {
		w := Work{
			Abstract: item.Abstract,
			URL:      item.URL,
			DOI:      item.DOI,
		}
		if len(item.Title) > 0 {
			w.Title = item.Title[0]
		}
		if len(item.ContainerTitle) > 0 {
			w.ContainerTitle = item.ContainerTitle[0]
		}
		if w.URL == "" && w.DOI != "" {
			w.URL = "https://doi.org/" + w.DOI
		}
		for _, a := range item.Author {
			if name := strings.TrimSpace(a.Given + " " + a.Family); name != "" {
				w.Authors = append(w.Authors, name)
			}
		}
		if len(item.Published.DateParts) > 0 && len(item.Published.DateParts[0]) > 0 {
			parts := item.Published.DateParts[0]
			w.Year = parts[0]
			segs := make([]string, 0, len(parts))
			for _, p := range parts {
				segs = append(segs, strconv.Itoa(p))
			}
			w.PublishedDate = strings.Join(segs, "-")
		}
		works = append(works, w)
	}
	return works, nil
}
