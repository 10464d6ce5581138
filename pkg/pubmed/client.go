// Package pubmed wraps the NCBI E-utilities endpoints used for
// biomedical literature lookup (esearch then esummary).
package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// Client looks up PubMed records.
type Client interface {
	Search(ctx context.Context, term string, retmax int) ([]string, error)
	Summaries(ctx context.Context, ids []string) ([]Article, error)
}

// Article is one esummary record.
type Article struct {
	PMID    string
	Title   string
	Journal string
	PubDate string
	Authors []string
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

// WithRateLimit sets the request rate limiter. NCBI allows three
// requests per second without an API key.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates an E-utilities client.
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
		limiter: rate.NewLimiter(rate.Limit(3), 3),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// Search returns the PMIDs matching a term, most relevant first.
func (c *httpClient) Search(ctx context.Context, term string, retmax int) ([]string, error) {
	endpoint := fmt.Sprintf("%s/esearch.fcgi?db=pubmed&term=%s&retmax=%d&retmode=json",
		c.baseURL, url.QueryEscape(term), retmax)

	var er esearchResponse
	if err := c.get(ctx, endpoint, &er); err != nil {
		return nil, eris.Wrap(err, "pubmed: esearch")
	}
	return er.ESearchResult.IDList, nil
}

// Summaries resolves PMIDs to article summaries. IDs missing from the
// response are skipped.
func (c *httpClient) Summaries(ctx context.Context, ids []string) ([]Article, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	endpoint := fmt.Sprintf("%s/esummary.fcgi?db=pubmed&id=%s&retmode=json",
		c.baseURL, url.QueryEscape(strings.Join(ids, ",")))

	var raw struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := c.get(ctx, endpoint, &raw); err != nil {
		return nil, eris.Wrap(err, "pubmed: esummary")
	}

	articles := make([]Article, 0, len(ids))
	for _, id := range ids {
		blob, ok := raw.Result[id]
		if !ok {
			continue
		}
		var rec struct {
			Title   string `json:"title"`
			Source  string `json:"source"`
			PubDate string `json:"pubdate"`
			Authors []struct {
				Name string `json:"name"`
			} `json:"authors"`
		}
		// Malformed records are skipped, not fatal.
		if err := json.Unmarshal(blob, &rec); err != nil {
			continue
		}
		a := Article{PMID: id, Title: rec.Title, Journal: rec.Source, PubDate: rec.PubDate}
		for _, au := range rec.Authors {
			a.Authors = append(a.Authors, au.Name)
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func (c *httpClient) get(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return eris.Wrap(err, "create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response")
	}
	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "unmarshal response")
	}
	return nil
}
