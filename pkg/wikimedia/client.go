// Package wikimedia wraps the Wikimedia Commons image search API.
package wikimedia

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://commons.wikimedia.org"

// Client searches Commons for freely licensed images.
type Client interface {
	SearchImages(ctx context.Context, query string, limit int) ([]Image, error)
}

// Image is one Commons file with a render URL and attribution text.
type Image struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
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

// NewClient creates a Commons client.
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

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type imageInfoResponse struct {
	Query struct {
		Pages map[string]struct {
			ImageInfo []struct {
				URL         string `json:"url"`
				ThumbURL    string `json:"thumburl"`
				ExtMetadata struct {
					ImageDescription struct {
						Value string `json:"value"`
					} `json:"ImageDescription"`
				} `json:"extmetadata"`
			} `json:"imageinfo"`
		} `json:"pages"`
	} `json:"query"`
}

// SearchImages finds up to limit file-namespace matches and resolves each
// to a render URL. Files whose detail lookup fails are skipped.
func (c *httpClient) SearchImages(ctx context.Context, query string, limit int) ([]Image, error) {
	if limit <= 0 {
		return nil, nil
	}

	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"list":        {"search"},
		"srsearch":    {query},
		"srnamespace": {"6"},
		"srlimit":     {strconv.Itoa(limit)},
	}
	var sr searchResponse
	if err := c.get(ctx, params, &sr); err != nil {
		return nil, eris.Wrap(err, "wikimedia: search")
	}

	images := make([]Image, 0, limit)
	for _, hit := range sr.Query.Search {
		img, err := c.imageInfo(ctx, hit.Title)
		if err != nil || img.URL == "" {
			continue
		}
		images = append(images, img)
		if len(images) == limit {
			break
		}
	}
	return images, nil
}

func (c *httpClient) imageInfo(ctx context.Context, title string) (Image, error) {
	params := url.Values{
		"action":     {"query"},
		"format":     {"json"},
		"titles":     {title},
		"prop":       {"imageinfo"},
		"iiprop":     {"url|extmetadata"},
		"iiurlwidth": {"800"},
	}
	var ir imageInfoResponse
	if err := c.get(ctx, params, &ir); err != nil {
		return Image{}, err
	}

	for _, page := range ir.Query.Pages {
		if len(page.ImageInfo) == 0 {
			continue
		}
		info := page.ImageInfo[0]
		u := info.ThumbURL
		if u == "" {
			u = info.URL
		}
		return Image{URL: u, Description: info.ExtMetadata.ImageDescription.Value}, nil
	}
	return Image{}, nil
}

func (c *httpClient) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/w/api.php?"+params.Encode(), nil)
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
