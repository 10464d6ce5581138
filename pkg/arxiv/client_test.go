package arxiv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.00001v1</id>
    <title>  Quantum Error Correction
      Revisited  </title>
    <summary>We revisit stabilizer codes.</summary>
    <published>2023-01-01T12:00:00Z</published>
    <author><name>Alice Example</name></author>
    <author><name>Bob Example</name></author>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2301.00002v2</id>
    <title>Second Paper</title>
    <summary>Another abstract.</summary>
    <published>not-a-date</published>
    <author><name></name></author>
  </entry>
</feed>`

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "all:quantum error correction", r.URL.Query().Get("search_query"))
		assert.Equal(t, "5", r.URL.Query().Get("max_results"))

		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRateLimit(rate.Inf, 1))

	papers, err := client.Search(context.Background(), "quantum error correction", 5)
	require.NoError(t, err)
	require.Len(t, papers, 2)

	assert.Equal(t, "http://arxiv.org/abs/2301.00001v1", papers[0].ID)
	assert.Equal(t, "Quantum Error Correction\n      Revisited", papers[0].Title)
	assert.Equal(t, "We revisit stabilizer codes.", papers[0].Summary)
	assert.Equal(t, []string{"Alice Example", "Bob Example"}, papers[0].Authors)
	assert.Equal(t, 2023, papers[0].Published.Year())

	// Unparseable date and blank author are dropped, not fatal.
	assert.True(t, papers[1].Published.IsZero())
	assert.Empty(t, papers[1].Authors)
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRateLimit(rate.Inf, 1))

	_, err := client.Search(context.Background(), "anything", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 503")
}

func TestSearch_MalformedFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<feed><entry>`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRateLimit(rate.Inf, 1))

	_, err := client.Search(context.Background(), "anything", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode feed")
}

func TestSearch_LatinCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := `<?xml version="1.0" encoding="ISO-8859-1"?>` +
			"<feed><entry><id>x</id><title>Caf\xe9 Physics</title>" +
			"<summary>s</summary><published>2023-01-01T00:00:00Z</published></entry></feed>"
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRateLimit(rate.Inf, 1))

	papers, err := client.Search(context.Background(), "cafe", 1)
	require.NoError(t, err)
	require.Len(t, papers, 1)
	assert.Equal(t, "Café Physics", papers[0].Title)
}
