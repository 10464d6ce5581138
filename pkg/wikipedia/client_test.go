package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/page/summary/Marie%20Curie", r.URL.EscapedPath())

		_, _ = w.Write([]byte(`{
			"title": "Marie Curie",
			"extract": "Marie Curie was a physicist and chemist.",
			"thumbnail": {"source": "https://upload.wikimedia.org/curie.jpg"}
		}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	sum, err := client.Summary(context.Background(), "Marie Curie")
	require.NoError(t, err)
	assert.Equal(t, "Marie Curie", sum.Title)
	assert.Equal(t, "Marie Curie was a physicist and chemist.", sum.Extract)
	assert.Equal(t, "https://upload.wikimedia.org/curie.jpg", sum.Thumbnail)
}

func TestSummary_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"type": "https://mediawiki.org/wiki/HyperSwitch/errors/not_found"}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	sum, err := client.Summary(context.Background(), "No Such Topic Xyzzy")
	require.NoError(t, err)
	assert.Empty(t, sum.Extract)
	assert.Empty(t, sum.Thumbnail)
}

func TestSummary_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	_, err := client.Summary(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}
