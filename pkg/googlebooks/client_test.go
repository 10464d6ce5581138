package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes", r.URL.Path)
		assert.Equal(t, "printing press", r.URL.Query().Get("q"))
		assert.Equal(t, "relevance", r.URL.Query().Get("orderBy"))
		assert.Empty(t, r.URL.Query().Get("key"))

		_, _ = w.Write([]byte(`{"items": [
			{"id": "abc123", "volumeInfo": {
				"title": "The Printing Revolution",
				"description": "How movable type changed Europe.",
				"authors": ["Elizabeth Eisenstein"],
				"publisher": "Cambridge University Press",
				"publishedDate": "1983",
				"infoLink": "https://books.google.com/books?id=abc123&hl=en"
			}},
			{"id": "def456", "volumeInfo": {"title": "No Link Volume"}}
		]}`))
	}))
	defer srv.Close()

	client := NewClient("", WithBaseURL(srv.URL))

	volumes, err := client.Volumes(context.Background(), "printing press", 3)
	require.NoError(t, err)
	require.Len(t, volumes, 2)

	assert.Equal(t, "The Printing Revolution", volumes[0].Title)
	assert.Equal(t, []string{"Elizabeth Eisenstein"}, volumes[0].Authors)
	assert.Equal(t, "https://books.google.com/books?id=abc123&hl=en", volumes[0].InfoLink)

	// Missing infoLink falls back to the canonical volume URL.
	assert.Equal(t, "https://books.google.com/books?id=def456", volumes[1].InfoLink)
}

func TestVolumes_KeySent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	client := NewClient("secret", WithBaseURL(srv.URL))

	volumes, err := client.Volumes(context.Background(), "anything", 1)
	require.NoError(t, err)
	assert.Empty(t, volumes)
}

func TestVolumes_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer srv.Close()

	client := NewClient("", WithBaseURL(srv.URL))

	_, err := client.Volumes(context.Background(), "anything", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 403")
}
