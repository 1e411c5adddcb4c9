package randomuser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedBody = `{
	"results": [
		{
			"name": {"first": "Ana", "last": "Lima"},
			"email": "ana@example.com",
			"phone": "(21) 2222-3333",
			"cell": "(21) 98888-7777",
			"picture": {"large": "https://example.com/ana.jpg"}
		},
		{
			"name": {"first": "João", "last": "Silva"},
			"email": "joao@example.com",
			"phone": "(11) 1111-2222",
			"cell": "(11) 97777-6666",
			"picture": {"large": "https://example.com/joao.jpg"}
		}
	]
}`

func TestFetchParsesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("results"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(feedBody))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	leads, err := client.Fetch(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "Ana", leads[0].Name.First)
	assert.Equal(t, "ana@example.com", leads[0].Email)
	assert.Equal(t, "https://example.com/joao.jpg", leads[1].Picture.Large)
}

func TestFetchEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	leads, err := client.Fetch(context.Background(), 10)

	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestFetchHTTPErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Fetch(context.Background(), 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 503")
}

func TestFetchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Fetch(context.Background(), 10)

	require.Error(t, err)
}
