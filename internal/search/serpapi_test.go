package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key")
	c.endpoint = srv.URL
	return c
}

func TestRun_JoinsSnippetsInOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "backend interview questions", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "google", r.URL.Query().Get("engine"))

		w.Write([]byte(`{
			"organic_results": [
				{"title": "Top questions", "snippet": "Expect questions on concurrency."},
				{"title": "No snippet here"},
				{"title": "More", "snippet": "SQL joins come up often."}
			]
		}`))
	})

	out, err := client.Run(context.Background(), "backend interview questions")
	require.NoError(t, err)
	assert.Equal(t, "Expect questions on concurrency.\nSQL joins come up often.", out)
}

func TestRun_AnswerBoxComesFirst(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"answer_box": {"answer": "Practice aloud.", "snippet": "Mock interviews help."},
			"organic_results": [{"snippet": "Organic snippet."}]
		}`))
	})

	out, err := client.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "Practice aloud.\nMock interviews help.\nOrganic snippet.", out)
}

func TestRun_NoUsableResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"organic_results": [{"title": "titles only"}]}`))
	})

	_, err := client.Run(context.Background(), "q")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestRun_BackendError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Invalid API key"}`))
	})

	_, err := client.Run(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestRun_NonOKStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Run(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
