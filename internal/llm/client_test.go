package llm

import (
	"context"
	"encoding/json"
	"fmt"
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
	return NewClient(srv.URL, "test-model")
}

func TestChat_BlockingCompletion(t *testing.T) {
	var got chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(chatResponse{
			Message: Message{Role: RoleAssistant, Content: "Tell me about yourself."},
			Done:    true,
		})
	})

	out, err := client.Chat(context.Background(), []Message{
		{Role: RoleSystem, Content: "You are an interviewer."},
		{Role: RoleUser, Content: "Hi."},
	}, 0.7)
	require.NoError(t, err)
	assert.Equal(t, "Tell me about yourself.", out)

	assert.Equal(t, "test-model", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, 0.7, got.Options.Temperature)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, RoleSystem, got.Messages[0].Role)
}

func TestChat_BackendError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{Error: "model not found"})
	})

	_, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, 0.7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestChat_NonOKStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, 0.7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestChatStream_AccumulatesChunksInOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)

		// Newline-delimited JSON chunks, final one carrying done
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"What "},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"is a "},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"goroutine?"},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":""},"done":true}`)
	})

	var chunks []string
	out, err := client.ChatStream(context.Background(), []Message{{Role: RoleUser, Content: "ask"}}, 0.7, func(chunk string) {
		chunks = append(chunks, chunk)
	})
	require.NoError(t, err)

	assert.Equal(t, "What is a goroutine?", out)
	assert.Equal(t, []string{"What ", "is a ", "goroutine?"}, chunks)
}

func TestChatStream_SkipsBlankLinesAndStopsOnDone(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"message":{"content":"partial"},"done":false}`)
		fmt.Fprintln(w, ``)
		fmt.Fprintln(w, `{"message":{"content":" answer"},"done":true}`)
		fmt.Fprintln(w, `{"message":{"content":"after done, never read"},"done":false}`)
	})

	out, err := client.ChatStream(context.Background(), []Message{{Role: RoleUser, Content: "ask"}}, 0.7, nil)
	require.NoError(t, err)
	assert.Equal(t, "partial answer", out)
}

func TestChatStream_MidStreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"message":{"content":"so far"},"done":false}`)
		fmt.Fprintln(w, `{"error":"context length exceeded"}`)
	})

	_, err := client.ChatStream(context.Background(), []Message{{Role: RoleUser, Content: "ask"}}, 0.7, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context length exceeded")
}

func TestChat_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, "test-model")
	_, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, 0.7)
	assert.Error(t, err)
}
