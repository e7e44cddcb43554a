package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiinterviewer-backend/internal/llm"
	"aiinterviewer-backend/internal/models"
)

// recordingCompleter keeps the messages of the last call for inspection
type recordingCompleter struct {
	fakeCompleter
	lastMessages []llm.Message
}

func (r *recordingCompleter) Chat(ctx context.Context, messages []llm.Message, temperature float64) (string, error) {
	r.lastMessages = messages
	return r.fakeCompleter.Chat(ctx, messages, temperature)
}

func (r *recordingCompleter) ChatStream(ctx context.Context, messages []llm.Message, temperature float64, onChunk func(string)) (string, error) {
	r.lastMessages = messages
	return r.fakeCompleter.ChatStream(ctx, messages, temperature, onChunk)
}

func testSession() *Session {
	s := newSession("iv-test", 1)
	s.CandidateName = "Alice"
	s.Company = "Acme"
	s.Role = "Backend Engineer"
	s.InterviewType = models.TypeTechnical
	s.Skills = "Go, SQL"
	return s
}

func TestPrime_TruncatesSearchResults(t *testing.T) {
	completer := &recordingCompleter{fakeCompleter: fakeCompleter{chatReply: "patterns"}}
	searcher := &fakeSearcher{result: strings.Repeat("x", 5000)}
	g := NewQuestionGenerator(completer, searcher)

	style, searchFailed, err := g.Prime(context.Background(), testSession())
	require.NoError(t, err)
	assert.False(t, searchFailed)
	assert.Equal(t, "patterns", style)

	// The raw snippet is bounded before it reaches the prompt
	prompt := completer.lastMessages[len(completer.lastMessages)-1].Content
	assert.Contains(t, prompt, strings.Repeat("x", 2000))
	assert.NotContains(t, prompt, strings.Repeat("x", 2001))
	assert.Contains(t, prompt, "DO NOT list actual questions")
}

func TestPrime_SearchFailureDegrades(t *testing.T) {
	completer := &recordingCompleter{fakeCompleter: fakeCompleter{chatReply: "generic patterns"}}
	searcher := &fakeSearcher{err: errors.New("search down")}
	g := NewQuestionGenerator(completer, searcher)

	style, searchFailed, err := g.Prime(context.Background(), testSession())
	require.NoError(t, err)
	assert.True(t, searchFailed)
	assert.Equal(t, "generic patterns", style)

	prompt := completer.lastMessages[len(completer.lastMessages)-1].Content
	assert.Contains(t, prompt, "No search results available")
}

func TestPrime_CompletionFailureIsReturned(t *testing.T) {
	completer := &recordingCompleter{fakeCompleter: fakeCompleter{chatErr: errors.New("model down")}}
	g := NewQuestionGenerator(completer, &fakeSearcher{result: "snippets"})

	_, _, err := g.Prime(context.Background(), testSession())
	assert.Error(t, err)
}

func TestAsk_FirstQuestionPrefix(t *testing.T) {
	completer := &recordingCompleter{fakeCompleter: fakeCompleter{streamReply: "Tell me about yourself."}}
	g := NewQuestionGenerator(completer, &fakeSearcher{})

	question, err := g.Ask(context.Background(), testSession(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hi Alice, nice to meet you! Let's get started. Tell me about yourself.", question)
}

func TestAsk_FollowUpPrefix(t *testing.T) {
	completer := &recordingCompleter{fakeCompleter: fakeCompleter{streamReply: "How would you scale that?"}}
	g := NewQuestionGenerator(completer, &fakeSearcher{})

	question, err := g.Ask(context.Background(), testSession(), "I built a cache.", nil)
	require.NoError(t, err)
	assert.Equal(t, "Interesting, thanks for sharing! How would you scale that?", question)
}

func TestAsk_ThreadsHistoryChronologically(t *testing.T) {
	completer := &recordingCompleter{fakeCompleter: fakeCompleter{streamReply: "Next?"}}
	g := NewQuestionGenerator(completer, &fakeSearcher{})

	s := testSession()
	s.QuestionStyle = "scenario questions"
	s.appendMessage(models.SpeakerAssistant, "Welcome, ready?")
	s.appendMessage(models.SpeakerUser, "Yes.")
	s.appendMessage(models.SpeakerAssistant, "First question.")

	_, err := g.Ask(context.Background(), s, "My answer.", nil)
	require.NoError(t, err)

	msgs := completer.lastMessages
	require.Len(t, msgs, 5) // system + 3 history turns + latest answer

	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "Acme")
	assert.Contains(t, msgs[0].Content, "scenario questions")
	assert.Contains(t, msgs[0].Content, "ONE question at a time")

	assert.Equal(t, llm.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "Welcome, ready?", msgs[1].Content)
	assert.Equal(t, llm.RoleUser, msgs[2].Role)
	assert.Equal(t, llm.RoleAssistant, msgs[3].Role)
	assert.Equal(t, llm.RoleUser, msgs[4].Role)
	assert.Equal(t, "My answer.", msgs[4].Content)
}
