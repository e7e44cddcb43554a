package interview

import (
	"context"
	"fmt"
	"strings"

	"aiinterviewer-backend/internal/llm"
	"aiinterviewer-backend/internal/models"
)

// Completer is the black-box text-completion backend
type Completer interface {
	Chat(ctx context.Context, messages []llm.Message, temperature float64) (string, error)
	ChatStream(ctx context.Context, messages []llm.Message, temperature float64, onChunk func(string)) (string, error)
}

// Searcher is the black-box web-search backend
type Searcher interface {
	Run(ctx context.Context, query string) (string, error)
}

// maxSnippetLen bounds the raw search text fed into the style prompt
const maxSnippetLen = 2000

// QuestionGenerator produces interviewer utterances for a session
type QuestionGenerator struct {
	completer Completer
	searcher  Searcher
}

// NewQuestionGenerator creates a question generator over the given backends
func NewQuestionGenerator(completer Completer, searcher Searcher) *QuestionGenerator {
	return &QuestionGenerator{completer: completer, searcher: searcher}
}

// Prime runs once per session, before the first question. It searches the
// web for question material and distills patterns only, never literal
// questions. Search failure degrades to an empty snippet; searchFailed
// tells the caller to surface a non-fatal warning.
func (g *QuestionGenerator) Prime(ctx context.Context, s *Session) (style string, searchFailed bool, err error) {
	query := fmt.Sprintf("%s interview questions %s %s interview", s.Role, s.Skills, s.InterviewType)

	raw, searchErr := g.searcher.Run(ctx, query)
	if searchErr != nil || raw == "" {
		raw = ""
		searchFailed = true
	}
	if len(raw) > maxSnippetLen {
		raw = raw[:maxSnippetLen]
	}

	if raw == "" {
		raw = "No search results available, use generic patterns for a human-like interview."
	}

	prompt := fmt.Sprintf(`You are analyzing interview questions for preparation.

From the text below, extract:
- Common question styles
- Typical difficulty progression
- Key technical and behavioral focus areas

DO NOT list actual questions.
Summarize patterns only.

Text:
%s`, raw)

	style, err = g.completer.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, 0.3)
	if err != nil {
		return "", searchFailed, fmt.Errorf("style extraction failed: %w", err)
	}

	return style, searchFailed, nil
}

// Ask generates the next interviewer utterance from the session context,
// the full prior history and the candidate's latest answer. The response
// streams through onChunk and the accumulated text is returned with a
// human-sounding prefix.
func (g *QuestionGenerator) Ask(ctx context.Context, s *Session, answer string, onChunk func(string)) (string, error) {
	messages := []llm.Message{{Role: llm.RoleSystem, Content: g.systemPrompt(s)}}

	for _, msg := range s.History() {
		role := llm.RoleAssistant
		if msg.Role == models.SpeakerUser {
			role = llm.RoleUser
		}
		messages = append(messages, llm.Message{Role: role, Content: msg.Message})
	}

	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: answer})

	question, err := g.completer.ChatStream(ctx, messages, 0.7, onChunk)
	if err != nil {
		return "", err
	}

	if answer == "" {
		name := s.CandidateName
		if name == "" {
			name = "Candidate"
		}
		question = fmt.Sprintf("Hi %s, nice to meet you! Let's get started. %s", name, question)
	} else {
		question = "Interesting, thanks for sharing! " + question
	}

	return question, nil
}

func (g *QuestionGenerator) systemPrompt(s *Session) string {
	return fmt.Sprintf(`You are a professional, friendly human interviewer named Ihsan.
- Speak naturally and conversationally.
- Listen to the candidate's last answer and react appropriately.
- Ask ONE question at a time.
- Questions should be clear, concise, and relevant.
- Questions should be engaging and follow a natural difficulty progression.
- Encourage elaboration on examples and projects.
- Avoid repeating previous questions or apologies.
- Reference interview context but make questions sound human.
- Question should be relevant to the candidate's skills and the role.
- Stop ONLY if the user says: %s.

Interview Context:
- Company: %s
- Role: %s
- Interview Type: %s
- Candidate Skills: %s
- Reference for question style: %s`,
		strings.Join(stopKeywords, ", "),
		s.Company, s.Role, s.InterviewType, s.Skills, s.QuestionStyle)
}
