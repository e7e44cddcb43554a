package interview

import (
	"context"
	"fmt"
	"strings"

	"aiinterviewer-backend/internal/llm"
	"aiinterviewer-backend/internal/models"
)

// Fallback panel texts when the evaluation lacks the expected headers
const (
	fallbackStrengths    = "Good overall performance"
	fallbackImprovements = "Keep practicing!"
)

// FeedbackGenerator produces the closing evaluation for a session
type FeedbackGenerator struct {
	completer Completer
}

// NewFeedbackGenerator creates a feedback generator over the completion backend
func NewFeedbackGenerator(completer Completer) *FeedbackGenerator {
	return &FeedbackGenerator{completer: completer}
}

// Generate sends the full conversation plus a closing instruction and
// returns the evaluation text verbatim. Single best-effort call, no retry.
func (g *FeedbackGenerator) Generate(ctx context.Context, s *Session) (string, error) {
	var messages []llm.Message
	for _, msg := range s.History() {
		role := llm.RoleAssistant
		if msg.Role == models.SpeakerUser {
			role = llm.RoleUser
		}
		messages = append(messages, llm.Message{Role: role, Content: msg.Message})
	}

	prompt := fmt.Sprintf(
		"Please provide professional interview feedback for the candidate %s "+
			"who interviewed for %s at %s. "+
			"The interview was %s type focusing on %s. "+
			"Provide specific feedback on: strengths, areas for improvement, "+
			"communication skills, and overall performance. "+
			"Format it nicely with clear sections and bullet points.",
		s.CandidateName, s.Role, s.Company, s.InterviewType, s.Skills)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})

	return g.completer.Chat(ctx, messages, 0.7)
}

// SplitSections slices the evaluation on its literal section headers to
// populate the strengths/improvements panels. This is best-effort parsing,
// not a contract: absent headers fall back to fixed panel texts and the
// full text is always carried alongside.
func SplitSections(text string) models.FeedbackResponse {
	out := models.FeedbackResponse{
		Strengths:    fallbackStrengths,
		Improvements: fallbackImprovements,
		FullText:     text,
	}

	if _, rest, ok := strings.Cut(text, "Strengths:"); ok {
		section, _, _ := strings.Cut(rest, "Areas for Improvement:")
		out.Strengths = strings.TrimSpace(section)
	}

	if _, rest, ok := strings.Cut(text, "Areas for Improvement:"); ok {
		section, _, _ := strings.Cut(rest, "Overall Performance:")
		out.Improvements = strings.TrimSpace(section)
	}

	return out
}
