// Package support implements the platform support chatbot: a
// stateless-per-turn assistant bound to a fixed persona prompt, with one
// allowed side effect — starting a new interview on explicit request.
package support

import (
	"context"
	"errors"
	"strings"
	"sync"

	"aiinterviewer-backend/internal/database"
	"aiinterviewer-backend/internal/interview"
	"aiinterviewer-backend/internal/llm"
	"aiinterviewer-backend/internal/models"
)

// ErrBusy means a previous support turn for this user is still in flight
var ErrBusy = errors.New("support chat is already processing a message")

// triggerKeywords make the assistant start an interview when present in
// the user's message
var triggerKeywords = []string{"start interview", "begin interview", "initiate interview"}

// Canned confirmations for the interview-start side effect
const (
	msgInterviewStarted = "Interview has been started successfully. You can now proceed with the setup."
	msgInterviewActive  = "An interview is already active. You can continue with it."
)

const personaPrompt = `You are a professional human support agent for an AI interview platform.

Rules:
- Greet the user respectfully when they start a chat.
- Only answer questions about the AI Professional Interviewer platform features, setup, and usage.
- Do NOT answer questions outside the scope of the platform.
- if someone asks questions out of scope respond with "I'm sorry, but I can only assist with questions related to the AI Professional Interviewer platform." and do not provide any additional information.
- If asked "Who are you?", respond: "I am the AI Professional Interviewer platform support chatbot."
- If asked "How are you?", respond: "I pretty good, thanks for asking! How can I assist you today?"
- Help users with queries about the platform clearly and concisely.
- Keep answers short, to the point, and avoid extra explanations.
- Do not provide extra information unless specifically asked.
- Answer only what the user asks.
- Keep responses short, clear, and human-like.
- Do not proactively suggest starting an interview.
- Only trigger interview start if the user explicitly requests it and don't give explanations about the interview process unless asked.
- Provide guidance about the platform features when asked.
- Avoid generic overviews or repeated suggestions.
- Be friendly and approachable.
- Respond in plain text. Do not use HTML or markdown.
- Respect the app behavior:
    - Interviews last exactly 15 minutes
    - Setup, interview, feedback stages exist
    - New interviews can be started via user request`

// Assistant answers support questions over the completion backend
type Assistant struct {
	completer  interview.Completer
	interviews *interview.Service
	repo       *database.SupportRepo

	mu         sync.Mutex
	processing map[int64]bool
}

// NewAssistant creates a support assistant
func NewAssistant(completer interview.Completer, interviews *interview.Service) *Assistant {
	return &Assistant{
		completer:  completer,
		interviews: interviews,
		repo:       database.NewSupportRepo(),
		processing: make(map[int64]bool),
	}
}

// History returns the user's support conversation
func (a *Assistant) History(userID int64) ([]models.Message, error) {
	return a.repo.Messages(userID)
}

// Chat handles one support turn: append the user's message, ask the model
// with the whole conversation flattened under the persona prompt, append
// the reply, then apply the interview-start side effect if requested. The
// per-user processing flag is advisory, not a lock.
func (a *Assistant) Chat(ctx context.Context, userID int64, message string) ([]models.Message, error) {
	if !a.beginTurn(userID) {
		return nil, ErrBusy
	}
	defer a.endTurn(userID)

	if err := a.repo.Append(userID, models.Message{Role: models.SpeakerUser, Message: message}); err != nil {
		return nil, err
	}

	history, err := a.repo.Messages(userID)
	if err != nil {
		return nil, err
	}

	reply, err := a.completer.Chat(ctx, []llm.Message{
		{Role: llm.RoleUser, Content: flattenConversation(history)},
	}, 0.4)
	if err != nil {
		return nil, err
	}

	replies := []models.Message{{Role: models.SpeakerAssistant, Message: strings.TrimSpace(reply)}}

	if containsTriggerKeyword(message) {
		replies = append(replies, models.Message{
			Role:    models.SpeakerAssistant,
			Message: a.startInterview(userID),
		})
	}

	for _, msg := range replies {
		if err := a.repo.Append(userID, msg); err != nil {
			return nil, err
		}
	}

	return replies, nil
}

// startInterview creates a new session unless one is already active
func (a *Assistant) startInterview(userID int64) string {
	registry := a.interviews.Registry()
	if registry.GetActive(userID) != nil {
		return msgInterviewActive
	}

	if _, err := a.interviews.Create(userID, models.CreateInterviewRequest{}); err != nil {
		return "Sorry, I could not start an interview right now. Please try again."
	}
	return msgInterviewStarted
}

func (a *Assistant) beginTurn(userID int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.processing[userID] {
		return false
	}
	a.processing[userID] = true
	return true
}

func (a *Assistant) endTurn(userID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.processing, userID)
}

// flattenConversation renders the persona prompt and the transcript as the
// plain-text exchange the model sees
func flattenConversation(history []models.Message) string {
	var b strings.Builder
	b.WriteString(personaPrompt)
	b.WriteString("\n\n")
	for _, msg := range history {
		b.WriteString(strings.ToUpper(string(msg.Role)))
		b.WriteString(": ")
		b.WriteString(msg.Message)
		b.WriteString("\n")
	}
	return b.String()
}

func containsTriggerKeyword(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range triggerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
