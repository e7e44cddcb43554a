package interview

import (
	"strings"
	"time"

	"aiinterviewer-backend/internal/models"
)

// SessionDuration is the fixed wall-clock length of the interview stage
const SessionDuration = 15 * time.Minute

// stopKeywords end the interview when they appear anywhere in a candidate
// utterance, case-insensitively. The substring match is deliberately naive
// and over-eager ("finish" inside "I will finish this project" triggers it);
// it mirrors the product behavior and the tests pin it down.
var stopKeywords = []string{"stop", "exit", "finish", "enough", "quit", "end interview"}

// Session is one interview: metadata, stage, timer and conversation
// history. Mutations happen within a single synchronous request turn; the
// registry owns the session and hands out references.
type Session struct {
	ID            string
	UserID        int64
	CandidateName string
	Company       string
	Role          string
	InterviewType models.InterviewType
	Skills        string
	Stage         models.Stage
	StartTime     time.Time
	QuestionStyle string

	history           []models.Message
	feedbackGenerated bool
}

func newSession(id string, userID int64) *Session {
	return &Session{
		ID:     id,
		UserID: userID,
		Stage:  models.StageSetup,
	}
}

// Info returns the public snapshot of the session
func (s *Session) Info() *models.InterviewInfo {
	info := &models.InterviewInfo{
		InterviewID:   s.ID,
		CandidateName: s.CandidateName,
		Company:       s.Company,
		Role:          s.Role,
		InterviewType: s.InterviewType,
		Skills:        s.Skills,
		Stage:         s.Stage,
	}
	if !s.StartTime.IsZero() {
		t := s.StartTime
		info.StartTime = &t
	}
	return info
}

// History returns the conversation in chronological order. The returned
// slice is a copy; history itself is append-only.
func (s *Session) History() []models.Message {
	out := make([]models.Message, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) appendMessage(role models.Speaker, text string) models.Message {
	msg := models.Message{Role: role, Message: text}
	s.history = append(s.history, msg)
	return msg
}

// HasRequiredFields reports whether the metadata needed to start is present
func (s *Session) HasRequiredFields() bool {
	return s.CandidateName != "" && s.Company != "" && s.Role != ""
}

// TimerExpired reports whether the interview has run past its duration.
// Sessions that never started cannot expire.
func (s *Session) TimerExpired() bool {
	if s.StartTime.IsZero() {
		return false
	}
	return time.Since(s.StartTime) > SessionDuration
}

// containsStopKeyword checks a candidate utterance for termination keywords
func containsStopKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range stopKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
