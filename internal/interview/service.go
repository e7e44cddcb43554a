package interview

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"aiinterviewer-backend/internal/database"
	"aiinterviewer-backend/internal/models"
)

var (
	ErrNotFound       = errors.New("interview not found")
	ErrMissingFields  = errors.New("candidate name, company and role are required")
	ErrAlreadyStarted = errors.New("interview has already started")
	ErrNotStarted     = errors.New("interview has not started yet")
	ErrFinished       = errors.New("interview has ended")
)

// Service orchestrates interview sessions: registry bookkeeping, the stage
// state machine, question/feedback generation and write-through persistence.
type Service struct {
	registry  *Registry
	repo      *database.InterviewRepo
	questions *QuestionGenerator
	feedback  *FeedbackGenerator
}

// NewService creates an interview service over the given backends
func NewService(completer Completer, searcher Searcher) *Service {
	return &Service{
		registry:  NewRegistry(),
		repo:      database.NewInterviewRepo(),
		questions: NewQuestionGenerator(completer, searcher),
		feedback:  NewFeedbackGenerator(completer),
	}
}

// Registry exposes the session registry (used by the support assistant)
func (s *Service) Registry() *Registry {
	return s.registry
}

// Create registers a new session in stage setup and persists its row.
// Metadata may be empty at this point; Start validates it.
func (s *Service) Create(userID int64, req models.CreateInterviewRequest) (*models.InterviewInfo, error) {
	sess := s.registry.Create(userID)
	sess.CandidateName = req.CandidateName
	sess.Company = req.Company
	sess.Role = req.Role
	sess.InterviewType = models.InterviewType(req.InterviewType)
	sess.Skills = req.Skills

	if err := s.repo.Create(userID, sess.Info()); err != nil {
		return nil, err
	}

	return sess.Info(), nil
}

// List returns the user's interview snapshots
func (s *Service) List(userID int64) ([]*models.InterviewInfo, error) {
	return s.repo.ListByUser(userID)
}

// Get returns the live session with the given id
func (s *Service) Get(userID int64, id string) *Session {
	return s.registry.Get(userID, id)
}

// Delete removes a session from the registry and the store. Unknown ids
// are a silent no-op.
func (s *Service) Delete(userID int64, id string) error {
	s.registry.Delete(userID, id)
	return s.repo.Delete(id)
}

// Start moves a session from setup to interview. Side effects, in order:
// metadata is persisted, the start timestamp is set exactly once, the
// question style is primed (failure degrades to an empty style and never
// blocks the transition), and one interviewer greeting is appended.
func (s *Service) Start(ctx context.Context, userID int64, id string) (*models.ChatResponse, error) {
	sess := s.registry.Get(userID, id)
	if sess == nil {
		return nil, ErrNotFound
	}
	if sess.Stage != models.StageSetup {
		return nil, ErrAlreadyStarted
	}
	if !sess.HasRequiredFields() {
		return nil, ErrMissingFields
	}

	sess.StartTime = time.Now()

	style, searchFailed, err := s.questions.Prime(ctx, sess)
	if err != nil {
		log.Printf("interview %s: question style priming failed: %v", sess.ID, err)
		style = ""
	} else if searchFailed {
		log.Printf("interview %s: web search failed, using default question style", sess.ID)
	}
	sess.QuestionStyle = style

	sess.Stage = models.StageInterview

	greeting := sess.appendMessage(models.SpeakerAssistant, composeGreeting(sess))

	if err := s.repo.UpdateSetup(sess.ID, sess.Info(), sess.QuestionStyle); err != nil {
		return nil, err
	}
	if err := s.repo.AppendMessage(sess.ID, greeting); err != nil {
		return nil, err
	}

	return &models.ChatResponse{
		Role:    models.SpeakerAssistant,
		Message: greeting.Message,
		Stage:   sess.Stage,
	}, nil
}

// Chat processes one candidate turn. The utterance is appended before any
// termination check; a stop keyword or an expired timer moves the session
// to feedback and the reply is the closing evaluation, otherwise the reply
// is the next question. Partial question text streams through onChunk.
func (s *Service) Chat(ctx context.Context, userID int64, id, message string, onChunk func(string)) (*models.ChatResponse, error) {
	sess := s.registry.Get(userID, id)
	if sess == nil {
		return nil, ErrNotFound
	}

	switch sess.Stage {
	case models.StageSetup:
		return nil, ErrNotStarted
	case models.StageFeedback:
		if !sess.feedbackGenerated {
			return s.finishInterview(ctx, sess)
		}
		return nil, ErrFinished
	}

	userMsg := sess.appendMessage(models.SpeakerUser, message)
	if err := s.repo.AppendMessage(sess.ID, userMsg); err != nil {
		return nil, err
	}

	// Stop keyword pre-empts generating one more question; the timer
	// check runs on every cycle while in the interview stage.
	if containsStopKeyword(message) || sess.TimerExpired() {
		return s.finishInterview(ctx, sess)
	}

	question, err := s.questions.Ask(ctx, sess, message, onChunk)
	if err != nil {
		return nil, err
	}

	reply := sess.appendMessage(models.SpeakerAssistant, question)
	if err := s.repo.AppendMessage(sess.ID, reply); err != nil {
		return nil, err
	}

	return &models.ChatResponse{
		Role:    models.SpeakerAssistant,
		Message: reply.Message,
		Stage:   sess.Stage,
	}, nil
}

// ChatHistory returns the conversation, first running the render-cycle
// timer check so an overdue session flips to feedback even without input
func (s *Service) ChatHistory(ctx context.Context, userID int64, id string) ([]models.Message, error) {
	sess := s.registry.Get(userID, id)
	if sess == nil {
		return nil, ErrNotFound
	}

	if sess.Stage == models.StageInterview && sess.TimerExpired() {
		if _, err := s.finishInterview(ctx, sess); err != nil {
			return nil, err
		}
	}

	return sess.History(), nil
}

// Feedback returns the evaluation panels once a session reached feedback
func (s *Service) Feedback(ctx context.Context, userID int64, id string) (*models.FeedbackResponse, error) {
	sess := s.registry.Get(userID, id)
	if sess == nil {
		return nil, ErrNotFound
	}
	if sess.Stage != models.StageFeedback {
		return nil, ErrNotStarted
	}

	if !sess.feedbackGenerated {
		if _, err := s.finishInterview(ctx, sess); err != nil {
			return nil, err
		}
	}

	history := sess.History()
	out := SplitSections(history[len(history)-1].Message)
	return &out, nil
}

// finishInterview transitions to the terminal feedback stage and appends
// the closing evaluation. Feedback is terminal: the only exits are session
// deletion or a new session.
func (s *Service) finishInterview(ctx context.Context, sess *Session) (*models.ChatResponse, error) {
	if sess.Stage != models.StageFeedback {
		sess.Stage = models.StageFeedback
		if err := s.repo.UpdateStage(sess.ID, sess.Stage); err != nil {
			return nil, err
		}
	}

	text, err := s.feedback.Generate(ctx, sess)
	if err != nil {
		return nil, err
	}
	sess.feedbackGenerated = true

	reply := sess.appendMessage(models.SpeakerAssistant, text)
	if err := s.repo.AppendMessage(sess.ID, reply); err != nil {
		return nil, err
	}

	return &models.ChatResponse{
		Role:    models.SpeakerAssistant,
		Message: reply.Message,
		Stage:   sess.Stage,
	}, nil
}

// composeGreeting words the opening interviewer utterance
func composeGreeting(sess *Session) string {
	typeLower := strings.ToLower(string(sess.InterviewType))

	desc := "This is a " + typeLower + " interview."
	if sess.InterviewType == models.TypeMixed {
		desc = "This interview will include technical, behavioral, and situational questions."
	}

	skills := sess.Skills
	if skills == "" {
		skills = "Python, AI, and ML"
	}

	return "Hello " + sess.CandidateName + ", welcome to the " + typeLower +
		" interview for the " + sess.Role + " position at " + sess.Company + ". " +
		"I'm your AI interviewer today. " + desc + " " +
		"We will focus on your skills in " + skills + ". " +
		"The interview will last 15 minutes. Are you ready to begin?"
}
