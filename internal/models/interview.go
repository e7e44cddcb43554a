package models

import "time"

// Stage represents the current phase of an interview session
type Stage string

const (
	StageSetup     Stage = "setup"
	StageInterview Stage = "interview"
	StageFeedback  Stage = "feedback"
)

// InterviewType represents the kind of interview being practiced
type InterviewType string

const (
	TypeTechnical   InterviewType = "Technical"
	TypeBehavioral  InterviewType = "Behavioral"
	TypeSituational InterviewType = "Situational"
	TypeMixed       InterviewType = "Mixed"
)

// Speaker identifies who produced a chat message
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Message is one turn of a conversation, interview or support
type Message struct {
	Role    Speaker `json:"role"`
	Message string  `json:"message"`
}

// CreateInterviewRequest represents the request body for creating an interview
type CreateInterviewRequest struct {
	CandidateName string `json:"candidate_name"`
	Company       string `json:"company"`
	Role          string `json:"role"`
	InterviewType string `json:"interview_type"`
	Skills        string `json:"skills"`
}

// ChatRequest represents the request body for an interview chat turn
type ChatRequest struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

// ChatResponse is the interviewer's reply to a chat turn
type ChatResponse struct {
	Role    Speaker `json:"role"`
	Message string  `json:"message"`
	Stage   Stage   `json:"stage"`
}

// FeedbackResponse carries the closing evaluation and its best-effort panels
type FeedbackResponse struct {
	Strengths    string `json:"strengths"`
	Improvements string `json:"improvements"`
	FullText     string `json:"full_text"`
}

// InterviewInfo is the public snapshot of an interview session
type InterviewInfo struct {
	InterviewID   string        `json:"interview_id"`
	CandidateName string        `json:"candidate_name"`
	Company       string        `json:"company"`
	Role          string        `json:"role"`
	InterviewType InterviewType `json:"interview_type"`
	Skills        string        `json:"skills"`
	Stage         Stage         `json:"stage"`
	StartTime     *time.Time    `json:"start_time,omitempty"`
}

// SupportChatRequest represents the request body for a support message
type SupportChatRequest struct {
	Message string `json:"message"`
}
