package database

import (
	"database/sql"
	"errors"

	"aiinterviewer-backend/internal/models"
)

var ErrInterviewNotFound = errors.New("interview not found")

// InterviewRepo persists interview sessions and their chat messages
type InterviewRepo struct{}

// NewInterviewRepo creates a new interview repository
func NewInterviewRepo() *InterviewRepo {
	return &InterviewRepo{}
}

// Create inserts a fresh interview row in stage setup
func (r *InterviewRepo) Create(userID int64, info *models.InterviewInfo) error {
	_, err := DB.Exec(`
		INSERT INTO interviews (id, user_id, candidate_name, company, role, interview_type, skills, stage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, info.InterviewID, userID, info.CandidateName, info.Company, info.Role,
		info.InterviewType, info.Skills, info.Stage)
	return err
}

// UpdateSetup persists the metadata captured at the setup-to-interview
// transition, together with the start time and question style.
func (r *InterviewRepo) UpdateSetup(id string, info *models.InterviewInfo, questionStyle string) error {
	var startTime interface{}
	if info.StartTime != nil {
		startTime = info.StartTime.UTC()
	}

	result, err := DB.Exec(`
		UPDATE interviews SET
			candidate_name = ?,
			company = ?,
			role = ?,
			interview_type = ?,
			skills = ?,
			stage = ?,
			question_style = ?,
			start_time = ?
		WHERE id = ?
	`, info.CandidateName, info.Company, info.Role, info.InterviewType,
		info.Skills, info.Stage, questionStyle, startTime, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrInterviewNotFound
	}

	return nil
}

// UpdateStage records a stage transition
func (r *InterviewRepo) UpdateStage(id string, stage models.Stage) error {
	_, err := DB.Exec("UPDATE interviews SET stage = ? WHERE id = ?", stage, id)
	return err
}

// Delete removes an interview and, via the FK cascade, its messages
func (r *InterviewRepo) Delete(id string) error {
	_, err := DB.Exec("DELETE FROM interviews WHERE id = ?", id)
	return err
}

// AppendMessage appends one chat turn. Insertion order is chronological
// order; the autoincrement id preserves it.
func (r *InterviewRepo) AppendMessage(interviewID string, msg models.Message) error {
	_, err := DB.Exec(`
		INSERT INTO interview_messages (interview_id, role, message)
		VALUES (?, ?, ?)
	`, interviewID, msg.Role, msg.Message)
	return err
}

// Messages returns the full chat history in chronological order
func (r *InterviewRepo) Messages(interviewID string) ([]models.Message, error) {
	rows, err := DB.Query(`
		SELECT role, message FROM interview_messages
		WHERE interview_id = ? ORDER BY id
	`, interviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.Role, &msg.Message); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

// ListByUser returns the user's interview snapshots, newest first
func (r *InterviewRepo) ListByUser(userID int64) ([]*models.InterviewInfo, error) {
	rows, err := DB.Query(`
		SELECT id, candidate_name, company, role, interview_type, skills, stage, start_time
		FROM interviews WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []*models.InterviewInfo
	for rows.Next() {
		info := &models.InterviewInfo{}
		var startTime sql.NullTime
		err := rows.Scan(
			&info.InterviewID, &info.CandidateName, &info.Company, &info.Role,
			&info.InterviewType, &info.Skills, &info.Stage, &startTime,
		)
		if err != nil {
			return nil, err
		}
		if startTime.Valid {
			t := startTime.Time
			info.StartTime = &t
		}
		interviews = append(interviews, info)
	}

	return interviews, rows.Err()
}
