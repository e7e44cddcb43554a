package database

import "aiinterviewer-backend/internal/models"

// SupportRepo persists the per-user support conversation
type SupportRepo struct{}

// NewSupportRepo creates a new support repository
func NewSupportRepo() *SupportRepo {
	return &SupportRepo{}
}

// Append appends one support chat turn for the user
func (r *SupportRepo) Append(userID int64, msg models.Message) error {
	_, err := DB.Exec(`
		INSERT INTO support_messages (user_id, role, message)
		VALUES (?, ?, ?)
	`, userID, msg.Role, msg.Message)
	return err
}

// Messages returns the user's support conversation in chronological order
func (r *SupportRepo) Messages(userID int64) ([]models.Message, error) {
	rows, err := DB.Query(`
		SELECT role, message FROM support_messages
		WHERE user_id = ? ORDER BY id
	`, userID)
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
