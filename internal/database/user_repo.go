package database

import (
	"database/sql"
	"errors"
	"strings"

	"aiinterviewer-backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("username or email already exists")
)

// UserRepo handles user database operations
type UserRepo struct{}

// NewUserRepo creates a new user repository
func NewUserRepo() *UserRepo {
	return &UserRepo{}
}

// Create creates a new user. The UNIQUE constraints on username and email
// are the authority on duplicates; a violation maps to ErrUserAlreadyExists.
func (r *UserRepo) Create(user *models.User) error {
	result, err := DB.Exec(`
		INSERT INTO users (username, email, full_name, password_hash)
		VALUES (?, ?, ?, ?)
	`, user.Username, user.Email, user.FullName, user.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepo) GetByID(id int64) (*models.User, error) {
	return r.getOne(`
		SELECT id, username, email, full_name, password_hash, created_at, last_login
		FROM users WHERE id = ?
	`, id)
}

// GetByUsername retrieves a user by username
func (r *UserRepo) GetByUsername(username string) (*models.User, error) {
	return r.getOne(`
		SELECT id, username, email, full_name, password_hash, created_at, last_login
		FROM users WHERE username = ?
	`, username)
}

// GetByEmail retrieves a user by email
func (r *UserRepo) GetByEmail(email string) (*models.User, error) {
	return r.getOne(`
		SELECT id, username, email, full_name, password_hash, created_at, last_login
		FROM users WHERE email = ?
	`, email)
}

func (r *UserRepo) getOne(query string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	var lastLogin sql.NullTime

	err := DB.QueryRow(query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.PasswordHash, &user.CreatedAt, &lastLogin,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if lastLogin.Valid {
		user.LastLogin = lastLogin.Time
	}

	return user, nil
}

// UpdateLastLogin stamps the user's last successful login
func (r *UserRepo) UpdateLastLogin(id int64) error {
	_, err := DB.Exec("UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE id = ?", id)
	return err
}

// Count returns the number of registered users
func (r *UserRepo) Count() (int, error) {
	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint error.
// modernc.org/sqlite surfaces these as plain errors carrying the constraint text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
