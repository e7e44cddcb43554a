package auth

import (
	"errors"

	"aiinterviewer-backend/internal/database"
	"aiinterviewer-backend/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Service handles registration, login and profile lookup
type Service struct {
	userRepo *database.UserRepo
	secret   []byte
}

// NewService creates a new auth service
func NewService(secret string) *Service {
	return &Service{
		userRepo: database.NewUserRepo(),
		secret:   []byte(secret),
	}
}

// Register validates the password policy, hashes the password, persists the
// user and issues a session token. The sqlite UNIQUE constraints decide
// duplicates; the flow is not transactional across insert and token issue,
// so a token failure leaves a created user who can simply log in.
func (s *Service) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := GenerateToken(user.ID, user.Username, s.secret)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{User: user, Token: token}, nil
}

// Login verifies credentials and issues a session token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		return nil, err
	}

	token, err := GenerateToken(user.ID, user.Username, s.secret)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{User: user, Token: token}, nil
}

// Profile returns the user record for an authenticated identity
func (s *Service) Profile(userID int64) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// VerifyToken validates a bearer token against the service secret
func (s *Service) VerifyToken(token string) (*Claims, error) {
	return ParseToken(token, s.secret)
}
