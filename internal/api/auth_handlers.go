package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"aiinterviewer-backend/internal/auth"
	"aiinterviewer-backend/internal/database"
	"aiinterviewer-backend/internal/models"
)

// registerHandler handles POST /auth/register
func registerHandler(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"detail": "invalid request body",
		})
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"detail": "username, email and password are required",
		})
	}

	resp, err := authService.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordTooShort):
			return c.JSON(http.StatusBadRequest, map[string]string{
				"detail": "Password must be at least 6 characters long",
			})
		case errors.Is(err, auth.ErrPasswordTooLong):
			return c.JSON(http.StatusBadRequest, map[string]string{
				"detail": "Password cannot exceed 72 characters",
			})
		case errors.Is(err, database.ErrUserAlreadyExists):
			return c.JSON(http.StatusBadRequest, map[string]string{
				"detail": "Username or email already exists",
			})
		default:
			c.Logger().Error("register error: ", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"detail": "Registration failed",
			})
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// loginHandler handles POST /auth/login
func loginHandler(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"detail": "invalid request body",
		})
	}

	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"detail": "username and password are required",
		})
	}

	resp, err := authService.Login(req)
	if err != nil {
		// Unknown username and wrong password produce the same answer
		// so login cannot be used to enumerate accounts.
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"detail": "Invalid username or password",
			})
		}
		c.Logger().Error("login error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"detail": "authentication failed",
		})
	}

	loginRateLimiter.RecordSuccess(c.RealIP())

	return c.JSON(http.StatusOK, resp)
}

// profileHandler handles GET /auth/profile
func profileHandler(c echo.Context) error {
	user, err := authService.Profile(currentUserID(c))
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"detail": "User not found",
			})
		}
		c.Logger().Error("profile error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"detail": "failed to load profile",
		})
	}

	return c.JSON(http.StatusOK, user)
}
