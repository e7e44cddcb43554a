package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"aiinterviewer-backend/internal/auth"
)

// Health check
func healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// currentUserID returns the authenticated user id from the request context
func currentUserID(c echo.Context) int64 {
	claims := auth.GetClaimsFromContext(c)
	if claims == nil {
		return 0
	}
	return claims.UserID
}
