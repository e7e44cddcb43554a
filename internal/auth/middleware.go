package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Context key for storing the authenticated claims
const ContextKeyClaims = "claims"

// RequireAuth middleware checks for a valid bearer token
func RequireAuth(authSvc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := GetTokenFromRequest(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"detail": "authentication required",
				})
			}

			claims, err := authSvc.VerifyToken(token)
			if err != nil {
				if errors.Is(err, ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, map[string]string{
						"detail": "Token expired",
					})
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"detail": "Invalid token",
				})
			}

			c.Set(ContextKeyClaims, claims)

			return next(c)
		}
	}
}

// GetTokenFromRequest extracts the session token from the request
func GetTokenFromRequest(c echo.Context) string {
	// Authorization header (Bearer token)
	authHeader := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Query parameter, used by the websocket endpoint where the
	// browser client cannot set headers
	if token := c.QueryParam("token"); token != "" {
		return token
	}

	return ""
}

// GetClaimsFromContext retrieves the authenticated claims from the context
func GetClaimsFromContext(c echo.Context) *Claims {
	claims, ok := c.Get(ContextKeyClaims).(*Claims)
	if !ok {
		return nil
	}
	return claims
}
