package api

import (
	"github.com/labstack/echo/v4"

	"aiinterviewer-backend/internal/auth"
	"aiinterviewer-backend/internal/interview"
	"aiinterviewer-backend/internal/support"
)

// Package-level services wired once at startup
var (
	authService      *auth.Service
	interviewService *interview.Service
	supportAssistant *support.Assistant
	loginRateLimiter = auth.DefaultRateLimiter()
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authSvc *auth.Service, interviews *interview.Service, assistant *support.Assistant) {
	authService = authSvc
	interviewService = interviews
	supportAssistant = assistant

	// Health check (public)
	e.GET("/health", healthCheck)

	// Auth routes (public)
	authGroup := e.Group("/auth")
	authGroup.POST("/register", registerHandler)
	authGroup.POST("/login", loginHandler, loginRateLimiter.Middleware())

	// Protected auth routes
	authProtected := authGroup.Group("")
	authProtected.Use(auth.RequireAuth(authSvc))
	authProtected.GET("/profile", profileHandler)

	// Interview routes
	interviewsGroup := e.Group("/interviews")
	interviewsGroup.Use(auth.RequireAuth(authSvc))
	interviewsGroup.POST("", createInterviewHandler)
	interviewsGroup.GET("", listInterviewsHandler)
	interviewsGroup.POST("/:id/start", startInterviewHandler)
	interviewsGroup.POST("/:id/chat", interviewChatHandler)
	interviewsGroup.GET("/:id/chat", interviewChatHistoryHandler)
	interviewsGroup.GET("/:id/feedback", interviewFeedbackHandler)
	interviewsGroup.GET("/:id/ws", interviewStreamHandler)
	interviewsGroup.DELETE("/:id", deleteInterviewHandler)

	// Support routes
	supportGroup := e.Group("/support")
	supportGroup.Use(auth.RequireAuth(authSvc))
	supportGroup.POST("/chats", supportChatHandler)
	supportGroup.GET("/chats", supportHistoryHandler)
}
