package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"aiinterviewer-backend/internal/interview"
	"aiinterviewer-backend/internal/models"
)

// createInterviewHandler handles POST /interviews
func createInterviewHandler(c echo.Context) error {
	var req models.CreateInterviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"detail": "invalid request body",
		})
	}

	info, err := interviewService.Create(currentUserID(c), req)
	if err != nil {
		c.Logger().Error("create interview error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"detail": "failed to create interview",
		})
	}

	return c.JSON(http.StatusOK, info)
}

// listInterviewsHandler handles GET /interviews
func listInterviewsHandler(c echo.Context) error {
	interviews, err := interviewService.List(currentUserID(c))
	if err != nil {
		c.Logger().Error("list interviews error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"detail": "failed to list interviews",
		})
	}

	if interviews == nil {
		interviews = []*models.InterviewInfo{}
	}
	return c.JSON(http.StatusOK, interviews)
}

// startInterviewHandler handles POST /interviews/:id/start
func startInterviewHandler(c echo.Context) error {
	resp, err := interviewService.Start(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return interviewError(c, "start interview", err)
	}

	return c.JSON(http.StatusOK, resp)
}

// interviewChatHandler handles POST /interviews/:id/chat
func interviewChatHandler(c echo.Context) error {
	var req models.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"detail": "invalid request body",
		})
	}

	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"detail": "message is required",
		})
	}

	resp, err := interviewService.Chat(c.Request().Context(), currentUserID(c), c.Param("id"), req.Message, nil)
	if err != nil {
		return interviewError(c, "interview chat", err)
	}

	return c.JSON(http.StatusOK, resp)
}

// interviewChatHistoryHandler handles GET /interviews/:id/chat
func interviewChatHistoryHandler(c echo.Context) error {
	history, err := interviewService.ChatHistory(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return interviewError(c, "interview chat history", err)
	}

	if history == nil {
		history = []models.Message{}
	}
	return c.JSON(http.StatusOK, history)
}

// interviewFeedbackHandler handles GET /interviews/:id/feedback
func interviewFeedbackHandler(c echo.Context) error {
	resp, err := interviewService.Feedback(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return interviewError(c, "interview feedback", err)
	}

	return c.JSON(http.StatusOK, resp)
}

// deleteInterviewHandler handles DELETE /interviews/:id
func deleteInterviewHandler(c echo.Context) error {
	if err := interviewService.Delete(currentUserID(c), c.Param("id")); err != nil {
		c.Logger().Error("delete interview error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"detail": "failed to delete interview",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"detail": "interview deleted",
	})
}

// interviewError maps interview service errors to HTTP responses
func interviewError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, interview.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{
			"detail": "Interview not found",
		})
	case errors.Is(err, interview.ErrMissingFields):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"detail": "Please fill in all required fields: Name, Company, and Role",
		})
	case errors.Is(err, interview.ErrAlreadyStarted),
		errors.Is(err, interview.ErrNotStarted),
		errors.Is(err, interview.ErrFinished):
		return c.JSON(http.StatusConflict, map[string]string{
			"detail": err.Error(),
		})
	default:
		c.Logger().Error(op+" error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"detail": op + " failed",
		})
	}
}
