package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"aiinterviewer-backend/internal/models"
	"aiinterviewer-backend/internal/support"
)

// supportChatHandler handles POST /support/chats
func supportChatHandler(c echo.Context) error {
	var req models.SupportChatRequest
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

	replies, err := supportAssistant.Chat(c.Request().Context(), currentUserID(c), req.Message)
	if err != nil {
		if errors.Is(err, support.ErrBusy) {
			return c.JSON(http.StatusConflict, map[string]string{
				"detail": "Support is still responding to your previous message",
			})
		}
		c.Logger().Error("support chat error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"detail": "support chat failed",
		})
	}

	// The reply the UI renders is the assistant's direct answer; a
	// side-effect confirmation, when present, is the extra entry.
	return c.JSON(http.StatusOK, replies[len(replies)-1])
}

// supportHistoryHandler handles GET /support/chats
func supportHistoryHandler(c echo.Context) error {
	history, err := supportAssistant.History(currentUserID(c))
	if err != nil {
		c.Logger().Error("support history error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"detail": "failed to load support chat",
		})
	}

	if history == nil {
		history = []models.Message{}
	}
	return c.JSON(http.StatusOK, history)
}
