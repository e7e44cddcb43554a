package api

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"aiinterviewer-backend/internal/models"
)

// chatFrame is one inbound websocket frame carrying a candidate answer
type chatFrame struct {
	Message string `json:"message"`
}

// interviewStreamHandler handles GET /interviews/:id/ws. The client sends
// answer frames; the server streams partial question text as {"chunk"}
// frames while it accumulates, then a final frame with the committed
// utterance and the resulting stage. Only the final text is part of the
// conversation history.
func interviewStreamHandler(c echo.Context) error {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	userID := currentUserID(c)
	interviewID := c.Param("id")
	ctx := c.Request().Context()

	sendError := func(detail string) {
		ws.WriteJSON(map[string]interface{}{
			"detail": detail,
			"done":   true,
		})
	}

	for {
		var frame chatFrame
		if err := ws.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("interview websocket read error: %v", err)
			}
			return nil
		}

		if frame.Message == "" {
			sendError("message is required")
			continue
		}

		resp, err := interviewService.Chat(ctx, userID, interviewID, frame.Message, func(chunk string) {
			ws.WriteJSON(map[string]string{"chunk": chunk})
		})
		if err != nil {
			sendError(err.Error())
			continue
		}

		ws.WriteJSON(map[string]interface{}{
			"role":    resp.Role,
			"message": resp.Message,
			"stage":   resp.Stage,
			"done":    true,
		})

		// Feedback is terminal; no further turns on this socket
		if resp.Stage == models.StageFeedback {
			return nil
		}
	}
}
