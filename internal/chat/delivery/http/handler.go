package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"conversational-task-management/internal/chat"
	"conversational-task-management/internal/middleware"
	pkgResponse "conversational-task-management/pkg/response"
)

// HandleChat turns a natural language message into a task.
// @Summary Chat with the task assistant
// @Description Parses a natural language message, validates the extracted task, and creates it for one or more recipients
// @Tags Chat
// @Accept json
// @Produce json
// @Param body body chatRequest true "Chat message"
// @Success 200 {object} chatResponse "Assistant reply, with created task when accepted"
// @Failure 400 {object} response.Resp "Malformed request body"
// @Failure 401 {object} response.Resp "Missing caller identity"
// @Failure 429 {object} response.Resp "Assistant is rate limited"
// @Failure 503 {object} response.Resp "Assistant is unavailable"
// @Router /api/chat [post]
func (h *implHandler) HandleChat(c *gin.Context) {
	ctx := c.Request.Context()

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "HandleChat: invalid request body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	sc, ok := middleware.GetScope(c)
	if !ok {
		pkgResponse.Unauthorized(c)
		return
	}

	out, err := h.uc.HandleMessage(ctx, sc, chat.HandleMessageInput{
		Message:      req.Message,
		RecipientIDs: req.RecipientIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			pkgResponse.Error(c, err, nil)
		case errors.Is(err, chat.ErrAssistantRateLimited):
			pkgResponse.TooManyRequests(c)
		case errors.Is(err, chat.ErrAssistantUnavailable):
			pkgResponse.ServiceUnavailable(c)
		default:
			h.l.Errorf(ctx, "HandleChat: pipeline failed: %v", err)
			pkgResponse.InternalError(c, err)
		}
		return
	}

	pkgResponse.OK(c, toChatResponse(out.Reply, out.Created))
}
