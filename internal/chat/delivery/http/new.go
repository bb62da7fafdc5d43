package http

import (
	"github.com/gin-gonic/gin"

	"conversational-task-management/internal/chat"
	pkgLog "conversational-task-management/pkg/log"
)

// Handler is the HTTP delivery interface for the chat domain.
type Handler interface {
	HandleChat(c *gin.Context)
}

type implHandler struct {
	l  pkgLog.Logger
	uc chat.UseCase
}

// New creates a new chat HTTP handler.
func New(l pkgLog.Logger, uc chat.UseCase) Handler {
	return &implHandler{
		l:  l,
		uc: uc,
	}
}
