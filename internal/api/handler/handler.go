package handler

import (
	"careline/backend/internal/config"
	"careline/backend/internal/messaging"
	"careline/backend/internal/models"
	"careline/backend/internal/moderation"
	"careline/backend/internal/realtime"

	"github.com/gin-gonic/gin"
)

// Handler wires the HTTP surface to the messaging and moderation services.
type Handler struct {
	Messaging  *messaging.Service
	Moderation *moderation.Service
	Hub        *realtime.Hub
	Cfg        *config.Config
}

func NewHandler(msg *messaging.Service, mod *moderation.Service, hub *realtime.Hub, cfg *config.Config) *Handler {
	return &Handler{Messaging: msg, Moderation: mod, Hub: hub, Cfg: cfg}
}

// statusFor maps a wire error code onto an HTTP status.
func statusFor(code string) int {
	switch code {
	case "":
		return 200
	case models.CodeValidationError:
		return 400
	case models.CodeForbidden:
		return 403
	case models.CodeNotFound:
		return 404
	case models.CodeConversationExists,
		models.CodeConversationClosed,
		models.CodeInvalidTransition,
		models.CodeAlreadyProcessed:
		return 409
	case models.CodeRPCError:
		return 500
	}
	return 400
}

// sanitize strips the internal detail string unless the caller is an admin
// and the service runs outside production. End users never see raw storage
// errors.
func (h *Handler) sanitize(c *gin.Context, res *models.Result) {
	if h.Cfg.Production() || !c.GetBool(ctxIsAdmin) {
		res.Details = ""
	}
}
