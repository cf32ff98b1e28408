package handler

import (
	"net/http"

	"careline/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateConversation handles POST /api/conversations. The helper id comes
// from the verified token, never from the body.
func (h *Handler) CreateConversation(c *gin.Context) {
	var req models.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(models.CodeValidationError, "invalid request body"))
		return
	}
	req.HelperID = c.GetString(ctxUserID)

	res := h.Messaging.CreateConversation(req)
	h.sanitize(c, &res.Result)
	c.JSON(statusFor(res.Error), res)
}

// ListConversations handles GET /api/conversations?status=pending|accepted.
func (h *Handler) ListConversations(c *gin.Context) {
	res := h.Messaging.ListConversations(c.GetString(ctxUserID), c.Query("status"))
	h.sanitize(c, &res.Result)
	c.JSON(statusFor(res.Error), res)
}

// GetConversation handles GET /api/conversations/:id.
func (h *Handler) GetConversation(c *gin.Context) {
	res := h.Messaging.GetConversation(c.Param("id"), c.GetString(ctxUserID))
	h.sanitize(c, &res.Result)
	c.JSON(statusFor(res.Error), res)
}

// SendMessage handles POST /api/conversations/:id/messages.
func (h *Handler) SendMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(models.CodeValidationError, "invalid request body"))
		return
	}
	req.ConversationID = c.Param("id")
	req.SenderID = c.GetString(ctxUserID)

	res := h.Messaging.SendMessage(req)
	h.sanitize(c, &res.Result)
	c.JSON(statusFor(res.Error), res)
}

// MarkRead handles POST /api/conversations/:id/read.
func (h *Handler) MarkRead(c *gin.Context) {
	res := h.Messaging.MarkRead(c.Param("id"), c.GetString(ctxUserID))
	h.sanitize(c, &res.Result)
	c.JSON(statusFor(res.Error), res)
}

// AcceptOffer handles POST /api/conversations/:id/accept.
func (h *Handler) AcceptOffer(c *gin.Context) {
	res := h.Messaging.Accept(c.Param("id"), c.GetString(ctxUserID))
	h.sanitize(c, &res.Result)
	c.JSON(statusFor(res.Error), res)
}

// DeclineOffer handles POST /api/conversations/:id/decline.
func (h *Handler) DeclineOffer(c *gin.Context) {
	res := h.Messaging.Decline(c.Param("id"), c.GetString(ctxUserID))
	h.sanitize(c, &res.Result)
	c.JSON(statusFor(res.Error), res)
}
