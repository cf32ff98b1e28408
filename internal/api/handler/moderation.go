package handler

import (
	"net/http"
	"strconv"

	"careline/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// ReportMessage handles POST /api/messages/:id/report. The route sits behind
// the report rate limiter.
func (h *Handler) ReportMessage(c *gin.Context) {
	var req models.FileReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(models.CodeValidationError, "invalid request body"))
		return
	}
	req.MessageID = c.Param("id")
	req.ReporterID = c.GetString(ctxUserID)

	res := h.Moderation.FileReport(req)
	h.sanitize(c, &res.Result)
	c.JSON(statusFor(res.Error), res)
}

// ModerationQueue handles GET /api/admin/moderation/queue.
func (h *Handler) ModerationQueue(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	res := h.Moderation.Queue(limit, offset)
	h.sanitize(c, &res.Result)
	c.JSON(statusFor(res.Error), res)
}

// ProcessReport handles POST /api/admin/moderation/:id/process.
func (h *Handler) ProcessReport(c *gin.Context) {
	var req models.ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(models.CodeValidationError, "invalid request body"))
		return
	}
	req.ReportID = c.Param("id")
	req.AdminID = c.GetString(ctxUserID)

	res := h.Moderation.Resolve(req)
	h.sanitize(c, &res.Result)
	c.JSON(statusFor(res.Error), res)
}

// ProcessReportsBulk handles POST /api/admin/moderation/bulk. Partial
// success is a 200; the per-item breakdown tells the caller what stuck.
func (h *Handler) ProcessReportsBulk(c *gin.Context) {
	var req models.BulkResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(models.CodeValidationError, "invalid request body"))
		return
	}
	req.AdminID = c.GetString(ctxUserID)

	res := h.Moderation.ResolveBulk(req)
	h.sanitize(c, &res.Result)
	c.JSON(statusFor(res.Error), res)
}

// UserScore handles GET /api/admin/users/:id/score.
func (h *Handler) UserScore(c *gin.Context) {
	res := h.Moderation.Score(c.Param("id"))
	h.sanitize(c, &res.Result)
	c.JSON(statusFor(res.Error), res)
}
