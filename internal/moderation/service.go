// Package moderation provides the core logic for handling message reports:
// queue intake, admin resolution, sanctions on offending senders, and trust
// scoring.
package moderation

import (
	"errors"

	"careline/backend/internal/models"
	"careline/backend/internal/storage"

	"github.com/rs/zerolog/log"
)

// Notifier is told about newly filed reports so admins hear about them
// without polling the queue. Implementations must not block.
type Notifier interface {
	ReportFiled(report *models.MessageReport, message *models.Message)
}

// Service handles the business logic for the moderation queue.
type Service struct {
	Users    storage.UserStore
	Admin    storage.AdminStore
	notifier Notifier
}

// NewService creates a new moderation service.
func NewService(users storage.UserStore, admin storage.AdminStore) *Service {
	return &Service{Users: users, Admin: admin}
}

// SetNotifier wires an optional admin alert channel.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// FileReportResult is the answer to filing a complaint.
type FileReportResult struct {
	models.Result
	ReportID string `json:"report_id,omitempty"`
}

// QueueResult carries one page of the moderation queue plus stats.
type QueueResult struct {
	models.Result
	Items []storage.QueueItem `json:"items"`
	Stats *storage.QueueStats `json:"stats,omitempty"`
}

// ResolveResult is the answer to a single resolution.
type ResolveResult struct {
	models.Result
	Report           *models.MessageReport `json:"report,omitempty"`
	SanctionedUserID string                `json:"sanctioned_user_id,omitempty"`
}

// BulkItem is the per-report outcome inside a bulk resolution.
type BulkItem struct {
	ReportID string `json:"report_id"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Message  string `json:"message,omitempty"`
}

// BulkResult is the answer to a bulk resolution: per-item breakdown plus
// aggregate counts. Partial success is the expected shape here, not an
// error.
type BulkResult struct {
	models.Result
	Items     []BulkItem `json:"items"`
	Succeeded int        `json:"succeeded"`
	Failed    int        `json:"failed"`
}

// FileReport files a complaint against a message. Filing twice for the same
// (reporter, message) pair is an idempotent success returning the existing
// report, so client retries after a timeout are harmless.
func (s *Service) FileReport(req models.FileReportRequest) FileReportResult {
	if err := req.Validate(); err != nil {
		return FileReportResult{Result: models.Fail(models.CodeValidationError, err.Error())}
	}

	report := &models.MessageReport{
		MessageID:   req.MessageID,
		ReportedBy:  req.ReporterID,
		Reason:      req.Reason,
		Description: req.Description,
	}

	saved, msg, created, err := s.Users.FileReport(report)
	if err != nil {
		return FileReportResult{Result: s.failFrom("FileReport", err)}
	}

	if created && s.notifier != nil {
		go s.notifier.ReportFiled(saved, msg)
	}

	message := "Report filed"
	if !created {
		message = "Report already filed"
	}
	return FileReportResult{Result: models.OK(message), ReportID: saved.ID}
}

// Queue returns pending reports oldest-first with queue statistics.
func (s *Service) Queue(limit, offset int) QueueResult {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		return QueueResult{Result: models.Fail(models.CodeValidationError, "offset must not be negative")}
	}

	items, err := s.Admin.PendingReports(limit, offset)
	if err != nil {
		return QueueResult{Result: s.failFrom("PendingReports", err)}
	}

	stats, err := s.Admin.QueueStats()
	if err != nil {
		return QueueResult{Result: s.failFrom("QueueStats", err)}
	}

	return QueueResult{Result: models.OK(""), Items: items, Stats: stats}
}

// Resolve processes one report. A report can be resolved exactly once;
// racing admins and retried requests get already_processed and change
// nothing.
func (s *Service) Resolve(req models.ResolveReportRequest) ResolveResult {
	if err := req.Validate(); err != nil {
		return ResolveResult{Result: models.Fail(models.CodeValidationError, err.Error())}
	}

	outcome, err := s.Admin.ResolveReport(storage.ResolveReportParams{
		ReportID: req.ReportID,
		AdminID:  req.AdminID,
		Action:   req.Action,
		Notes:    req.Notes,
	})
	if err != nil {
		return ResolveResult{Result: s.failFrom("ResolveReport", err)}
	}

	log.Info().
		Str("report_id", req.ReportID).
		Str("action", req.Action).
		Str("admin_id", req.AdminID).
		Msg("report resolved")

	return ResolveResult{
		Result:           models.OK("Report " + outcome.Report.Status),
		Report:           &outcome.Report,
		SanctionedUserID: outcome.SanctionedUserID,
	}
}

// ResolveBulk processes up to 50 reports with one action. Each item is an
// independent unit: one failure never aborts the rest, and the caller gets a
// per-item breakdown.
func (s *Service) ResolveBulk(req models.BulkResolveRequest) BulkResult {
	if err := req.Validate(); err != nil {
		return BulkResult{Result: models.Fail(models.CodeValidationError, err.Error())}
	}

	out := BulkResult{Items: make([]BulkItem, 0, len(req.ReportIDs))}
	for _, id := range req.ReportIDs {
		item := BulkItem{ReportID: id}

		res := s.Resolve(models.ResolveReportRequest{
			ReportID: id,
			AdminID:  req.AdminID,
			Action:   req.Action,
			Notes:    req.Notes,
		})
		item.Success = res.Success
		item.Error = res.Error
		item.Message = res.Message

		if item.Success {
			out.Succeeded++
		} else {
			out.Failed++
		}
		out.Items = append(out.Items, item)
	}

	out.Result = models.OK("")
	return out
}

func (s *Service) failFrom(op string, err error) models.Result {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return models.Fail(models.CodeNotFound, "Not found")
	case errors.Is(err, storage.ErrAlreadyProcessed):
		return models.Fail(models.CodeAlreadyProcessed, "This report was already handled")
	case errors.Is(err, storage.ErrForbidden):
		return models.Fail(models.CodeForbidden, "You are not allowed to do that")
	}

	log.Error().Err(err).Str("op", op).Msg("storage operation failed")
	res := models.Fail(models.CodeRPCError, "Something went wrong, please try again")
	res.Details = err.Error()
	return res
}
