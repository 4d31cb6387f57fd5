package reports

import (
	"log"
	"strings"

	"github.com/learnquest/backend/internal/apperr"
	"github.com/learnquest/backend/internal/models"
)

const (
	contentTypeComment  = "comment"
	contentTypeResource = "resource"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// File records a new moderation report against a comment or resource.
func (s *Service) File(reporterID int64, req models.CreateReportRequest) (*models.Report, error) {
	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	reason := strings.TrimSpace(req.Reason)

	if reason == "" {
		return nil, apperr.Validation("REASON_REQUIRED", "A reason is required")
	}

	switch contentType {
	case contentTypeComment:
		exists, err := s.store.CommentExists(req.ContentID)
		if err != nil {
			return nil, apperr.Database(err)
		}
		if !exists {
			return nil, apperr.NotFound("COMMENT_NOT_FOUND", "Comment not found")
		}
	case contentTypeResource:
		exists, err := s.store.ResourceExists(req.ContentID)
		if err != nil {
			return nil, apperr.Database(err)
		}
		if !exists {
			return nil, apperr.NotFound("RESOURCE_NOT_FOUND", "Resource not found")
		}
	default:
		return nil, apperr.Validation("INVALID_CONTENT_TYPE", "content_type must be 'comment' or 'resource'")
	}

	open, err := s.store.HasOpenReport(reporterID, contentType, req.ContentID)
	if err != nil {
		return nil, apperr.Database(err)
	}
	if open {
		return nil, apperr.Conflict("ALREADY_REPORTED", "You already have a pending report for this content")
	}

	report := &models.Report{
		ReporterID:  reporterID,
		ContentType: contentType,
		ContentID:   req.ContentID,
		Reason:      reason,
		Details:     strings.TrimSpace(req.Details),
	}
	if err := s.store.Insert(report); err != nil {
		return nil, apperr.Database(err)
	}

	log.Printf("[reports] user %d reported %s %d: %s", reporterID, contentType, req.ContentID, reason)
	return report, nil
}

// MyReports lists the reports the user has filed, newest first.
func (s *Service) MyReports(reporterID int64) ([]models.Report, error) {
	list, err := s.store.ListByReporter(reporterID)
	if err != nil {
		return nil, apperr.Database(err)
	}
	if list == nil {
		list = []models.Report{}
	}
	return list, nil
}
