package admin

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/learnquest/backend/internal/apperr"
	"github.com/learnquest/backend/internal/models"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// ── Dashboard ─────────────────────────────────────────────

func (s *Service) DashboardStats() (*models.DashboardStats, error) {
	now := time.Now().UTC()
	lastWeek := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	totalUsers, err := s.store.CountUsers()
	if err != nil {
		return nil, apperr.Database(err)
	}
	usersLastWeek, err := s.store.CountUsersCreatedSince(lastWeek)
	if err != nil {
		return nil, apperr.Database(err)
	}
	usersPrevWeek, err := s.store.CountUsersCreatedBetween(twoWeeksAgo, lastWeek)
	if err != nil {
		return nil, apperr.Database(err)
	}
	totalPaths, err := s.store.CountPublishedPaths()
	if err != nil {
		return nil, apperr.Database(err)
	}
	activeToday, err := s.store.CountActiveToday()
	if err != nil {
		return nil, apperr.Database(err)
	}
	pendingApprovals, err := s.store.CountPendingApprovals()
	if err != nil {
		return nil, apperr.Database(err)
	}
	pendingReports, err := s.store.CountPendingReports()
	if err != nil {
		return nil, apperr.Database(err)
	}

	return &models.DashboardStats{
		TotalUsers:          totalUsers,
		UserGrowthPercent:   GrowthPercent(usersLastWeek, usersPrevWeek),
		TotalLearningPaths:  totalPaths,
		ActiveLearnersToday: activeToday,
		PendingApprovals:    pendingApprovals,
		PendingReports:      pendingReports,
	}, nil
}

// ── Path approvals ────────────────────────────────────────

func (s *Service) PendingPaths() ([]PendingPath, error) {
	list, err := s.store.ListPendingPaths()
	if err != nil {
		return nil, apperr.Database(err)
	}
	if list == nil {
		list = []PendingPath{}
	}
	return list, nil
}

// ApprovePath marks a path approved, credits the creator, and drops a
// notification in their inbox. Returns the path title for the response.
func (s *Service) ApprovePath(pathID int64) (string, error) {
	id, creatorID, title, approved, err := s.store.GetPathForReview(pathID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.NotFound("PATH_NOT_FOUND", "Learning path not found")
	}
	if err != nil {
		return "", apperr.Database(err)
	}
	if approved {
		return "", apperr.Validation("ALREADY_APPROVED", "Path is already approved")
	}

	tx, err := s.store.Begin()
	if err != nil {
		return "", apperr.Database(err)
	}
	defer tx.Rollback()

	if err := s.store.ApprovePath(tx, id); err != nil {
		return "", apperr.Database(err)
	}
	if err := s.store.AddUserXP(tx, creatorID, PathApprovalXP); err != nil {
		return "", apperr.Database(err)
	}
	if err := s.store.InsertNotification(tx, models.Notification{
		UserID:      creatorID,
		Type:        "path_approved",
		Title:       "Learning Path Approved! 🎉",
		Message:     fmt.Sprintf("Your learning path %q has been approved and is now live!", title),
		RelatedType: "learning_path",
		RelatedID:   &id,
	}); err != nil {
		return "", apperr.Database(err)
	}
	if err := tx.Commit(); err != nil {
		return "", apperr.Database(err)
	}

	log.Printf("[admin] path %d approved, %d XP to user %d", id, PathApprovalXP, creatorID)
	return title, nil
}

// RejectPath unpublishes a path and tells the creator why.
func (s *Service) RejectPath(pathID int64, reason string) (string, string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "No reason provided"
	}

	id, creatorID, title, _, err := s.store.GetPathForReview(pathID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", apperr.NotFound("PATH_NOT_FOUND", "Learning path not found")
	}
	if err != nil {
		return "", "", apperr.Database(err)
	}

	tx, err := s.store.Begin()
	if err != nil {
		return "", "", apperr.Database(err)
	}
	defer tx.Rollback()

	if err := s.store.UnpublishPath(tx, id); err != nil {
		return "", "", apperr.Database(err)
	}
	if err := s.store.InsertNotification(tx, models.Notification{
		UserID:      creatorID,
		Type:        "path_rejected",
		Title:       "Learning Path Needs Revision",
		Message:     fmt.Sprintf("Your learning path %q was not approved. Reason: %s", title, reason),
		RelatedType: "learning_path",
		RelatedID:   &id,
	}); err != nil {
		return "", "", apperr.Database(err)
	}
	if err := tx.Commit(); err != nil {
		return "", "", apperr.Database(err)
	}

	log.Printf("[admin] path %d rejected: %s", id, reason)
	return title, reason, nil
}

// ── User management ───────────────────────────────────────

func (s *Service) Users(f UserFilter, page, perPage int) ([]models.User, models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	total, err := s.store.CountFilteredUsers(f)
	if err != nil {
		return nil, models.Pagination{}, apperr.Database(err)
	}
	users, err := s.store.ListUsers(f, page, perPage)
	if err != nil {
		return nil, models.Pagination{}, apperr.Database(err)
	}
	if users == nil {
		users = []models.User{}
	}

	pages := (total + perPage - 1) / perPage
	return users, models.Pagination{Page: page, PerPage: perPage, Total: total, Pages: pages}, nil
}

func (s *Service) ChangeRole(userID int64, newRole string) (*models.User, string, error) {
	if !ValidRole(newRole) {
		msg := fmt.Sprintf("Invalid role. Must be one of: %s", strings.Join(models.ValidRoles, ", "))
		return nil, "", apperr.Validation("INVALID_ROLE", msg)
	}

	user, err := s.store.GetUser(userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", apperr.NotFound("USER_NOT_FOUND", "User not found")
	}
	if err != nil {
		return nil, "", apperr.Database(err)
	}

	oldRole := user.Role
	if err := s.store.SetUserRole(userID, newRole); err != nil {
		return nil, "", apperr.Database(err)
	}
	user.Role = newRole

	log.Printf("[admin] user %d role changed %s -> %s", userID, oldRole, newRole)
	return user, oldRole, nil
}

func (s *Service) Suspend(adminID, userID int64, suspend bool) (*models.User, error) {
	if userID == adminID {
		return nil, apperr.Validation("SELF_SUSPEND", "Cannot suspend yourself")
	}

	user, err := s.store.GetUser(userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("USER_NOT_FOUND", "User not found")
	}
	if err != nil {
		return nil, apperr.Database(err)
	}

	status := models.StatusActive
	if suspend {
		status = models.StatusSuspended
	}
	if err := s.store.SetUserStatus(s.store.db, userID, status); err != nil {
		return nil, apperr.Database(err)
	}
	user.Status = status
	return user, nil
}

func (s *Service) DeleteUser(adminID, userID int64) (string, error) {
	if userID == adminID {
		return "", apperr.Validation("SELF_DELETE", "Cannot delete yourself")
	}

	user, err := s.store.GetUser(userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.NotFound("USER_NOT_FOUND", "User not found")
	}
	if err != nil {
		return "", apperr.Database(err)
	}

	if err := s.store.DeleteUser(userID); err != nil {
		return "", apperr.Database(err)
	}
	log.Printf("[admin] user %d (%s) deleted by admin %d", userID, user.Username, adminID)
	return user.Username, nil
}

// ── Moderation queue ──────────────────────────────────────

const previewLength = 200

func (s *Service) Reports(status, contentType string) ([]models.Report, error) {
	reports, err := s.store.ListReports(status, contentType)
	if err != nil {
		return nil, apperr.Database(err)
	}

	for i := range reports {
		if reports[i].ContentType != "comment" {
			continue
		}
		content, _, author, err := s.store.GetCommentForModeration(reports[i].ContentID)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, apperr.Database(err)
		}
		reports[i].ContentPreview = &models.ContentPreview{
			Content: PreviewContent(content, previewLength),
			Author:  author,
		}
	}

	if reports == nil {
		reports = []models.Report{}
	}
	return reports, nil
}

func (s *Service) DismissReport(adminID, reportID int64) error {
	_, err := s.store.GetReport(reportID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("REPORT_NOT_FOUND", "Report not found")
	}
	if err != nil {
		return apperr.Database(err)
	}
	if err := s.store.DismissReport(reportID, adminID); err != nil {
		return apperr.Database(err)
	}
	return nil
}

// ActionReport applies a moderation action to the reported content and
// stamps the report resolved.
func (s *Service) ActionReport(adminID, reportID int64, req models.ActionReportRequest) (*models.Report, error) {
	if !ValidAction(req.Action) {
		msg := fmt.Sprintf("Invalid action. Must be one of: %s", strings.Join(models.ValidReportActions, ", "))
		return nil, apperr.Validation("INVALID_ACTION", msg)
	}

	report, err := s.store.GetReport(reportID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("REPORT_NOT_FOUND", "Report not found")
	}
	if err != nil {
		return nil, apperr.Database(err)
	}

	tx, err := s.store.Begin()
	if err != nil {
		return nil, apperr.Database(err)
	}
	defer tx.Rollback()

	if report.ContentType == "comment" {
		_, authorID, _, err := s.store.GetCommentForModeration(report.ContentID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// Comment already gone, just resolve the report.
		case err != nil:
			return nil, apperr.Database(err)
		default:
			switch req.Action {
			case models.ActionRemove:
				if err := s.store.SoftDeleteComment(tx, report.ContentID); err != nil {
					return nil, apperr.Database(err)
				}
			case models.ActionWarn:
				if err := s.store.InsertNotification(tx, models.Notification{
					UserID:      authorID,
					Type:        "content_warning",
					Title:       "Content Warning",
					Message:     "Your comment was flagged for review. Please follow community guidelines.",
					RelatedType: "comment",
					RelatedID:   &report.ContentID,
				}); err != nil {
					return nil, apperr.Database(err)
				}
			case models.ActionBan:
				if err := s.store.SetUserStatus(tx, authorID, models.StatusBanned); err != nil {
					return nil, apperr.Database(err)
				}
				if err := s.store.SoftDeleteComment(tx, report.ContentID); err != nil {
					return nil, apperr.Database(err)
				}
			}
		}
	}

	if err := s.store.StampReportAction(tx, reportID, adminID, req.Action, req.Notes); err != nil {
		return nil, apperr.Database(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, apperr.Database(err)
	}

	log.Printf("[admin] report %d actioned (%s) by admin %d", reportID, req.Action, adminID)

	updated, err := s.store.GetReport(reportID)
	if err != nil {
		return nil, apperr.Database(err)
	}
	return updated, nil
}
