package models

import "time"

// Report statuses and moderation actions.
const (
	ReportPending   = "pending"
	ReportDismissed = "dismissed"
	ReportActioned  = "actioned"

	ActionWarn   = "warn"
	ActionRemove = "remove"
	ActionBan    = "ban"
)

// ValidReportActions is the allow-list for POST /admin/reports/{id}/action.
var ValidReportActions = []string{ActionWarn, ActionRemove, ActionBan}

type Report struct {
	ID          int64      `json:"id"`
	ReporterID  int64      `json:"reporter_id"`
	Reporter    *CommentAuthor `json:"reporter,omitempty"`
	ContentType string     `json:"content_type"` // comment or resource
	ContentID   int64      `json:"content_id"`
	Reason      string     `json:"reason"`
	Details     string     `json:"details,omitempty"`
	Status      string     `json:"status"`
	ActionTaken string     `json:"action_taken,omitempty"`
	AdminNotes  string     `json:"admin_notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy  *int64     `json:"resolved_by,omitempty"`

	ContentPreview *ContentPreview `json:"content_preview,omitempty"`
}

type ContentPreview struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

type CreateReportRequest struct {
	ContentType string `json:"content_type"`
	ContentID   int64  `json:"content_id"`
	Reason      string `json:"reason"`
	Details     string `json:"details"`
}

type ActionReportRequest struct {
	Action string `json:"action"`
	Notes  string `json:"notes"`
}

type Notification struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Type        string    `json:"type"` // path_approved, path_rejected, content_warning, ...
	Title       string    `json:"title"`
	Message     string    `json:"message,omitempty"`
	RelatedType string    `json:"related_type,omitempty"`
	RelatedID   *int64    `json:"related_id,omitempty"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// ── Admin Dashboard ───────────────────────────────────────

type DashboardStats struct {
	TotalUsers         int     `json:"total_users"`
	UserGrowthPercent  float64 `json:"user_growth_percent"`
	TotalLearningPaths int     `json:"total_learning_paths"`
	ActiveLearnersToday int    `json:"active_learners_today"`
	PendingApprovals   int     `json:"pending_approvals"`
	PendingReports     int     `json:"pending_reports"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

type SuspendRequest struct {
	Suspend *bool `json:"suspend"`
}

type RejectPathRequest struct {
	Reason string `json:"reason"`
}

type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}
