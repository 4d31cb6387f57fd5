package models

import "time"

// Enrollment statuses for UserProgress.
const (
	ProgressNotStarted = "not_started"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// UserProgress is the enrollment record: one row per (user, path).
// Completion sets live in the module_completions / resource_completions
// child tables and are loaded alongside the row.
type UserProgress struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"user_id"`
	LearningPathID     int64      `json:"learning_path_id"`
	LearningPathTitle  string     `json:"learning_path_title,omitempty"`
	CurrentModuleID    *int64     `json:"current_module_id"`
	CompletedModules   []int64    `json:"completed_modules"`
	CompletedResources []int64    `json:"completed_resources"`
	ProgressPercentage float64    `json:"progress_percentage"`
	XPEarned           int64      `json:"xp_earned"`
	TimeSpent          int        `json:"time_spent"` // minutes
	Status             string     `json:"status"`
	EnrolledAt         time.Time  `json:"enrolled_at"`
	LastAccessed       time.Time  `json:"last_accessed"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

// ResourceCompletion is the immutable first-completion record for a
// (user, resource) pair. Its existence short-circuits re-awarding.
type ResourceCompletion struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ResourceID  int64     `json:"resource_id"`
	CompletedAt time.Time `json:"completed_at"`
	TimeSpent   int       `json:"time_spent"` // seconds
	XPEarned    int       `json:"xp_earned"`
}

type CompleteResourceRequest struct {
	TimeSpent int `json:"time_spent"` // seconds
}

type CompleteResourceResponse struct {
	Completion ResourceCompletion `json:"completion"`
	XPEarned   int                `json:"xp_earned"`
	TotalXP    int64              `json:"total_xp"`
}

type CompleteModuleResponse struct {
	XPEarned int          `json:"xp_earned"`
	TotalXP  int64        `json:"total_xp"`
	Progress UserProgress `json:"progress"`
}

type EnrolledPath struct {
	Path     LearningPath `json:"path"`
	Progress UserProgress `json:"progress"`
}
