package models

import "time"

// ── Roles & Statuses ──────────────────────────────────────

const (
	RoleAdmin       = "admin"
	RoleContributor = "contributor"
	RoleLearner     = "learner"

	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusBanned    = "banned"
)

// ValidRoles is the allow-list for admin role changes.
var ValidRoles = []string{RoleAdmin, RoleContributor, RoleLearner}

type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Status       string     `json:"status"`
	XP           int64      `json:"xp"`
	Points       int64      `json:"points"`
	StreakDays   int        `json:"streak_days"`
	HoursLearned float64    `json:"hours_learned"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	LastActive   *time.Time `json:"last_active,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateProfileRequest struct {
	Username  *string `json:"username"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

type UserStats struct {
	XP           int64   `json:"xp"`
	Points       int64   `json:"points"`
	StreakDays   int     `json:"streak_days"`
	HoursLearned float64 `json:"hours_learned"`
	BadgesCount  int     `json:"badges_count"`
}
