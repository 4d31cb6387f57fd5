package models

import "time"

// ── Catalog Entities ──────────────────────────────────────

type Badge struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"icon_url,omitempty"`
	BadgeType   string `json:"badge_type,omitempty"` // bronze, silver, gold, streak, special
	IsSeasonal  bool   `json:"is_seasonal"`
}

type Achievement struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	IconURL          string `json:"icon_url,omitempty"`
	XPReward         int    `json:"xp_reward"`
	PointsReward     int    `json:"points_reward"`
	RequirementType  string `json:"requirement_type,omitempty"` // modules_completed, paths_completed, streak, resources_completed
	RequirementValue int    `json:"requirement_value,omitempty"`
}

// UserBadge records one-time possession of a badge.
type UserBadge struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	Badge    Badge     `json:"badge"`
	EarnedAt time.Time `json:"earned_at"`
}

type Challenge struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	ChallengeType    string     `json:"challenge_type,omitempty"` // weekly, monthly, seasonal
	XPReward         int        `json:"xp_reward"`
	PointsReward     int        `json:"points_reward"`
	BadgeID          *int64     `json:"badge_id,omitempty"`
	RequirementType  string     `json:"requirement_type,omitempty"`
	RequirementValue int        `json:"requirement_value,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	IsActive         bool       `json:"is_active"`
}

// ── Streak ────────────────────────────────────────────────

type StreakUpdateResponse struct {
	StreakDays int              `json:"streak_days"`
	Message    string           `json:"message"`
	Milestones []MilestoneAward `json:"milestones"`
}

type MilestoneAward struct {
	Days      int   `json:"days"`
	XPAwarded int   `json:"xp_awarded"`
	Badge     Badge `json:"badge"`
}

type StreakStatusResponse struct {
	StreakDays       int      `json:"streak_days"`
	LastActive       *string  `json:"last_active"`
	HoursSinceActive *float64 `json:"hours_since_active,omitempty"`
	Status           string   `json:"status"`
	Message          string   `json:"message"`
}

// ── Leaderboard ───────────────────────────────────────────

type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
	XP        int64  `json:"xp"`
	Points    int64  `json:"points"`
	Position  string `json:"position,omitempty"` // above|below, set on neighbor entries only
}

type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Period      string             `json:"period"`
}

type UserRankResponse struct {
	UserRank         int                `json:"user_rank"`
	User             LeaderboardEntry   `json:"user"`
	SurroundingUsers []LeaderboardEntry `json:"surrounding_users"`
	Period           string             `json:"period"`
	TotalUsers       int                `json:"total_users"`
}

// ── Badge / Achievement Evaluation ────────────────────────

type BadgeCheckResponse struct {
	NewBadges   []Badge `json:"new_badges"`
	TotalBadges int     `json:"total_badges"`
	XPBonus     int     `json:"xp_bonus"`
	PointsBonus int     `json:"points_bonus"`
}

type AchievementProgress struct {
	Achievement Achievement `json:"achievement"`
	Current     int         `json:"current"`
	Target      int         `json:"target"`
	Unlocked    bool        `json:"unlocked"`
}

type AddXPRequest struct {
	XP int `json:"xp"`
}
