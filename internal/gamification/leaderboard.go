package gamification

import (
	"time"

	"github.com/learnquest/backend/internal/apperr"
)

const (
	// MaxLeaderboardLimit bounds how many entries one request may ask for.
	MaxLeaderboardLimit     = 100
	DefaultLeaderboardLimit = 10

	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodAllTime = "all_time"
)

// ClampLimit forces a requested leaderboard size into [1, MaxLeaderboardLimit].
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLeaderboardLimit {
		return MaxLeaderboardLimit
	}
	return limit
}

// PeriodStart resolves a leaderboard period to the earliest last_active
// timestamp a user may have and still count. all_time returns nil, meaning
// no filter.
func PeriodStart(period string, now time.Time) (*time.Time, error) {
	switch period {
	case PeriodDaily:
		t := now.AddDate(0, 0, -1)
		return &t, nil
	case PeriodWeekly:
		t := now.AddDate(0, 0, -7)
		return &t, nil
	case PeriodMonthly:
		t := now.AddDate(0, 0, -30)
		return &t, nil
	case PeriodAllTime:
		return nil, nil
	default:
		return nil, apperr.Validation("INVALID_PERIOD",
			"Invalid period. Must be one of: daily, weekly, monthly, all_time")
	}
}
