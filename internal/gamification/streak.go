package gamification

import "fmt"

// StreakOutcome describes what a streak update did.
type StreakOutcome int

const (
	StreakStarted StreakOutcome = iota
	StreakAlreadyCounted
	StreakExtended
	StreakReset
)

const (
	streakKeepWindowHours   = 24
	streakExtendWindowHours = 48
)

// AdvanceStreak applies the streak rules to the current count given the
// hours elapsed since the user's last recorded activity. It returns the new
// streak count and the outcome. Callers pass firstActivity=true when the
// user has no last_active timestamp yet.
func AdvanceStreak(current int, hoursSince float64, firstActivity bool) (int, StreakOutcome) {
	if firstActivity {
		return 1, StreakStarted
	}
	switch {
	case hoursSince < streakKeepWindowHours:
		return current, StreakAlreadyCounted
	case hoursSince < streakExtendWindowHours:
		return current + 1, StreakExtended
	default:
		return 1, StreakReset
	}
}

// StreakMessage renders the user-facing message for an update outcome.
func StreakMessage(outcome StreakOutcome, days int) string {
	switch outcome {
	case StreakStarted:
		return "Streak started! Welcome to LearnQuest!"
	case StreakAlreadyCounted:
		return "Already counted for today. Keep up the momentum!"
	case StreakExtended:
		return fmt.Sprintf("Streak increased to %d days!", days)
	default:
		return "Streak reset. Start a new streak today!"
	}
}

// StreakStatus classifies the streak without mutating it.
func StreakStatus(hoursSince float64, hasActivity bool) (status, message string) {
	if !hasActivity {
		return "no_streak", "No activity recorded yet. Start learning today!"
	}
	switch {
	case hoursSince < streakKeepWindowHours:
		return "active_today", "Keep going! Your streak is safe for today."
	case hoursSince < streakExtendWindowHours:
		return "active_yesterday", "Active yesterday. Come back today to keep your streak!"
	default:
		return "streak_broken", "Your streak has expired. Start a new one today!"
	}
}
