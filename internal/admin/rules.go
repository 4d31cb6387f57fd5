package admin

import (
	"math"

	"github.com/learnquest/backend/internal/models"
)

// PathApprovalXP is awarded to the creator when an admin approves a path.
const PathApprovalXP = 100

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	for _, r := range models.ValidRoles {
		if role == r {
			return true
		}
	}
	return false
}

// ValidAction reports whether action is a recognized moderation action.
func ValidAction(action string) bool {
	for _, a := range models.ValidReportActions {
		if action == a {
			return true
		}
	}
	return false
}

// GrowthPercent computes the week-over-week signup growth, rounded to
// one decimal place. A previous week of zero with any signups this week
// counts as 100% growth.
func GrowthPercent(lastWeek, prevWeek int) float64 {
	if prevWeek > 0 {
		pct := float64(lastWeek-prevWeek) / float64(prevWeek) * 100
		return math.Round(pct*10) / 10
	}
	if lastWeek > 0 {
		return 100.0
	}
	return 0
}

// PreviewContent trims comment text for the moderation queue.
func PreviewContent(content string, max int) string {
	if len(content) <= max {
		return content
	}
	return content[:max]
}
