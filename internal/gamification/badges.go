package gamification

import "github.com/learnquest/backend/internal/models"

// Per-badge bonuses applied once per newly awarded badge.
const (
	BadgeXPBonus     = 50
	BadgePointsBonus = 25
)

// ActivityCounters aggregates everything the badge rules look at.
type ActivityCounters struct {
	ResourcesCompleted int
	PathsCompleted     int
	StreakDays         int
	PerfectQuizzes     int
	Comments           int
	AuthoredPaths      int
	Role               string
}

// BadgeRule is a named condition over a user's activity counters.
type BadgeRule struct {
	Name        string
	Description string
	IconURL     string
	BadgeType   string
	Qualifies   func(ActivityCounters) bool
}

var badgeRules = []BadgeRule{
	{
		Name:        "First Steps",
		Description: "Completed your first resource",
		IconURL:     "/static/badges/first_steps.png",
		BadgeType:   "bronze",
		Qualifies:   func(c ActivityCounters) bool { return c.ResourcesCompleted >= 1 },
	},
	{
		Name:        "Dedicated Learner",
		Description: "Completed 25 resources",
		IconURL:     "/static/badges/dedicated_learner.png",
		BadgeType:   "silver",
		Qualifies:   func(c ActivityCounters) bool { return c.ResourcesCompleted >= 25 },
	},
	{
		Name:        "Path Pioneer",
		Description: "Completed your first learning path",
		IconURL:     "/static/badges/path_pioneer.png",
		BadgeType:   "silver",
		Qualifies:   func(c ActivityCounters) bool { return c.PathsCompleted >= 1 },
	},
	{
		Name:        "Path Master",
		Description: "Completed 5 learning paths",
		IconURL:     "/static/badges/path_master.png",
		BadgeType:   "gold",
		Qualifies:   func(c ActivityCounters) bool { return c.PathsCompleted >= 5 },
	},
	{
		Name:        "Week Warrior",
		Description: "Maintained a 7-day streak",
		IconURL:     "/static/badges/week_warrior.png",
		BadgeType:   "streak",
		Qualifies:   func(c ActivityCounters) bool { return c.StreakDays >= 7 },
	},
	{
		Name:        "Quiz Master",
		Description: "Scored 100% on 5 quizzes",
		IconURL:     "/static/badges/quiz_master.png",
		BadgeType:   "gold",
		Qualifies:   func(c ActivityCounters) bool { return c.PerfectQuizzes >= 5 },
	},
	{
		Name:        "Conversationalist",
		Description: "Posted 10 comments",
		IconURL:     "/static/badges/conversationalist.png",
		BadgeType:   "bronze",
		Qualifies:   func(c ActivityCounters) bool { return c.Comments >= 10 },
	},
	{
		Name:        "Mentor",
		Description: "Authored a learning path as a contributor",
		IconURL:     "/static/badges/mentor.png",
		BadgeType:   "special",
		Qualifies: func(c ActivityCounters) bool {
			return (c.Role == models.RoleContributor || c.Role == models.RoleAdmin) && c.AuthoredPaths >= 1
		},
	},
}

// QualifiedBadges evaluates the rule table against the counters and returns
// the rules the user satisfies but does not already hold. The held set is
// keyed by badge name and is updated as rules match, so a rule can never be
// returned twice within one call.
func QualifiedBadges(c ActivityCounters, held map[string]bool) []BadgeRule {
	earned := []BadgeRule{}
	for _, rule := range badgeRules {
		if held[rule.Name] || !rule.Qualifies(c) {
			continue
		}
		held[rule.Name] = true
		earned = append(earned, rule)
	}
	return earned
}
