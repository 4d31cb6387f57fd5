package gamification

import "fmt"

// Milestone is a fixed streak threshold that grants a one-time badge and
// XP bonus. Badges are created on first reference if the catalog row is
// missing.
type Milestone struct {
	Days      int
	XP        int
	BadgeName string
	BadgeDesc string
}

var streakMilestones = []Milestone{
	{Days: 7, XP: 50, BadgeName: "7 Day Streak", BadgeDesc: "Maintained a 7-day learning streak"},
	{Days: 30, XP: 200, BadgeName: "30 Day Streak", BadgeDesc: "Maintained a 30-day learning streak"},
	{Days: 100, XP: 500, BadgeName: "100 Day Streak", BadgeDesc: "Maintained a 100-day learning streak"},
}

// DueMilestones returns the milestones the streak has reached, ascending by
// day threshold. A streak that jumps past several thresholds yields all of
// them in one call; the caller filters out badges already held.
func DueMilestones(streakDays int) []Milestone {
	due := []Milestone{}
	for _, m := range streakMilestones {
		if streakDays >= m.Days {
			due = append(due, m)
		}
	}
	return due
}

// IconURL is the static asset path for a milestone badge.
func (m Milestone) IconURL() string {
	return fmt.Sprintf("/static/badges/streak_%d.png", m.Days)
}
