package gamification

import "testing"

func TestDueMilestones(t *testing.T) {
	tests := []struct {
		name       string
		streakDays int
		wantDays   []int
	}{
		{"no streak", 0, nil},
		{"below first threshold", 6, nil},
		{"exactly seven", 7, []int{7}},
		{"between thresholds", 29, []int{7}},
		{"jump past two thresholds", 45, []int{7, 30}},
		{"all three", 150, []int{7, 30, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := DueMilestones(tt.streakDays)
			if len(due) != len(tt.wantDays) {
				t.Fatalf("got %d milestones, want %d", len(due), len(tt.wantDays))
			}
			for i, m := range due {
				if m.Days != tt.wantDays[i] {
					t.Errorf("milestone %d: days = %d, want %d", i, m.Days, tt.wantDays[i])
				}
			}
		})
	}
}

func TestDueMilestonesAscending(t *testing.T) {
	due := DueMilestones(1000)
	for i := 1; i < len(due); i++ {
		if due[i].Days <= due[i-1].Days {
			t.Fatalf("milestones not ascending: %d after %d", due[i].Days, due[i-1].Days)
		}
	}
}

func TestMilestoneXPTotals(t *testing.T) {
	// Jumping straight to a 45-day streak stacks the 7-day and 30-day
	// bonuses but not the 100-day one.
	total := 0
	for _, m := range DueMilestones(45) {
		total += m.XP
	}
	if total != 250 {
		t.Errorf("stacked XP = %d, want 250", total)
	}
}
