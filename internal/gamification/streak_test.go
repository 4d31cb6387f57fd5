package gamification

import "testing"

func TestAdvanceStreak(t *testing.T) {
	tests := []struct {
		name          string
		current       int
		hoursSince    float64
		firstActivity bool
		wantDays      int
		wantOutcome   StreakOutcome
	}{
		{"first ever activity", 0, 0, true, 1, StreakStarted},
		{"same day no change", 5, 3.5, false, 5, StreakAlreadyCounted},
		{"just under the day boundary", 5, 23.99, false, 5, StreakAlreadyCounted},
		{"exactly one day extends", 5, 24, false, 6, StreakExtended},
		{"late next day extends", 5, 47.9, false, 6, StreakExtended},
		{"two days resets", 5, 48, false, 1, StreakReset},
		{"long absence resets", 30, 500, false, 1, StreakReset},
		{"reset from zero still yields one", 0, 72, false, 1, StreakReset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, outcome := AdvanceStreak(tt.current, tt.hoursSince, tt.firstActivity)
			if days != tt.wantDays {
				t.Errorf("days = %d, want %d", days, tt.wantDays)
			}
			if outcome != tt.wantOutcome {
				t.Errorf("outcome = %d, want %d", outcome, tt.wantOutcome)
			}
		})
	}
}

func TestAdvanceStreakIdempotentWithinDay(t *testing.T) {
	// Multiple activity signals inside 24h must not move the counter.
	days := 10
	for i := 0; i < 5; i++ {
		got, outcome := AdvanceStreak(days, 1.0, false)
		if got != 10 || outcome != StreakAlreadyCounted {
			t.Fatalf("call %d: got days=%d outcome=%d, want 10/already-counted", i, got, outcome)
		}
	}
}

func TestStreakStatus(t *testing.T) {
	tests := []struct {
		name        string
		hoursSince  float64
		hasActivity bool
		wantStatus  string
	}{
		{"no activity yet", 0, false, "no_streak"},
		{"active today", 5, true, "active_today"},
		{"active yesterday", 30, true, "active_yesterday"},
		{"streak broken", 72, true, "streak_broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := StreakStatus(tt.hoursSince, tt.hasActivity)
			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if message == "" {
				t.Error("message should not be empty")
			}
		})
	}
}
