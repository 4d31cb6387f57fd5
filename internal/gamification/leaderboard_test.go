package gamification

import (
	"testing"
	"time"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{10, 10},
		{100, 100},
		{101, 100},
		{5000, 100},
	}

	for _, tt := range tests {
		if got := ClampLimit(tt.in); got != tt.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		period   string
		wantDays int
	}{
		{PeriodDaily, 1},
		{PeriodWeekly, 7},
		{PeriodMonthly, 30},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			start, err := PeriodStart(tt.period, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if start == nil {
				t.Fatal("expected a start time")
			}
			want := now.AddDate(0, 0, -tt.wantDays)
			if !start.Equal(want) {
				t.Errorf("start = %v, want %v", start, want)
			}
		})
	}
}

func TestPeriodStartAllTime(t *testing.T) {
	start, err := PeriodStart(PeriodAllTime, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != nil {
		t.Errorf("all_time should have no start filter, got %v", start)
	}
}

func TestPeriodStartInvalid(t *testing.T) {
	if _, err := PeriodStart("hourly", time.Now()); err == nil {
		t.Error("expected error for unknown period")
	}
}
