package comments

import (
	"testing"
	"time"
)

func TestCanEdit(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		age     time.Duration
		canEdit bool
	}{
		{"just posted", 0, true},
		{"five minutes old", 5 * time.Minute, true},
		{"exactly at the window", 15 * time.Minute, true},
		{"one second past", 15*time.Minute + time.Second, false},
		{"an hour old", time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			createdAt := now.Add(-tt.age)
			if got := CanEdit(createdAt, now); got != tt.canEdit {
				t.Errorf("CanEdit(age %v) = %v, want %v", tt.age, got, tt.canEdit)
			}
		})
	}
}

func TestDisplayContent(t *testing.T) {
	if got := DisplayContent("hello", false); got != "hello" {
		t.Errorf("live comment content = %q", got)
	}
	if got := DisplayContent("hello", true); got != "[This comment has been deleted]" {
		t.Errorf("deleted comment content = %q", got)
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total, perPage, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 20, 5},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := PageCount(tt.total, tt.perPage); got != tt.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}
