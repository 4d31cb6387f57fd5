package admin

import "testing"

func TestValidRole(t *testing.T) {
	for _, role := range []string{"admin", "contributor", "learner"} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "superadmin", "Learner", "moderator"} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true, want false", role)
		}
	}
}

func TestValidAction(t *testing.T) {
	for _, action := range []string{"warn", "remove", "ban"} {
		if !ValidAction(action) {
			t.Errorf("ValidAction(%q) = false, want true", action)
		}
	}
	for _, action := range []string{"", "delete", "WARN", "suspend"} {
		if ValidAction(action) {
			t.Errorf("ValidAction(%q) = true, want false", action)
		}
	}
}

func TestGrowthPercent(t *testing.T) {
	tests := []struct {
		name     string
		lastWeek int
		prevWeek int
		want     float64
	}{
		{"doubled", 20, 10, 100.0},
		{"halved", 5, 10, -50.0},
		{"flat", 10, 10, 0},
		{"rounded to one decimal", 10, 3, 233.3},
		{"no previous signups", 7, 0, 100.0},
		{"no signups at all", 0, 0, 0},
		{"dropped to zero", 0, 10, -100.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GrowthPercent(tt.lastWeek, tt.prevWeek); got != tt.want {
				t.Errorf("GrowthPercent(%d, %d) = %v, want %v", tt.lastWeek, tt.prevWeek, got, tt.want)
			}
		})
	}
}

func TestPreviewContent(t *testing.T) {
	if got := PreviewContent("short", 200); got != "short" {
		t.Errorf("PreviewContent(short) = %q", got)
	}
	long := ""
	for i := 0; i < 50; i++ {
		long += "abcde"
	}
	if got := PreviewContent(long, 200); len(got) != 200 {
		t.Errorf("PreviewContent truncated to %d chars, want 200", len(got))
	}
}
