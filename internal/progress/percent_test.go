package progress

import "testing"

func TestPercentage(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      float64
	}{
		{"empty path", 0, 0, 0},
		{"nothing done", 0, 10, 0},
		{"half done", 5, 10, 50},
		{"all done", 10, 10, 100},
		{"one of three", 1, 3, 100.0 / 3.0},
		{"negative total guarded", 3, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentage(tt.completed, tt.total); got != tt.want {
				t.Errorf("Percentage(%d, %d) = %v, want %v", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func TestMinutesFromSeconds(t *testing.T) {
	tests := []struct {
		seconds int
		want    int
	}{
		{0, 0},
		{59, 0},
		{60, 1},
		{119, 1},
		{3600, 60},
		{-30, 0},
	}

	for _, tt := range tests {
		if got := MinutesFromSeconds(tt.seconds); got != tt.want {
			t.Errorf("MinutesFromSeconds(%d) = %d, want %d", tt.seconds, got, tt.want)
		}
	}
}
