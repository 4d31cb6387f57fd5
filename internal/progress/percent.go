package progress

// ResourceXP is the flat award for completing any single resource.
const ResourceXP = 10

// Percentage computes completed/total as a percentage, guarding the empty
// path.
func Percentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// MinutesFromSeconds truncates a seconds count to whole minutes for the
// enrollment's accumulated time_spent.
func MinutesFromSeconds(seconds int) int {
	if seconds < 0 {
		return 0
	}
	return seconds / 60
}
