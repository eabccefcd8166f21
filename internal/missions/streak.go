package missions

import "time"

// NextStreak applies the continuity rule on mission completion: the streak
// grows by one when there is no prior completion or the previous completion
// day is at most one calendar day before today (same-day counts), and
// resets to 1 otherwise.
func NextStreak(current int, lastCompletion *time.Time, now time.Time) int {
	if lastCompletion == nil {
		return current + 1
	}
	lastDay := civilDate(*lastCompletion)
	today := civilDate(now)
	if !today.After(lastDay.AddDate(0, 0, 1)) {
		return current + 1
	}
	return 1
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
