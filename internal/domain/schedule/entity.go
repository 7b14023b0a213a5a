package schedule

import "time"

// HistoryEntry is one append-only, effective-dated record of an employee's
// required daily hours. Entries are never mutated or deleted; the value in
// force on date D is the entry with the greatest EffectiveFrom <= D.
type HistoryEntry struct {
	ID            string
	EmployeeID    string
	EffectiveFrom time.Time // day-granular
	DailyHours    float64
	CreatedAt     time.Time
}

// HoursEffectiveOn resolves the agreed daily hours for a date against a
// history already sorted ascending by EffectiveFrom. When no entry is in
// force yet it falls back to the employee's current profile value.
func HoursEffectiveOn(history []HistoryEntry, date time.Time, fallback float64) float64 {
	hours := fallback
	for _, entry := range history {
		if entry.EffectiveFrom.After(date) {
			break
		}
		hours = entry.DailyHours
	}
	return hours
}
