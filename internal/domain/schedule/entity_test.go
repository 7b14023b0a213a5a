package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestHoursEffectiveOnEmptyHistory(t *testing.T) {
	got := HoursEffectiveOn(nil, date("2024-03-11"), 8)
	assert.Equal(t, 8.0, got)
}

func TestHoursEffectiveOnBeforeFirstEntry(t *testing.T) {
	history := []HistoryEntry{
		{EffectiveFrom: date("2024-06-01"), DailyHours: 6},
	}
	got := HoursEffectiveOn(history, date("2024-05-31"), 8)
	assert.Equal(t, 8.0, got, "a date before any entry uses the profile fallback")
}

func TestHoursEffectiveOnPicksLatestInForce(t *testing.T) {
	history := []HistoryEntry{
		{EffectiveFrom: date("2024-01-01"), DailyHours: 8},
		{EffectiveFrom: date("2024-06-16"), DailyHours: 6},
	}

	assert.Equal(t, 8.0, HoursEffectiveOn(history, date("2024-06-15"), 7))
	assert.Equal(t, 6.0, HoursEffectiveOn(history, date("2024-06-16"), 7), "change applies on its effective date")
	assert.Equal(t, 6.0, HoursEffectiveOn(history, date("2024-12-31"), 7))
}

func TestHoursEffectiveOnRecomputesOldDatesUnchanged(t *testing.T) {
	// Appending a new entry must not change what past dates resolve to.
	history := []HistoryEntry{
		{EffectiveFrom: date("2024-01-01"), DailyHours: 8},
	}
	before := HoursEffectiveOn(history, date("2024-03-10"), 7)

	history = append(history, HistoryEntry{EffectiveFrom: date("2024-06-16"), DailyHours: 6})
	after := HoursEffectiveOn(history, date("2024-03-10"), 7)

	assert.Equal(t, before, after)
	assert.Equal(t, 8.0, after)
}
