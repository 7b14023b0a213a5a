package attendance

import (
	"sort"
	"time"
)

// MergePunchTimes applies the consolidation rule for one employee-day: union
// the new punch times with whatever the stored row already holds, then take
// the earliest time as check-in and the latest distinct time as check-out.
// A day with a single distinct time has no check-out yet.
//
// The rule is idempotent and order-independent: replaying the same punches,
// or delivering them across batches in any order, converges to the same row.
func MergePunchTimes(existing *Record, date time.Time, newTimes []time.Time) (checkIn time.Time, checkOut *time.Time) {
	set := make(map[time.Time]struct{}, len(newTimes)+2)
	for _, t := range newTimes {
		set[normalizePunch(date, t)] = struct{}{}
	}
	if existing != nil {
		if existing.CheckIn != nil {
			set[normalizePunch(date, *existing.CheckIn)] = struct{}{}
		}
		if existing.CheckOut != nil {
			set[normalizePunch(date, *existing.CheckOut)] = struct{}{}
		}
	}

	times := make([]time.Time, 0, len(set))
	for t := range set {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	checkIn = times[0]
	if len(times) > 1 {
		last := times[len(times)-1]
		checkOut = &last
	}
	return checkIn, checkOut
}

// normalizePunch pins a punch onto the record's calendar date, keeping only
// its time-of-day. Punches are compared within the day they were stamped
// with; overnight wrap is handled at computation time, not here.
func normalizePunch(date time.Time, t time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
