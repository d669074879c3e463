package service

import (
	"math"
	"time"
)

// capacityEpsilon tolerates floating-point rounding when comparing hour
// sums against capacity; raw values drive the comparison, rounding is for
// display only.
const capacityEpsilon = 1e-6

const dateLayout = "2006-01-02"

// truncateToDay drops the time-of-day component, keeping the calendar day
// in the value's own location. Timezone anchoring is implicit; see
// DESIGN.md for the bucketing decision.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday of the week containing t. Sunday belongs
// to the preceding week, so it maps to the Monday six days earlier.
func startOfWeek(t time.Time) time.Time {
	t = truncateToDay(t)
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	return t.AddDate(0, 0, -offset)
}

// fitsCapacity reports whether adding proposed hours to the already
// allocated sum stays within capacity, within epsilon.
func fitsCapacity(allocated, proposed, capacity float64) bool {
	return allocated+proposed <= capacity+capacityEpsilon
}

// availableHours returns the remaining capacity, clamped at zero.
func availableHours(capacity, allocated float64) float64 {
	avail := capacity - allocated
	if avail < 0 {
		return 0
	}
	return avail
}

// utilizationPercent returns allocated/capacity as a percentage, 0 when
// capacity is 0.
func utilizationPercent(allocated, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return round2(allocated / capacity * 100)
}

// round2 rounds to two decimal places for display figures.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// bucketKey identifies one (user, day) capacity bucket.
type bucketKey struct {
	userID string
	date   string // dateLayout
}

func newBucketKey(userID string, date time.Time) bucketKey {
	return bucketKey{userID: userID, date: date.Format(dateLayout)}
}
