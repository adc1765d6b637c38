package readings

import (
	"time"

	"github.com/ErwinJ1299/scout2-sub002/pointer"
)

// Average returns the arithmetic mean of the readings that carry a value for
// the metric and whose timestamp falls in [windowStart, windowEnd). It
// returns nil when no reading qualifies; callers must treat nil as
// "insufficient data", never as a zero improvement.
func Average(list []Reading, metric Metric, windowStart time.Time, windowEnd time.Time) *float64 {
	var sum float64
	var count int

	for i := range list {
		value := list[i].Value(metric)
		if value == nil || list[i].Timestamp == nil {
			continue
		}
		t := *list[i].Timestamp
		if t.Before(windowStart) || !t.Before(windowEnd) {
			continue
		}
		sum += *value
		count++
	}

	if count == 0 {
		return nil
	}
	return pointer.FromAny(sum / float64(count))
}
