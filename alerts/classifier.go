package alerts

import (
	"fmt"
	"math"
	"time"

	"github.com/ErwinJ1299/scout2-sub002/readings"
)

// Confidence weighting. Source trust dominates, recency decays with the
// staleness of the triggering reading, consistency rewards agreement across
// recent same-metric readings.
const (
	sourceWeight      = 0.5
	recencyWeight     = 0.3
	consistencyWeight = 0.2

	recencyFloor    = 0.3
	recencyFullAge  = time.Hour
	recencyDecayAge = 48 * time.Hour

	consistencyFloor    = 0.3
	consistencyBaseline = 0.5
)

// Classify scores a single reading against the per-metric threshold bands.
// It returns one anomaly per breached metric and the aggregate severity:
// CRITICAL when any breach crosses a critical bound, WATCH when only
// warning bounds are crossed, nil when the reading is in range everywhere.
func Classify(reading readings.Reading, ranges NormalRanges) ([]Anomaly, *Severity) {
	var anomalies []Anomaly
	var overall *Severity

	for _, metric := range readings.Metrics() {
		value := reading.Value(metric)
		if value == nil {
			continue
		}
		band, ok := ranges[metric]
		if !ok {
			continue
		}

		anomaly := classifyValue(metric, *value, band)
		if anomaly == nil {
			continue
		}
		anomalies = append(anomalies, *anomaly)

		if anomaly.Severity == SeverityCritical {
			severity := SeverityCritical
			overall = &severity
		} else if overall == nil {
			severity := SeverityWatch
			overall = &severity
		}
	}

	return anomalies, overall
}

func classifyValue(metric readings.Metric, value float64, band Band) *Anomaly {
	normal := Range{Min: band.WarnLow, Max: band.WarnHigh}

	switch {
	case band.CritHigh != nil && value > *band.CritHigh:
		return newAnomaly(metric, value, normal, value-*band.CritHigh, SeverityCritical,
			fmt.Sprintf("%s of %.1f is critically above the threshold of %.1f", metric, value, *band.CritHigh))
	case band.CritLow != nil && value < *band.CritLow:
		return newAnomaly(metric, value, normal, value-*band.CritLow, SeverityCritical,
			fmt.Sprintf("%s of %.1f is critically below the threshold of %.1f", metric, value, *band.CritLow))
	case band.WarnHigh != nil && value > *band.WarnHigh:
		return newAnomaly(metric, value, normal, value-*band.WarnHigh, SeverityWatch,
			fmt.Sprintf("%s of %.1f is above the normal range of %.1f", metric, value, *band.WarnHigh))
	case band.WarnLow != nil && value < *band.WarnLow:
		return newAnomaly(metric, value, normal, value-*band.WarnLow, SeverityWatch,
			fmt.Sprintf("%s of %.1f is below the normal range of %.1f", metric, value, *band.WarnLow))
	}
	return nil
}

func newAnomaly(metric readings.Metric, value float64, normal Range, deviation float64, severity Severity, description string) *Anomaly {
	return &Anomaly{
		Metric:       metric,
		CurrentValue: value,
		NormalRange:  normal,
		Deviation:    deviation,
		Type:         AnomalyTypeThresholdBreach,
		Severity:     severity,
		Description:  description,
	}
}

// ConfidenceScore combines source trust, data recency and data consistency
// into a [0, 1] score. Fresher, wearable-sourced and mutually consistent
// data never scores lower than staler, manual or noisier data for the same
// anomaly set.
func ConfidenceScore(reading readings.Reading, recent []readings.Reading, now time.Time) float64 {
	score := sourceWeight*sourceScore(reading.Source) +
		recencyWeight*recencyScore(reading.Timestamp, now) +
		consistencyWeight*consistencyScore(reading, recent)
	return math.Min(1, math.Max(0, score))
}

func sourceScore(source *string) float64 {
	if source == nil {
		return 0.5
	}
	switch *source {
	case readings.SourceWearable:
		return 0.9
	case readings.SourceManual:
		return 0.6
	}
	return 0.5
}

func recencyScore(timestamp *time.Time, now time.Time) float64 {
	if timestamp == nil {
		return recencyFloor
	}
	age := now.Sub(*timestamp)
	if age <= recencyFullAge {
		return 1
	}
	if age >= recencyDecayAge {
		return recencyFloor
	}
	fraction := float64(age-recencyFullAge) / float64(recencyDecayAge-recencyFullAge)
	return 1 - fraction*(1-recencyFloor)
}

// consistencyScore measures agreement across recent readings for the metrics
// the triggering reading carries, as one minus the mean coefficient of
// variation. Fewer than two points per metric yields a neutral baseline.
func consistencyScore(reading readings.Reading, recent []readings.Reading) float64 {
	var total float64
	var scored int

	for _, metric := range readings.Metrics() {
		if reading.Value(metric) == nil {
			continue
		}

		var values []float64
		for i := range recent {
			if v := recent[i].Value(metric); v != nil {
				values = append(values, *v)
			}
		}
		if v := reading.Value(metric); v != nil {
			values = append(values, *v)
		}
		if len(values) < 2 {
			continue
		}

		total += math.Max(consistencyFloor, 1-coefficientOfVariation(values))
		scored++
	}

	if scored == 0 {
		return consistencyBaseline
	}
	return total / float64(scored)
}

func coefficientOfVariation(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	return math.Sqrt(variance) / math.Abs(mean)
}
