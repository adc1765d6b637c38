package readings

import (
	"context"
	"time"

	"github.com/ErwinJ1299/scout2-sub002/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SourceManual   = "manual"
	SourceWearable = "wearable"
)

type Metric string

const (
	MetricGlucose     Metric = "glucose"
	MetricBpSystolic  Metric = "bpSystolic"
	MetricBpDiastolic Metric = "bpDiastolic"
	MetricHeartRate   Metric = "heartRate"
	MetricSteps       Metric = "steps"
	MetricWeight      Metric = "weight"
)

func Metrics() []Metric {
	return []Metric{
		MetricGlucose,
		MetricBpSystolic,
		MetricBpDiastolic,
		MetricHeartRate,
		MetricSteps,
		MetricWeight,
	}
}

func IsValidMetric(metric Metric) bool {
	for _, m := range Metrics() {
		if m == metric {
			return true
		}
	}
	return false
}

type Service interface {
	Create(ctx context.Context, reading Reading) (*Reading, error)
	Query(ctx context.Context, patientId string, metric *Metric, start time.Time, end time.Time) ([]Reading, error)
	List(ctx context.Context, patientId string, pagination store.Pagination) ([]Reading, error)
}

// Reading is a single immutable measurement reported by a patient or synced
// from a wearable. Only the fields for the measured metrics are set.
type Reading struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PatientId   *string             `bson:"patientId,omitempty" json:"patientId,omitempty"`
	Glucose     *float64            `bson:"glucose,omitempty" json:"glucose,omitempty"`
	BpSystolic  *float64            `bson:"bpSystolic,omitempty" json:"bpSystolic,omitempty"`
	BpDiastolic *float64            `bson:"bpDiastolic,omitempty" json:"bpDiastolic,omitempty"`
	HeartRate   *float64            `bson:"heartRate,omitempty" json:"heartRate,omitempty"`
	Steps       *float64            `bson:"steps,omitempty" json:"steps,omitempty"`
	Weight      *float64            `bson:"weight,omitempty" json:"weight,omitempty"`
	Timestamp   *time.Time          `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
	Source      *string             `bson:"source,omitempty" json:"source,omitempty"`
}

// Value returns the reading's value for the given metric, or nil if the
// reading does not carry that metric.
func (r *Reading) Value(metric Metric) *float64 {
	switch metric {
	case MetricGlucose:
		return r.Glucose
	case MetricBpSystolic:
		return r.BpSystolic
	case MetricBpDiastolic:
		return r.BpDiastolic
	case MetricHeartRate:
		return r.HeartRate
	case MetricSteps:
		return r.Steps
	case MetricWeight:
		return r.Weight
	}
	return nil
}

func (r *Reading) HasValues() bool {
	for _, metric := range Metrics() {
		if r.Value(metric) != nil {
			return true
		}
	}
	return false
}
