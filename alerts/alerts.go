package alerts

import (
	"context"
	"errors"
	"time"

	"github.com/ErwinJ1299/scout2-sub002/readings"
	"github.com/ErwinJ1299/scout2-sub002/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound          = errors.New("alert not found")
	ErrInvalidTransition = errors.New("invalid alert status transition")
)

type Severity string

const (
	SeverityWatch    Severity = "WATCH"
	SeverityCritical Severity = "CRITICAL"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusReviewed Status = "REVIEWED"
	StatusResolved Status = "RESOLVED"
)

// CanTransition reports whether an alert in status `from` may move to `to`.
// RESOLVED is terminal; REVIEWED and RESOLVED are both reachable directly
// from ACTIVE.
func CanTransition(from Status, to Status) bool {
	switch to {
	case StatusReviewed:
		return from == StatusActive
	case StatusResolved:
		return from == StatusActive || from == StatusReviewed
	}
	return false
}

type Service interface {
	ProcessReading(ctx context.Context, reading readings.Reading) (*Alert, error)
	Get(ctx context.Context, alertId string) (*Alert, error)
	List(ctx context.Context, patientId string, status *Status, pagination store.Pagination) ([]Alert, error)
	Transition(ctx context.Context, alertId string, newStatus Status, actor string, notes *string) (*Alert, error)
}

type Alert struct {
	Id             *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PatientId      string              `bson:"patientId" json:"patientId"`
	DoctorId       *string             `bson:"doctorId,omitempty" json:"doctorId,omitempty"`
	Severity       Severity            `bson:"severity" json:"severity"`
	Status         Status              `bson:"status" json:"status"`
	TriggerMetric  readings.Metric     `bson:"triggerMetric" json:"triggerMetric"`
	TriggerValue   float64             `bson:"triggerValue" json:"triggerValue"`
	Detection      Detection           `bson:"detectionResult" json:"detectionResult"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	AcknowledgedBy *string             `bson:"acknowledgedBy,omitempty" json:"acknowledgedBy,omitempty"`
	AcknowledgedAt *time.Time          `bson:"acknowledgedAt,omitempty" json:"acknowledgedAt,omitempty"`
	ResolvedBy     *string             `bson:"resolvedBy,omitempty" json:"resolvedBy,omitempty"`
	ResolvedAt     *time.Time          `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	Notes          *string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Detection is the classifier output persisted with the alert.
type Detection struct {
	Anomalies            []Anomaly `bson:"anomalies" json:"anomalies"`
	Severity             Severity  `bson:"severity" json:"severity"`
	Confidence           float64   `bson:"confidence" json:"confidence"`
	RequiresNotification bool      `bson:"requiresNotification" json:"requiresNotification"`
}

type Anomaly struct {
	Metric       readings.Metric `bson:"metric" json:"metric"`
	CurrentValue float64         `bson:"currentValue" json:"currentValue"`
	NormalRange  Range           `bson:"normalRange" json:"normalRange"`
	Deviation    float64         `bson:"deviation" json:"deviation"`
	Type         string          `bson:"type" json:"type"`
	Severity     Severity        `bson:"severity" json:"severity"`
	Description  string          `bson:"description" json:"description"`
}

const AnomalyTypeThresholdBreach = "threshold_breach"

type Range struct {
	Min *float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max *float64 `bson:"max,omitempty" json:"max,omitempty"`
}

// Band holds the warning and critical bounds for one metric. A nil bound is
// unbounded on that side.
type Band struct {
	WarnLow  *float64
	WarnHigh *float64
	CritLow  *float64
	CritHigh *float64
}

type NormalRanges map[readings.Metric]Band

func fp(v float64) *float64 { return &v }

// DefaultNormalRanges are the shipped per-metric threshold bands. The exact
// bounds are a clinical policy knob; these follow common reference ranges
// (e.g. systolic warning above 140, critical above 180). Steps and weight
// carry no bands and never trigger alerts.
func DefaultNormalRanges() NormalRanges {
	return NormalRanges{
		readings.MetricGlucose: {
			WarnLow:  fp(70),
			WarnHigh: fp(140),
			CritLow:  fp(54),
			CritHigh: fp(180),
		},
		readings.MetricBpSystolic: {
			WarnLow:  fp(90),
			WarnHigh: fp(140),
			CritLow:  fp(80),
			CritHigh: fp(180),
		},
		readings.MetricBpDiastolic: {
			WarnLow:  fp(60),
			WarnHigh: fp(90),
			CritLow:  fp(50),
			CritHigh: fp(120),
		},
		readings.MetricHeartRate: {
			WarnLow:  fp(50),
			WarnHigh: fp(100),
			CritLow:  fp(40),
			CritHigh: fp(140),
		},
	}
}
