package alerts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ErwinJ1299/scout2-sub002/errors"
	"github.com/ErwinJ1299/scout2-sub002/pointer"
	"github.com/ErwinJ1299/scout2-sub002/readings"
	"github.com/ErwinJ1299/scout2-sub002/store"
	"github.com/hashicorp/golang-lru/simplelru"
	"go.uber.org/zap"
)

const (
	// SuppressionWindow is how long a WATCH-severity breach for the same
	// (patient, metric) stays suppressed after an alert went ACTIVE.
	// Repeated borderline readings inside the window raise no new alert.
	SuppressionWindow = 24 * time.Hour

	suppressionCacheSize = 1024
	confidenceLookback   = 24 * time.Hour
)

type service struct {
	repo        Repository
	readings    readings.Service
	ranges      NormalRanges
	logger      *zap.SugaredLogger
	now         func() time.Time
	suppression *simplelru.LRU
	mu          *sync.Mutex
}

var _ Service = &service{}

func NewService(repo Repository, readingsService readings.Service, logger *zap.SugaredLogger) (Service, error) {
	var onEvict simplelru.EvictCallback
	suppression, err := simplelru.NewLRU(suppressionCacheSize, onEvict)
	if err != nil {
		return nil, err
	}

	return &service{
		repo:        repo,
		readings:    readingsService,
		ranges:      DefaultNormalRanges(),
		logger:      logger,
		now:         time.Now,
		suppression: suppression,
		mu:          &sync.Mutex{},
	}, nil
}

// ProcessReading classifies a reading and persists an alert when the
// classification warrants one. Store failures leave no partial alert behind:
// the insert is a single document write.
func (s *service) ProcessReading(ctx context.Context, reading readings.Reading) (*Alert, error) {
	patientId := pointer.ToString(reading.PatientId)
	if patientId == "" {
		return nil, fmt.Errorf("%w: patient id is missing", errors.BadRequest)
	}

	anomalies, severity := Classify(reading, s.ranges)
	if severity == nil {
		return nil, nil
	}

	now := s.now()
	trigger := anomalies[0]
	for _, anomaly := range anomalies {
		if anomaly.Severity == *severity {
			trigger = anomaly
			break
		}
	}

	if *severity == SeverityWatch {
		suppressed, err := s.isSuppressed(ctx, patientId, trigger.Metric, now)
		if err != nil {
			return nil, err
		}
		if suppressed {
			s.logger.Debugw("suppressed repeat watch alert",
				"patientId", patientId,
				"metric", trigger.Metric,
			)
			return nil, nil
		}
	}

	confidence := s.confidence(ctx, reading, now)

	alert := Alert{
		PatientId:     patientId,
		Severity:      *severity,
		Status:        StatusActive,
		TriggerMetric: trigger.Metric,
		TriggerValue:  trigger.CurrentValue,
		Detection: Detection{
			Anomalies:            anomalies,
			Severity:             *severity,
			Confidence:           confidence,
			RequiresNotification: true,
		},
		CreatedAt: now,
	}

	created, err := s.repo.Create(ctx, alert)
	if err != nil {
		return nil, err
	}
	s.cacheSuppression(suppressionKey(patientId, trigger.Metric), now)

	s.logger.Infow("created health alert",
		"alertId", created.Id.Hex(),
		"patientId", patientId,
		"severity", created.Severity,
		"metric", created.TriggerMetric,
		"confidence", confidence,
	)
	return created, nil
}

func (s *service) Get(ctx context.Context, alertId string) (*Alert, error) {
	return s.repo.Get(ctx, alertId)
}

func (s *service) List(ctx context.Context, patientId string, status *Status, pagination store.Pagination) ([]Alert, error) {
	if patientId == "" {
		return nil, fmt.Errorf("%w: patient id is missing", errors.BadRequest)
	}
	return s.repo.List(ctx, patientId, status, pagination)
}

func (s *service) Transition(ctx context.Context, alertId string, newStatus Status, actor string, notes *string) (*Alert, error) {
	if alertId == "" {
		return nil, fmt.Errorf("%w: alert id is missing", errors.BadRequest)
	}
	if actor == "" {
		return nil, fmt.Errorf("%w: actor is missing", errors.BadRequest)
	}
	if newStatus != StatusReviewed && newStatus != StatusResolved {
		return nil, ErrInvalidTransition
	}

	alert, err := s.repo.Transition(ctx, alertId, newStatus, actor, notes)
	if err != nil {
		return nil, err
	}

	// The alert is no longer ACTIVE, so new breaches for the pair must not
	// be suppressed from the cache.
	s.invalidateSuppression(suppressionKey(alert.PatientId, alert.TriggerMetric))

	s.logger.Infow("transitioned alert", "alertId", alertId, "status", newStatus, "actor", actor)
	return alert, nil
}

// isSuppressed consults the in-process cache before the store so repeated
// borderline readings do not hammer the alerts collection.
func (s *service) isSuppressed(ctx context.Context, patientId string, metric readings.Metric, now time.Time) (bool, error) {
	if s.cachedSuppression(suppressionKey(patientId, metric), now) {
		return true, nil
	}

	return s.repo.HasActiveSince(ctx, patientId, metric, now.Add(-SuppressionWindow))
}

func (s *service) cachedSuppression(key string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok := s.suppression.Get(key); ok {
		if createdAt, ok := raw.(time.Time); ok && now.Sub(createdAt) < SuppressionWindow {
			return true
		}
		s.suppression.Remove(key)
	}
	return false
}

func (s *service) cacheSuppression(key string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.suppression.Add(key, now)
}

func (s *service) invalidateSuppression(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.suppression.Remove(key)
}

// confidence falls back to the trigger-only score when the recent readings
// query fails; the alert is still worth raising.
func (s *service) confidence(ctx context.Context, reading readings.Reading, now time.Time) float64 {
	patientId := pointer.ToString(reading.PatientId)
	recent, err := s.readings.Query(ctx, patientId, nil, now.Add(-confidenceLookback), now)
	if err != nil {
		s.logger.Warnw("unable to load recent readings for confidence scoring",
			"patientId", patientId,
			"error", err,
		)
		recent = nil
	}
	return ConfidenceScore(reading, recent, now)
}

func suppressionKey(patientId string, metric readings.Metric) string {
	return patientId + ":" + string(metric)
}
