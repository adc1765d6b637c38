package readings

import (
	"context"
	"fmt"
	"time"

	"github.com/ErwinJ1299/scout2-sub002/errors"
	"github.com/ErwinJ1299/scout2-sub002/pointer"
	"github.com/ErwinJ1299/scout2-sub002/store"
	"go.uber.org/zap"
)

type service struct {
	repo   Repository
	logger *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(repo Repository, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		repo:   repo,
		logger: logger,
	}, nil
}

func (s *service) Create(ctx context.Context, reading Reading) (*Reading, error) {
	if pointer.ToString(reading.PatientId) == "" {
		return nil, fmt.Errorf("%w: patient id is missing", errors.BadRequest)
	}
	if !reading.HasValues() {
		return nil, fmt.Errorf("%w: reading has no metric values", errors.BadRequest)
	}
	if reading.Timestamp == nil {
		reading.Timestamp = pointer.FromAny(time.Now())
	}
	if reading.Source == nil {
		reading.Source = pointer.FromAny(SourceManual)
	}

	created, err := s.repo.Create(ctx, reading)
	if err != nil {
		return nil, err
	}

	s.logger.Debugw("created reading", "patientId", *created.PatientId, "timestamp", *created.Timestamp)
	return created, nil
}

func (s *service) Query(ctx context.Context, patientId string, metric *Metric, start time.Time, end time.Time) ([]Reading, error) {
	if patientId == "" {
		return nil, fmt.Errorf("%w: patient id is missing", errors.BadRequest)
	}
	if metric != nil && !IsValidMetric(*metric) {
		return nil, fmt.Errorf("%w: unknown metric %q", errors.BadRequest, *metric)
	}
	return s.repo.Query(ctx, patientId, metric, start, end)
}

func (s *service) List(ctx context.Context, patientId string, pagination store.Pagination) ([]Reading, error) {
	if patientId == "" {
		return nil, fmt.Errorf("%w: patient id is missing", errors.BadRequest)
	}
	return s.repo.List(ctx, patientId, pagination)
}
