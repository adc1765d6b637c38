package rules

import (
	"context"

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

func (s *service) Create(ctx context.Context, rule Rule) (*Rule, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, rule)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("created outcome rule", "ruleId", created.Id.Hex(), "metric", created.Metric)
	return created, nil
}

func (s *service) Update(ctx context.Context, ruleId string, rule Rule) (*Rule, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, ruleId, rule)
}

func (s *service) Get(ctx context.Context, ruleId string) (*Rule, error) {
	return s.repo.Get(ctx, ruleId)
}

func (s *service) ListActive(ctx context.Context) ([]Rule, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) List(ctx context.Context, pagination store.Pagination) ([]Rule, error) {
	return s.repo.List(ctx, pagination)
}

func (s *service) SetActive(ctx context.Context, ruleId string, active bool) (*Rule, error) {
	updated, err := s.repo.SetActive(ctx, ruleId, active)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("updated outcome rule active flag", "ruleId", ruleId, "active", active)
	return updated, nil
}
