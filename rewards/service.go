package rewards

import (
	"context"
	"fmt"
	"time"

	"github.com/ErwinJ1299/scout2-sub002/errors"
	"github.com/ErwinJ1299/scout2-sub002/rules"
	"github.com/ErwinJ1299/scout2-sub002/store"
	"github.com/ErwinJ1299/scout2-sub002/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type service struct {
	txnRunner store.TxnRunner
	repo      Repository
	stats     users.Service
	logger    *zap.SugaredLogger
	now       func() time.Time
}

var _ Service = &service{}

func NewService(txnRunner store.TxnRunner, repo Repository, stats users.Service, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		txnRunner: txnRunner,
		repo:      repo,
		stats:     stats,
		logger:    logger,
		now:       time.Now,
	}, nil
}

func (s *service) LastGrant(ctx context.Context, userId string, ruleId string) (*time.Time, error) {
	return s.repo.LastGrant(ctx, userId, ruleId)
}

func (s *service) List(ctx context.Context, userId string, pagination store.Pagination) ([]Reward, error) {
	if userId == "" {
		return nil, fmt.Errorf("%w: user id is missing", errors.BadRequest)
	}
	return s.repo.List(ctx, userId, pagination)
}

// Grant persists the reward and applies the balance increments in a single
// transaction. The cooldown is re-checked inside the transaction so that two
// concurrent evaluations for the same user cannot both grant: the loser of
// the write conflict is retried by the driver, observes the winner's record
// and returns ErrAlreadyGranted.
func (s *service) Grant(ctx context.Context, userId string, rule rules.Rule, params GrantParams) (*Reward, error) {
	if userId == "" {
		return nil, fmt.Errorf("%w: user id is missing", errors.BadRequest)
	}
	if rule.Id == nil {
		return nil, fmt.Errorf("%w: rule id is missing", errors.BadRequest)
	}

	result, err := s.txnRunner.Execute(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		now := s.now()

		last, err := s.repo.LastGrant(sessCtx, userId, rule.Id.Hex())
		if err != nil {
			return nil, err
		}
		if last != nil && now.Sub(*last) < rule.Cooldown() {
			return nil, ErrAlreadyGranted
		}

		reward := Reward{
			UserId:           userId,
			RuleId:           *rule.Id,
			Metric:           rule.Metric,
			PeriodStart:      params.PeriodStart,
			PeriodEnd:        params.PeriodEnd,
			ImprovementValue: params.ImprovementValue,
			CurrentAverage:   params.CurrentAverage,
			PreviousAverage:  params.PreviousAverage,
			RewardHp:         rule.RewardHp,
			RewardWc:         rule.RewardWc,
			CreatedAt:        now,
		}

		inserted, err := s.repo.Insert(sessCtx, reward)
		if err != nil {
			return nil, err
		}

		increment := users.StatsIncrement{
			TotalPoints:       rule.RewardHp,
			RewardTokens:      rule.RewardWc,
			TotalTokensEarned: rule.RewardWc,
		}
		if err := s.stats.Increment(sessCtx, userId, increment); err != nil {
			return nil, err
		}

		return inserted, nil
	})

	if err != nil {
		return nil, err
	}

	reward := result.(*Reward)
	s.logger.Infow("granted outcome reward",
		"userId", userId,
		"ruleId", rule.Id.Hex(),
		"metric", rule.Metric,
		"rewardHp", rule.RewardHp,
		"rewardWc", rule.RewardWc,
	)
	return reward, nil
}
