package outcomes

import (
	"context"
	"errors"
	"fmt"
	"time"

	httpErrors "github.com/ErwinJ1299/scout2-sub002/errors"
	"github.com/ErwinJ1299/scout2-sub002/readings"
	"github.com/ErwinJ1299/scout2-sub002/rewards"
	"github.com/ErwinJ1299/scout2-sub002/rules"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type service struct {
	rules    rules.Service
	readings readings.Service
	rewards  rewards.Service
	logger   *zap.SugaredLogger
	now      func() time.Time
}

var _ Service = &service{}

func NewService(rulesService rules.Service, readingsService readings.Service, rewardsService rewards.Service, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		rules:    rulesService,
		readings: readingsService,
		rewards:  rewardsService,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// EvaluateAll runs every active rule against the user's windowed averages
// and grants the eligible ones. Rules are independent: a failure granting
// one is recorded in the summary and never aborts the rest of the pass.
func (s *service) EvaluateAll(ctx context.Context, userId string) (*Summary, error) {
	if userId == "" {
		return nil, fmt.Errorf("%w: user id is missing", httpErrors.BadRequest)
	}

	now := s.now()
	evaluationId := uuid.NewString()
	logger := s.logger.With("evaluationId", evaluationId, "userId", userId)

	activeRules, err := s.rules.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing active rules: %w", err)
	}

	byMetric, err := s.prefetchReadings(ctx, userId, activeRules, now)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		EvaluationId: evaluationId,
		Granted:      []GrantedReward{},
		CheckedRules: len(activeRules),
	}

	for _, rule := range activeRules {
		granted, err := s.evaluateRule(ctx, userId, rule, byMetric[rule.Metric], now)
		if err != nil {
			logger.Errorw("rule evaluation failed", "ruleId", ruleId(rule), "error", err)
			summary.Failures = append(summary.Failures, RuleFailure{
				RuleId: ruleId(rule),
				Error:  err.Error(),
			})
			continue
		}
		if granted != nil {
			summary.Granted = append(summary.Granted, *granted)
		}
	}

	summary.Message = summaryMessage(len(summary.Granted))
	logger.Infow("completed outcome evaluation",
		"checkedRules", summary.CheckedRules,
		"granted", len(summary.Granted),
		"failed", len(summary.Failures),
	)
	return summary, nil
}

// prefetchReadings queries each distinct metric once, over the widest span
// any rule for that metric needs (current plus previous window).
func (s *service) prefetchReadings(ctx context.Context, userId string, activeRules []rules.Rule, now time.Time) (map[readings.Metric][]readings.Reading, error) {
	metrics := mapset.NewSet[readings.Metric]()
	maxSpan := map[readings.Metric]time.Duration{}
	for _, rule := range activeRules {
		metrics.Add(rule.Metric)
		if span := 2 * rule.Window(); span > maxSpan[rule.Metric] {
			maxSpan[rule.Metric] = span
		}
	}

	byMetric := make(map[readings.Metric][]readings.Reading, metrics.Cardinality())
	for metric := range metrics.Iter() {
		m := metric
		list, err := s.readings.Query(ctx, userId, &m, now.Add(-maxSpan[metric]), now)
		if err != nil {
			return nil, fmt.Errorf("error querying %s readings: %w", metric, err)
		}
		byMetric[metric] = list
	}
	return byMetric, nil
}

func (s *service) evaluateRule(ctx context.Context, userId string, rule rules.Rule, list []readings.Reading, now time.Time) (*GrantedReward, error) {
	windowStart := now.Add(-rule.Window())
	previousStart := now.Add(-2 * rule.Window())

	currentAvg := readings.Average(list, rule.Metric, windowStart, now)
	previousAvg := readings.Average(list, rule.Metric, previousStart, windowStart)

	lastRewardAt, err := s.rewards.LastGrant(ctx, userId, ruleId(rule))
	if err != nil {
		return nil, err
	}

	result := Evaluate(rule, currentAvg, previousAvg, lastRewardAt, now)
	if !result.Eligible {
		s.logger.Debugw("rule not eligible", "ruleId", result.RuleId, "reason", result.Reason)
		return nil, nil
	}

	params := rewards.GrantParams{
		ImprovementValue: *result.ImprovementValue,
		CurrentAverage:   *result.CurrentAverage,
		PreviousAverage:  *result.PreviousAverage,
		PeriodStart:      windowStart,
		PeriodEnd:        now,
	}
	reward, err := s.rewards.Grant(ctx, userId, rule, params)
	if errors.Is(err, rewards.ErrAlreadyGranted) {
		// Lost the race against a concurrent evaluation. The reward exists,
		// so this is a skip, not a failure.
		s.logger.Debugw("reward already granted", "ruleId", result.RuleId)
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return &GrantedReward{
		RuleId:           result.RuleId,
		Metric:           rule.Metric,
		ImprovementValue: reward.ImprovementValue,
		RewardHp:         reward.RewardHp,
		RewardWc:         reward.RewardWc,
		Description:      describeGrant(rule, reward.ImprovementValue),
	}, nil
}

func ruleId(rule rules.Rule) string {
	if rule.Id == nil {
		return ""
	}
	return rule.Id.Hex()
}

func describeGrant(rule rules.Rule, improvement float64) string {
	if rule.Description != nil && *rule.Description != "" {
		return *rule.Description
	}

	switch rule.Direction {
	case rules.DirectionDecrease:
		return fmt.Sprintf("Lowered average %s by %.1f over %d days", rule.Metric, improvement, rule.WindowDays)
	case rules.DirectionIncrease:
		return fmt.Sprintf("Raised average %s by %.1f over %d days", rule.Metric, improvement, rule.WindowDays)
	default:
		return fmt.Sprintf("Brought average %s into the healthy range", rule.Metric)
	}
}

func summaryMessage(granted int) string {
	switch granted {
	case 0:
		return "No new rewards earned. Keep tracking your health!"
	case 1:
		return "Congratulations! You earned 1 new reward."
	default:
		return fmt.Sprintf("Congratulations! You earned %d new rewards.", granted)
	}
}
