package outcomes

import (
	"context"

	"github.com/ErwinJ1299/scout2-sub002/readings"
)

const (
	ReasonInsufficientData   = "insufficient_data"
	ReasonCooldownActive     = "cooldown_active"
	ReasonChangeBelowMinimum = "change_below_minimum"
	ReasonOutsideTargetRange = "outside_target_range"
	ReasonNotEnteredRange    = "not_entered_range"
	ReasonUnknownDirection   = "unknown_direction"
)

type Service interface {
	EvaluateAll(ctx context.Context, userId string) (*Summary, error)
}

// Result is the transient verdict for a single rule. It is produced fresh on
// every evaluation and only materializes into a reward record when eligible.
type Result struct {
	RuleId           string          `json:"ruleId"`
	Metric           readings.Metric `json:"metric"`
	Eligible         bool            `json:"eligible"`
	Reason           string          `json:"reason,omitempty"`
	ImprovementValue *float64        `json:"improvementValue,omitempty"`
	CurrentAverage   *float64        `json:"currentAverage,omitempty"`
	PreviousAverage  *float64        `json:"previousAverage,omitempty"`
	RewardHp         int             `json:"rewardHp"`
	RewardWc         int             `json:"rewardWc"`
}

type GrantedReward struct {
	RuleId           string          `json:"ruleId"`
	Metric           readings.Metric `json:"metric"`
	ImprovementValue float64         `json:"improvementValue"`
	RewardHp         int             `json:"rewardHp"`
	RewardWc         int             `json:"rewardWc"`
	Description      string          `json:"description"`
}

type RuleFailure struct {
	RuleId string `json:"ruleId"`
	Error  string `json:"error"`
}

type Summary struct {
	EvaluationId string          `json:"evaluationId"`
	Granted      []GrantedReward `json:"granted"`
	CheckedRules int             `json:"checkedRules"`
	Failures     []RuleFailure   `json:"failures,omitempty"`
	Message      string          `json:"message"`
}
