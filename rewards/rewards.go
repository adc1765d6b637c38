package rewards

import (
	"context"
	"errors"
	"time"

	"github.com/ErwinJ1299/scout2-sub002/readings"
	"github.com/ErwinJ1299/scout2-sub002/rules"
	"github.com/ErwinJ1299/scout2-sub002/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrAlreadyGranted is returned when the grant-time cooldown re-check finds
// a reward for the same (user, rule) inside the cooldown window. It marks a
// benign race between concurrent evaluations, not a failure, and must never
// be retried.
var ErrAlreadyGranted = errors.New("reward already granted within cooldown window")

type Service interface {
	LastGrant(ctx context.Context, userId string, ruleId string) (*time.Time, error)
	Grant(ctx context.Context, userId string, rule rules.Rule, params GrantParams) (*Reward, error)
	List(ctx context.Context, userId string, pagination store.Pagination) ([]Reward, error)
}

// Reward is the append-only record of a granted outcome reward. The most
// recent record per (userId, ruleId) defines the cooldown boundary.
type Reward struct {
	Id               *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserId           string              `bson:"userId" json:"userId"`
	RuleId           primitive.ObjectID  `bson:"ruleId" json:"ruleId"`
	Metric           readings.Metric     `bson:"metric" json:"metric"`
	PeriodStart      time.Time           `bson:"periodStart" json:"periodStart"`
	PeriodEnd        time.Time           `bson:"periodEnd" json:"periodEnd"`
	ImprovementValue float64             `bson:"improvementValue" json:"improvementValue"`
	CurrentAverage   float64             `bson:"currentAverage" json:"currentAverage"`
	PreviousAverage  float64             `bson:"previousAverage" json:"previousAverage"`
	RewardHp         int                 `bson:"rewardHp" json:"rewardHp"`
	RewardWc         int                 `bson:"rewardWc" json:"rewardWc"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
}

// GrantParams carries the evaluation snapshot that materializes into a
// reward record when the grant succeeds.
type GrantParams struct {
	ImprovementValue float64
	CurrentAverage   float64
	PreviousAverage  float64
	PeriodStart      time.Time
	PeriodEnd        time.Time
}
