package rules

import (
	"context"
	"errors"
	"fmt"
	"time"

	httpErrors "github.com/ErwinJ1299/scout2-sub002/errors"
	"github.com/ErwinJ1299/scout2-sub002/readings"
	"github.com/ErwinJ1299/scout2-sub002/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("outcome rule not found")

type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
	DirectionRange    Direction = "range"
)

type Service interface {
	Create(ctx context.Context, rule Rule) (*Rule, error)
	Update(ctx context.Context, ruleId string, rule Rule) (*Rule, error)
	Get(ctx context.Context, ruleId string) (*Rule, error)
	ListActive(ctx context.Context) ([]Rule, error)
	List(ctx context.Context, pagination store.Pagination) ([]Rule, error)
	SetActive(ctx context.Context, ruleId string, active bool) (*Rule, error)
}

// Rule is an administrator-configured clinical improvement condition.
// When a user's windowed averages satisfy it, a one-time (per cooldown)
// reward of HP points and WC tokens is granted.
type Rule struct {
	Id           *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Metric       readings.Metric     `bson:"metric" json:"metric"`
	WindowDays   int                 `bson:"windowDays" json:"windowDays"`
	MinChange    float64             `bson:"minChange" json:"minChange"`
	Direction    Direction           `bson:"direction" json:"direction"`
	TargetMin    *float64            `bson:"targetMin,omitempty" json:"targetMin,omitempty"`
	TargetMax    *float64            `bson:"targetMax,omitempty" json:"targetMax,omitempty"`
	RewardHp     int                 `bson:"rewardHp" json:"rewardHp"`
	RewardWc     int                 `bson:"rewardWc" json:"rewardWc"`
	CooldownDays int                 `bson:"cooldownDays" json:"cooldownDays"`
	Active       bool                `bson:"active" json:"active"`
	Description  *string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt    *time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    *time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (r *Rule) Cooldown() time.Duration {
	return time.Duration(r.CooldownDays) * 24 * time.Hour
}

func (r *Rule) Window() time.Duration {
	return time.Duration(r.WindowDays) * 24 * time.Hour
}

func (r *Rule) Validate() error {
	if !readings.IsValidMetric(r.Metric) {
		return fmt.Errorf("%w: unknown metric %q", httpErrors.BadRequest, r.Metric)
	}
	if r.WindowDays < 1 {
		return fmt.Errorf("%w: window days must be positive", httpErrors.BadRequest)
	}
	if r.CooldownDays < 1 {
		return fmt.Errorf("%w: cooldown days must be positive", httpErrors.BadRequest)
	}
	if r.MinChange < 0 {
		return fmt.Errorf("%w: min change cannot be negative", httpErrors.BadRequest)
	}
	if r.RewardHp < 0 || r.RewardWc < 0 {
		return fmt.Errorf("%w: reward amounts cannot be negative", httpErrors.BadRequest)
	}

	switch r.Direction {
	case DirectionIncrease, DirectionDecrease:
		if r.TargetMin != nil && r.TargetMax != nil && *r.TargetMin > *r.TargetMax {
			return fmt.Errorf("%w: target min exceeds target max", httpErrors.BadRequest)
		}
	case DirectionRange:
		if r.TargetMin == nil || r.TargetMax == nil {
			return fmt.Errorf("%w: range rules require both target bounds", httpErrors.BadRequest)
		}
		if *r.TargetMin >= *r.TargetMax {
			return fmt.Errorf("%w: target min must be below target max", httpErrors.BadRequest)
		}
	default:
		return fmt.Errorf("%w: unknown direction %q", httpErrors.BadRequest, r.Direction)
	}

	return nil
}
