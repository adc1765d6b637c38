package outcomes

import (
	"time"

	"github.com/ErwinJ1299/scout2-sub002/pointer"
	"github.com/ErwinJ1299/scout2-sub002/rules"
)

// Evaluate produces the eligibility verdict for a single rule from the
// already-computed window averages. It is pure: it never reads or writes a
// store, so the caller owns fetching readings and the last grant time.
//
// The cooldown is checked before the direction verdict so a user cannot
// double-dip on a large improvement while a prior grant is still cooling
// down.
func Evaluate(rule rules.Rule, currentAvg *float64, previousAvg *float64, lastRewardAt *time.Time, now time.Time) Result {
	result := Result{
		Metric:   rule.Metric,
		RewardHp: rule.RewardHp,
		RewardWc: rule.RewardWc,
	}
	if rule.Id != nil {
		result.RuleId = rule.Id.Hex()
	}

	if currentAvg == nil || previousAvg == nil {
		result.Reason = ReasonInsufficientData
		return result
	}
	result.CurrentAverage = currentAvg
	result.PreviousAverage = previousAvg

	if lastRewardAt != nil && now.Sub(*lastRewardAt) < rule.Cooldown() {
		result.Reason = ReasonCooldownActive
		return result
	}

	current := *currentAvg
	previous := *previousAvg

	switch rule.Direction {
	case rules.DirectionDecrease:
		improvement := previous - current
		result.ImprovementValue = pointer.FromAny(improvement)
		if improvement < rule.MinChange {
			result.Reason = ReasonChangeBelowMinimum
			return result
		}
		if !withinBounds(current, rule.TargetMin, rule.TargetMax) {
			result.Reason = ReasonOutsideTargetRange
			return result
		}

	case rules.DirectionIncrease:
		improvement := current - previous
		result.ImprovementValue = pointer.FromAny(improvement)
		if improvement < rule.MinChange {
			result.Reason = ReasonChangeBelowMinimum
			return result
		}
		if !withinBounds(current, rule.TargetMin, rule.TargetMax) {
			result.Reason = ReasonOutsideTargetRange
			return result
		}

	case rules.DirectionRange:
		entered := withinBounds(current, rule.TargetMin, rule.TargetMax) &&
			!withinBounds(previous, rule.TargetMin, rule.TargetMax)
		// Improvement is the distance moved while entering the range.
		improvement := current - previous
		if improvement < 0 {
			improvement = -improvement
		}
		result.ImprovementValue = pointer.FromAny(improvement)
		if !entered {
			result.Reason = ReasonNotEnteredRange
			return result
		}

	default:
		result.Reason = ReasonUnknownDirection
		return result
	}

	result.Eligible = true
	result.Reason = ""
	return result
}

func withinBounds(value float64, min *float64, max *float64) bool {
	if min != nil && value < *min {
		return false
	}
	if max != nil && value > *max {
		return false
	}
	return true
}
