package outcomes_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ErwinJ1299/scout2-sub002/outcomes"
	"github.com/ErwinJ1299/scout2-sub002/pointer"
	"github.com/ErwinJ1299/scout2-sub002/rules"
	rulesTest "github.com/ErwinJ1299/scout2-sub002/rules/test"
)

var _ = Describe("Evaluate", func() {
	var rule rules.Rule
	var now time.Time

	BeforeEach(func() {
		now = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
		rule = rulesTest.RandomRule()
		rule.Direction = rules.DirectionDecrease
		rule.MinChange = 10
		rule.CooldownDays = 14
		rule.TargetMin = nil
		rule.TargetMax = nil
	})

	It("fails closed when the current average is missing", func() {
		result := outcomes.Evaluate(rule, nil, pointer.FromAny(160.0), nil, now)
		Expect(result.Eligible).To(BeFalse())
		Expect(result.Reason).To(Equal(outcomes.ReasonInsufficientData))
	})

	It("fails closed when the previous average is missing", func() {
		result := outcomes.Evaluate(rule, pointer.FromAny(145.0), nil, nil, now)
		Expect(result.Eligible).To(BeFalse())
		Expect(result.Reason).To(Equal(outcomes.ReasonInsufficientData))
	})

	It("is not eligible during the cooldown regardless of improvement", func() {
		lastRewardAt := now.Add(-24 * time.Hour)
		result := outcomes.Evaluate(rule, pointer.FromAny(100.0), pointer.FromAny(200.0), &lastRewardAt, now)
		Expect(result.Eligible).To(BeFalse())
		Expect(result.Reason).To(Equal(outcomes.ReasonCooldownActive))
	})

	It("is eligible once the cooldown has elapsed", func() {
		lastRewardAt := now.Add(-15 * 24 * time.Hour)
		result := outcomes.Evaluate(rule, pointer.FromAny(145.0), pointer.FromAny(160.0), &lastRewardAt, now)
		Expect(result.Eligible).To(BeTrue())
	})

	Context("with direction=decrease", func() {
		It("computes the improvement as previous minus current", func() {
			result := outcomes.Evaluate(rule, pointer.FromAny(145.0), pointer.FromAny(160.0), nil, now)
			Expect(result.Eligible).To(BeTrue())
			Expect(result.ImprovementValue).To(HaveValue(Equal(15.0)))
		})

		It("treats an improvement exactly at the minimum change as eligible", func() {
			result := outcomes.Evaluate(rule, pointer.FromAny(150.0), pointer.FromAny(160.0), nil, now)
			Expect(result.Eligible).To(BeTrue())
			Expect(result.ImprovementValue).To(HaveValue(Equal(10.0)))
		})

		It("is not eligible just below the minimum change", func() {
			result := outcomes.Evaluate(rule, pointer.FromAny(151.0), pointer.FromAny(160.0), nil, now)
			Expect(result.Eligible).To(BeFalse())
			Expect(result.Reason).To(Equal(outcomes.ReasonChangeBelowMinimum))
		})

		It("rejects a qualifying decrease that overshoots the target minimum", func() {
			rule.TargetMin = pointer.FromAny(120.0)
			result := outcomes.Evaluate(rule, pointer.FromAny(110.0), pointer.FromAny(160.0), nil, now)
			Expect(result.Eligible).To(BeFalse())
			Expect(result.Reason).To(Equal(outcomes.ReasonOutsideTargetRange))
		})

		It("accepts a qualifying decrease under the target maximum", func() {
			rule.TargetMax = pointer.FromAny(150.0)
			result := outcomes.Evaluate(rule, pointer.FromAny(145.0), pointer.FromAny(160.0), nil, now)
			Expect(result.Eligible).To(BeTrue())
		})
	})

	Context("with direction=increase", func() {
		BeforeEach(func() {
			rule.Direction = rules.DirectionIncrease
			rule.MinChange = 1000
		})

		It("computes the improvement as current minus previous", func() {
			result := outcomes.Evaluate(rule, pointer.FromAny(6000.0), pointer.FromAny(4500.0), nil, now)
			Expect(result.Eligible).To(BeTrue())
			Expect(result.ImprovementValue).To(HaveValue(Equal(1500.0)))
		})

		It("is not eligible when the metric moved the wrong way", func() {
			result := outcomes.Evaluate(rule, pointer.FromAny(4000.0), pointer.FromAny(5000.0), nil, now)
			Expect(result.Eligible).To(BeFalse())
			Expect(result.Reason).To(Equal(outcomes.ReasonChangeBelowMinimum))
		})
	})

	Context("with direction=range", func() {
		BeforeEach(func() {
			rule.Direction = rules.DirectionRange
			rule.MinChange = 0
			rule.TargetMin = pointer.FromAny(90.0)
			rule.TargetMax = pointer.FromAny(130.0)
		})

		It("is eligible when the average newly entered the range", func() {
			result := outcomes.Evaluate(rule, pointer.FromAny(125.0), pointer.FromAny(140.0), nil, now)
			Expect(result.Eligible).To(BeTrue())
			Expect(result.ImprovementValue).To(HaveValue(Equal(15.0)))
		})

		It("is not eligible when the average was already in range", func() {
			result := outcomes.Evaluate(rule, pointer.FromAny(120.0), pointer.FromAny(125.0), nil, now)
			Expect(result.Eligible).To(BeFalse())
			Expect(result.Reason).To(Equal(outcomes.ReasonNotEnteredRange))
		})

		It("is not eligible when the average is still outside the range", func() {
			result := outcomes.Evaluate(rule, pointer.FromAny(135.0), pointer.FromAny(150.0), nil, now)
			Expect(result.Eligible).To(BeFalse())
			Expect(result.Reason).To(Equal(outcomes.ReasonNotEnteredRange))
		})

		It("accepts entry from below the range", func() {
			result := outcomes.Evaluate(rule, pointer.FromAny(95.0), pointer.FromAny(85.0), nil, now)
			Expect(result.Eligible).To(BeTrue())
			Expect(result.ImprovementValue).To(HaveValue(Equal(10.0)))
		})
	})

	It("carries the rule's reward amounts on the result", func() {
		result := outcomes.Evaluate(rule, pointer.FromAny(145.0), pointer.FromAny(160.0), nil, now)
		Expect(result.RewardHp).To(Equal(rule.RewardHp))
		Expect(result.RewardWc).To(Equal(rule.RewardWc))
	})
})
