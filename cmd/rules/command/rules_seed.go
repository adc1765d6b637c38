package command

import (
	"context"
	"fmt"

	"github.com/ErwinJ1299/scout2-sub002/pointer"
	"github.com/ErwinJ1299/scout2-sub002/readings"
	"github.com/ErwinJ1299/scout2-sub002/rules"
	"github.com/spf13/cobra"
)

func starterRules() []rules.Rule {
	return []rules.Rule{
		{
			Metric:       readings.MetricGlucose,
			Direction:    rules.DirectionDecrease,
			WindowDays:   7,
			MinChange:    10,
			RewardHp:     40,
			RewardWc:     1,
			CooldownDays: 14,
			Active:       true,
			Description:  pointer.FromAny("Lowered your average glucose for a week"),
		},
		{
			Metric:       readings.MetricBpSystolic,
			Direction:    rules.DirectionRange,
			WindowDays:   7,
			TargetMin:    pointer.FromAny(90.0),
			TargetMax:    pointer.FromAny(130.0),
			RewardHp:     50,
			RewardWc:     2,
			CooldownDays: 30,
			Active:       true,
			Description:  pointer.FromAny("Brought your blood pressure into the healthy range"),
		},
		{
			Metric:       readings.MetricSteps,
			Direction:    rules.DirectionIncrease,
			WindowDays:   7,
			MinChange:    1000,
			RewardHp:     25,
			RewardWc:     1,
			CooldownDays: 7,
			Active:       true,
			Description:  pointer.FromAny("Raised your daily step average by 1000"),
		},
	}
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the starter outcome rule set",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(rulesService rules.Service) error {
			for _, rule := range starterRules() {
				created, err := rulesService.Create(context.TODO(), rule)
				if err != nil {
					return err
				}
				fmt.Printf("created rule %s (%s %s)\n", created.Id.Hex(), created.Direction, created.Metric)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
