package command

import (
	"context"
	"fmt"

	"github.com/ErwinJ1299/scout2-sub002/pointer"
	"github.com/ErwinJ1299/scout2-sub002/readings"
	"github.com/ErwinJ1299/scout2-sub002/rules"
	"github.com/spf13/cobra"
)

var createFlags struct {
	metric       string
	direction    string
	windowDays   int
	minChange    float64
	targetMin    float64
	targetMax    float64
	rewardHp     int
	rewardWc     int
	cooldownDays int
	description  string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an outcome rule",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(rulesService rules.Service) error {
			rule := rules.Rule{
				Metric:       readings.Metric(createFlags.metric),
				Direction:    rules.Direction(createFlags.direction),
				WindowDays:   createFlags.windowDays,
				MinChange:    createFlags.minChange,
				RewardHp:     createFlags.rewardHp,
				RewardWc:     createFlags.rewardWc,
				CooldownDays: createFlags.cooldownDays,
				Active:       true,
			}
			if cmd.Flags().Changed("target-min") {
				rule.TargetMin = pointer.FromAny(createFlags.targetMin)
			}
			if cmd.Flags().Changed("target-max") {
				rule.TargetMax = pointer.FromAny(createFlags.targetMax)
			}
			if createFlags.description != "" {
				rule.Description = pointer.FromAny(createFlags.description)
			}

			created, err := rulesService.Create(context.TODO(), rule)
			if err != nil {
				return err
			}

			fmt.Printf("created rule %s\n", created.Id.Hex())
			return nil
		})
	},
}

func init() {
	createCmd.Flags().StringVar(&createFlags.metric, "metric", "", "Metric the rule evaluates")
	createCmd.Flags().StringVar(&createFlags.direction, "direction", "decrease", "Improvement direction (increase, decrease, range)")
	createCmd.Flags().IntVar(&createFlags.windowDays, "window-days", 7, "Trailing window length in days")
	createCmd.Flags().Float64Var(&createFlags.minChange, "min-change", 0, "Minimum qualifying change")
	createCmd.Flags().Float64Var(&createFlags.targetMin, "target-min", 0, "Lower target bound")
	createCmd.Flags().Float64Var(&createFlags.targetMax, "target-max", 0, "Upper target bound")
	createCmd.Flags().IntVar(&createFlags.rewardHp, "reward-hp", 0, "Health points granted")
	createCmd.Flags().IntVar(&createFlags.rewardWc, "reward-wc", 0, "Wellness coins granted")
	createCmd.Flags().IntVar(&createFlags.cooldownDays, "cooldown-days", 14, "Cooldown in days")
	createCmd.Flags().StringVar(&createFlags.description, "description", "", "Reward description shown to users")
	_ = createCmd.MarkFlagRequired("metric")
	rootCmd.AddCommand(createCmd)
}
