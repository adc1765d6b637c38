package command

import (
	"context"
	"fmt"

	"github.com/ErwinJ1299/scout2-sub002/rules"
	"github.com/ErwinJ1299/scout2-sub002/store"
	"github.com/spf13/cobra"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List outcome rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(rulesService rules.Service) error {
			var list []rules.Rule
			var err error
			if listAll {
				list, err = rulesService.List(context.TODO(), store.DefaultPagination().WithLimit(100))
			} else {
				list, err = rulesService.ListActive(context.TODO())
			}
			if err != nil {
				return err
			}

			for _, rule := range list {
				fmt.Printf("%s  %-12s %-8s window=%dd minChange=%.1f hp=%d wc=%d cooldown=%dd active=%t\n",
					rule.Id.Hex(), rule.Metric, rule.Direction, rule.WindowDays,
					rule.MinChange, rule.RewardHp, rule.RewardWc, rule.CooldownDays, rule.Active)
			}
			fmt.Printf("%d rule(s)\n", len(list))
			return nil
		})
	},
}

func init() {
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include inactive rules")
	rootCmd.AddCommand(listCmd)
}
