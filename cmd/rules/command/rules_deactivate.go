package command

import (
	"context"
	"fmt"

	"github.com/ErwinJ1299/scout2-sub002/rules"
	"github.com/spf13/cobra"
)

var deactivateCmd = &cobra.Command{
	Use:   "deactivate [rule id]",
	Short: "Deactivate an outcome rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(rulesService rules.Service) error {
			updated, err := rulesService.SetActive(context.TODO(), args[0], false)
			if err != nil {
				return err
			}

			fmt.Printf("deactivated rule %s\n", updated.Id.Hex())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(deactivateCmd)
}
