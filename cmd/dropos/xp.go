package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dropos/internal/domain"
)

func init() {
	rootCmd.AddCommand(xpCmd)
	xpCmd.AddCommand(xpAddCmd)
}

var xpCmd = &cobra.Command{
	Use:   "xp",
	Short: "Inspect or grant experience",
}

var xpAddCmd = &cobra.Command{
	Use:   "add AMOUNT",
	Short: "Grant experience outside of sales and missions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("amount must be a positive integer, got %q", args[0])
		}
		if err := (domain.ExperienceRequest{Amount: amount}).Validate(); err != nil {
			return err
		}

		rt, err := openRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		resp, err := rt.svc.AddExperience(cmd.Context(), amount)
		if err != nil {
			return err
		}
		for _, level := range resp.LevelUps {
			fmt.Fprintf(cmd.OutOrStdout(), "level up: %d\n", level)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "level %d (%s), %d/%d xp\n",
			resp.Stats.Level, resp.Stats.Rank, resp.Stats.Experience, resp.Stats.NextLevelExp)
		return nil
	},
}
