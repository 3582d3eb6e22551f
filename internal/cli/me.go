package cli

import (
	"github.com/spf13/cobra"
)

func newMeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Commands for the logged-in player",
	}

	cmd.AddCommand(newMeShowCmd())
	cmd.AddCommand(newMeCompleteLevelCmd())
	cmd.AddCommand(newMeUpdateCmd())

	return cmd
}

func newMeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current player profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Get("/api/v1/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMeCompleteLevelCmd() *cobra.Command {
	var coins, seconds int64

	cmd := &cobra.Command{
		Use:   "complete-level",
		Short: "Record a completed level",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int64{
				"coins_earned": coins,
				"time_spent":   seconds,
			}
			var result Player

			if err := client.Post("/api/v1/me/complete-level", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&coins, "coins", 0, "Coins earned in the level")
	cmd.Flags().Int64Var(&seconds, "time", 0, "Time spent in seconds")

	return cmd
}

func newMeUpdateCmd() *cobra.Command {
	var name, school, gender, money string
	var level int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update fields of the current player profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only flags the user actually set go into the request body,
			// the server leaves absent fields untouched
			req := map[string]any{}
			if cmd.Flags().Changed("name") {
				req["name"] = name
			}
			if cmd.Flags().Changed("school") {
				req["school"] = school
			}
			if cmd.Flags().Changed("gender") {
				req["gender"] = gender
			}
			if cmd.Flags().Changed("money") {
				req["money"] = money
			}
			if cmd.Flags().Changed("level") {
				req["level"] = level
			}

			var result Player

			if err := client.Put("/api/v1/me", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New player name")
	cmd.Flags().StringVar(&school, "school", "", "New school")
	cmd.Flags().StringVar(&gender, "gender", "", "New gender")
	cmd.Flags().StringVar(&money, "money", "", "New money balance")
	cmd.Flags().IntVar(&level, "level", 0, "New level")

	return cmd
}
