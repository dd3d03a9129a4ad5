package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerRemoveCmd())
	cmd.AddCommand(newPlayerListCmd())

	return cmd
}

func newPlayerAddCmd() *cobra.Command {
	var name string
	var vote int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a player with a 1-10 skill vote",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"name": name, "vote": vote}
			var result Player

			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().IntVar(&vote, "vote", 0, "Skill vote 1-10 (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("vote")

	return cmd
}

func newPlayerRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a player (requires the admin secret)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.AdminSecret == "" {
				return fmt.Errorf("--admin-secret is required")
			}

			req := map[string]string{"credential": cfg.AdminSecret}
			path := "/api/v1/players/" + url.PathEscape(args[0])
			if err := client.Delete(path, req); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Removed player %s", args[0]))
			return nil
		},
	}

	return cmd
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			if err := client.Get("/api/v1/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
