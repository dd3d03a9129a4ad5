package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game lifecycle commands",
	}

	cmd.AddCommand(newGameConfirmCmd())
	cmd.AddCommand(newGameScoreCmd())
	cmd.AddCommand(newGameDeleteCmd())
	cmd.AddCommand(newGameManualCmd())
	cmd.AddCommand(newGamePendingCmd())
	cmd.AddCommand(newGameHistoryCmd())

	return cmd
}

func newGameConfirmCmd() *cobra.Command {
	var team1, team2 []string

	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Confirm two line-ups into a pending game",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"team1": team1, "team2": team2}
			var result Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&team1, "team1", nil, "Team 1 players, comma separated (required)")
	cmd.Flags().StringSliceVar(&team2, "team2", nil, "Team 2 players, comma separated (required)")
	_ = cmd.MarkFlagRequired("team1")
	_ = cmd.MarkFlagRequired("team2")

	return cmd
}

func newGameScoreCmd() *cobra.Command {
	var score1, score2 int

	cmd := &cobra.Command{
		Use:   "score <game-id>",
		Short: "Record the final score of a pending game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"score1": score1, "score2": score2}
			var result MatchResult

			path := fmt.Sprintf("/api/v1/games/%s/score", args[0])
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&score1, "score1", 0, "Team 1 goals (required)")
	cmd.Flags().IntVar(&score2, "score2", 0, "Team 2 goals (required)")
	_ = cmd.MarkFlagRequired("score1")
	_ = cmd.MarkFlagRequired("score2")

	return cmd
}

func newGameDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <game-id>",
		Short: "Discard a pending game (requires the admin secret)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.AdminSecret == "" {
				return fmt.Errorf("--admin-secret is required")
			}

			req := map[string]string{"credential": cfg.AdminSecret}
			if err := client.Delete("/api/v1/games/"+args[0], req); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Deleted game %s", args[0]))
			return nil
		},
	}

	return cmd
}

func newGameManualCmd() *cobra.Command {
	var team1, team2 []string
	var score1, score2 int

	cmd := &cobra.Command{
		Use:   "manual",
		Short: "Record an already-played game in one step",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"team1":  team1,
				"team2":  team2,
				"score1": score1,
				"score2": score2,
			}
			var result MatchResult

			if err := client.Post("/api/v1/games/manual", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&team1, "team1", nil, "Team 1 players, comma separated (required)")
	cmd.Flags().StringSliceVar(&team2, "team2", nil, "Team 2 players, comma separated (required)")
	cmd.Flags().IntVar(&score1, "score1", 0, "Team 1 goals (required)")
	cmd.Flags().IntVar(&score2, "score2", 0, "Team 2 goals (required)")
	_ = cmd.MarkFlagRequired("team1")
	_ = cmd.MarkFlagRequired("team2")
	_ = cmd.MarkFlagRequired("score1")
	_ = cmd.MarkFlagRequired("score2")

	return cmd
}

func newGamePendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List pending games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game

			if err := client.Get("/api/v1/games/pending", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List completed games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game

			if err := client.Get("/api/v1/games/history", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
