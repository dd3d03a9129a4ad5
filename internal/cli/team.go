package cli

import (
	"github.com/spf13/cobra"
)

func newTeamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Team balancing commands",
	}

	cmd.AddCommand(newTeamsProposeCmd())

	return cmd
}

func newTeamsProposeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "propose <name>...",
		Short:   "Propose a balanced split of exactly ten players",
		Example: "  balancer-cli teams propose alice bob carol dave eve frank grace henry ivy jack",
		Args:    cobra.ExactArgs(10),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"players": args}
			var result TeamProposal

			if err := client.Post("/api/v1/teams/propose", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
