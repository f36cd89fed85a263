package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-dashboard/internal/usecase"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Outputs per-repository stats as JSON",
	Long: `Aggregates the authenticated user's repositories and prints the stats of the
selected ones. --owner selects all repositories, the ones the user owns
(mine) or the ones owned by someone else (other).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetString("owner")
		publicOnly, _ := cmd.Flags().GetBool("public-only")
		topLanguages, _ := cmd.Flags().GetInt("top-languages")
		if owner != ownerAll && owner != ownerMine && owner != ownerOther {
			return fmt.Errorf("invalid --owner %q: must be one of %s, %s, %s", owner, ownerAll, ownerMine, ownerOther)
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		token, err := a.accessToken()
		if err != nil {
			return err
		}
		ctx, stop := signalContext(cmd)
		defer stop()

		summary, err := usecase.NewDashboard(a.aggregator, a.logger).Load(ctx, token)
		if err != nil {
			return err
		}
		if summary == nil {
			return context.Canceled
		}

		return writeJSON(cmd.OutOrStdout(), selectRepositories(summary, owner, publicOnly, topLanguages))
	},
}

func init() {
	rootCmd.AddCommand(reposCmd)
	reposCmd.Flags().String("owner", ownerAll, "Which repositories to list: all, mine or other")
	reposCmd.Flags().Bool("public-only", false, "List public repositories only")
	reposCmd.Flags().Int("top-languages", 0, "Keep only the N largest languages per repository (0 keeps all)")
}
