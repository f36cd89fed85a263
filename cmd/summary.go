package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-dashboard/internal/usecase"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Aggregates every repository of the authenticated user and outputs as JSON",
	Long: `Fetches the authenticated user and all of their repositories, then the open
issues, open pull requests and languages of every repository, and prints the
user, the totals for all/owned/other repositories and the per-repository stats.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		withContributions, _ := cmd.Flags().GetBool("contributions")

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

		dashboard := usecase.NewDashboard(a.aggregator, a.logger)
		summary, err := dashboard.Load(ctx, token)
		if err != nil {
			return err
		}
		if summary == nil {
			return context.Canceled
		}

		report := newSummaryReport(summary)
		if withContributions {
			// The calendar is optional decoration; the summary is printed without it on failure.
			contributions, err := a.aggregator.FetchContributions(ctx, token)
			switch {
			case usecase.IsCancellation(err):
				return err
			case err != nil:
				a.logger.Printf("Failed to fetch contributions: %v", err)
			default:
				report.Contributions = contributions
			}
		}
		return writeJSON(cmd.OutOrStdout(), report)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().Bool("contributions", false, "Include the contribution calendar")
}
