package cmd

import (
	"github.com/spf13/cobra"
)

var contributionsCmd = &cobra.Command{
	Use:   "contributions",
	Short: "Outputs the contribution calendar of the last year as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		contributions, err := a.aggregator.FetchContributions(ctx, token)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), contributions)
	},
}

func init() {
	rootCmd.AddCommand(contributionsCmd)
}
