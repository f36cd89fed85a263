package cmd

import (
	"github.com/spf13/cobra"
)

var basicCmd = &cobra.Command{
	Use:   "basic",
	Short: "Outputs the public repository count and total stars as JSON",
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

		stats, err := a.aggregator.FetchBasicStats(ctx, token)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), stats)
	},
}

func init() {
	rootCmd.AddCommand(basicCmd)
}
