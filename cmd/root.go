// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/github-dashboard/internal/config"
	"github.com/naka-gawa/github-dashboard/internal/gateway"
	"github.com/naka-gawa/github-dashboard/internal/usecase"
)

// exitCancelled is the conventional status for a run stopped by SIGINT.
const exitCancelled = 130

var errMissingToken = errors.New("GITHUB_TOKEN environment variable is not set")

var rootCmd = &cobra.Command{
	Use:   "github-dashboard",
	Short: "A CLI tool to summarise a GitHub account.",
	Long: `github-dashboard aggregates the authenticated user's repositories into a
summary: open issues, open pull requests and language breakdowns per
repository, and totals for the repositories the user owns and the ones
they collaborate on. Results are printed as JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	if usecase.IsCancellation(err) {
		fmt.Fprintln(os.Stderr, "Cancelled.")
		os.Exit(exitCancelled)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func init() {
	// Persistent flags are available to all commands and override the environment.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("api-url", "", "GitHub REST API root (default from GITHUB_API_URL)")
	rootCmd.PersistentFlags().Int("batch-size", 0, "Repositories fetched concurrently (default from GITHUB_DASHBOARD_BATCH_SIZE)")
	rootCmd.PersistentFlags().Duration("batch-pause", 0, "Pause between batches (default from GITHUB_DASHBOARD_BATCH_PAUSE)")
}

// app holds the dependencies a command needs.
type app struct {
	logger     *log.Logger
	tokens     oauth2.TokenSource
	aggregator *usecase.Aggregator
}

// accessToken asks the token provider for the bearer token of this run.
func (a *app) accessToken() (string, error) {
	token, err := a.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("failed to obtain token: %w", err)
	}
	if !token.Valid() {
		return "", errMissingToken
	}
	return token.AccessToken, nil
}

// newApp loads the configuration, applies flag overrides and wires the
// gateway and the aggregator.
func newApp(cmd *cobra.Command) (*app, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
	if verbose {
		logger.SetOutput(cmd.ErrOrStderr())
	}

	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("api-url") {
		cfg.APIURL, _ = cmd.Flags().GetString("api-url")
	}
	if cmd.Flags().Changed("batch-size") {
		cfg.BatchSize, _ = cmd.Flags().GetInt("batch-size")
		if err := config.ValidateBatchSize("--batch-size", cfg.BatchSize); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("batch-pause") {
		cfg.BatchPause, _ = cmd.Flags().GetDuration("batch-pause")
		if err := config.ValidateBatchPause("--batch-pause", cfg.BatchPause); err != nil {
			return nil, err
		}
	}
	if !cfg.HasToken() {
		return nil, errMissingToken
	}

	githubGateway, err := gateway.NewGitHubGateway(logger,
		gateway.WithBaseURL(cfg.APIURL),
		gateway.WithTimeout(cfg.Timeout),
		gateway.WithCache(cfg.HTTPCache),
		gateway.WithSecondaryRateLimitWait(cfg.WaitSecondaryRateLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}

	return &app{
		logger: logger,
		tokens: oauth2.ReuseTokenSource(nil, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHubToken})),
		aggregator: usecase.NewAggregator(githubGateway, logger,
			usecase.WithBatchSize(cfg.BatchSize),
			usecase.WithBatchPause(cfg.BatchPause),
		),
	}, nil
}

// signalContext derives a context that is cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
