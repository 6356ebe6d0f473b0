// Package main implements reviewctl, the operator CLI for query routing and review aspects.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Pranavupp12/review-platform/internal/app"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/observability"
	"github.com/Pranavupp12/review-platform/pkg/config"
)

var (
	version = "dev"

	// outputJSON switches every command to machine-readable output
	outputJSON bool
	// shutdownTimeout bounds draining and closing clients on exit
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reviewctl",
	Short: "Operator CLI for review search routing and aspect extraction",
	Long: `reviewctl runs the review platform's query router and aspect extractor
against the configured database and text-generation providers.

Configuration is read from the same environment variables as the API server.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		observability.InitLogger("reviewctl", cfg.Env, cfg.LogLevel)
		cmd.SetContext(withConfig(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output results as JSON")
	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(aspectsCmd)
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) (*config.Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}

// withContainer builds the full dependency graph, runs fn, then drains and closes it
func withContainer(ctx context.Context, fn func(*app.Container) error) error {
	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}

	container, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}

	runErr := fn(container)

	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := container.Close(closeCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
