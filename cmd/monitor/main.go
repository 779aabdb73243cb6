package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wechat-monitor/internal/di"
	"wechat-monitor/internal/domain/model"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "monitor",
		Short:         "Watch WeChat public accounts for new articles",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCmd(), newOnceCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the monitor on its cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := di.InitializeApp()
			if err != nil {
				return fmt.Errorf("initialize application: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return application.Run(ctx)
		},
	}
}

func newOnceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Execute a single monitoring pass and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			monitor, err := di.InitializeMonitor()
			if err != nil {
				return fmt.Errorf("initialize monitor: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			report, runErr := monitor.Run(ctx)
			writeGitHubOutput(report)
			return runErr
		},
	}
}

// writeGitHubOutput appends the has_updates flag to the workflow output
// file when running under GitHub Actions. Best effort; local runs have no
// output file and skip it.
func writeGitHubOutput(report model.RunReport) {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	fmt.Fprintf(f, "has_updates=%t\n", report.HasUpdates)
}
