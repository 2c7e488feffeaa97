package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"timeos/internal/app"
	"timeos/internal/config"
	"timeos/internal/tui"
)

var verbose bool

// NewRootCommand creates the root command. Running timeos without a
// subcommand opens the interactive tracker.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "timeos",
		Short: "Track work time against client companies",
		Long: `timeos is a multi-tenant time tracker: employees log work time against
client companies with an access-code login, administrators manage
employees, companies, and reports.`,
		RunE: runTrack,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewMigrateCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func newApp() (*app.App, config.Config, *slog.Logger, error) {
	logger := newLogger()
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, logger, err
	}
	application, err := app.New(logger, cfg)
	if err != nil {
		return nil, cfg, logger, err
	}
	return application, cfg, logger, nil
}

func runTrack(cmd *cobra.Command, args []string) error {
	application, _, logger, err := newApp()
	if err != nil {
		return err
	}
	defer application.Close()

	return tui.Run(application, logger)
}
