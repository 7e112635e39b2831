// Package main provides the CLI entry point for excel-pdf-automator.
package main

import (
	"log/slog"
	"os"

	"github.com/SergiySvirkov/excel-pdf-automator/internal/config"
	"github.com/SergiySvirkov/excel-pdf-automator/internal/logger"
	"github.com/spf13/cobra"
)

var (
	envFile  string
	logLevel string

	appConfig *config.Config
	log       *slog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "automator",
		Short: "Generate Excel VBA macros that export form letters to PDF",
		Long: `automator reads the structure of a spreadsheet, lets you map its columns
to cells of a template sheet, and asks a text-generation service for a VBA
macro that fills the template row by row and saves each result as a PDF.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "Path to a .env file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(
		newInspectCmd(),
		newInitCmd(),
		newMappingCmd(),
		newPromptCmd(),
		newGenerateCmd(),
		newKeyCmd(),
	)
	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logger.ParseLevel(logLevel, cfg.Log.Level)
	}
	if cfg.Log.Output == nil {
		cfg.Log.Output = cmd.ErrOrStderr()
	}

	appConfig = cfg
	log = cfg.Logger()
	return nil
}
