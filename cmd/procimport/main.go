// Package main provides the CLI entry point for procimport.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	logLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "procimport",
		Short: "Import procurement processes from Excel workbooks",
		Long: `procimport reads a process import workbook (IMPORTACAO and FORNECEDORES
sheets), previews the grouped processes, registers missing suppliers and
submits the workbook to the procurement backend.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default: environment only)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override: debug, info, warn, error")

	rootCmd.AddCommand(
		newPreviewCmd(),
		newReconcileCmd(),
		newSubmitCmd(),
		newServeCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// setup loads configuration and wires the application.
func setup(ctx context.Context) (*app, error) {
	a, err := newApp(ctx, configPath, logLevel)
	if err != nil {
		return nil, fmt.Errorf("startup failed: %w", err)
	}
	return a, nil
}

func syncLogger(logger *zap.Logger) {
	_ = logger.Sync()
}
