package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport"
	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/metrics"
	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/models"
	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/output"
	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/server"
)

func newPreviewCmd() *cobra.Command {
	var (
		outputPath string
		pretty     bool
		table      bool
	)

	cmd := &cobra.Command{
		Use:   "preview [input.xlsx]",
		Short: "Parse a workbook and print the import batch as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			result, _, err := parseInput(a, args[0])
			if err != nil {
				return err
			}

			if table {
				return output.WritePreview(cmd.OutOrStdout(), result)
			}

			jsonData, err := output.ToJSON(result, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}

			if outputPath != "" {
				if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&table, "table", false, "Print a preview table instead of JSON")

	return cmd
}

func newReconcileCmd() *cobra.Command {
	var autoProvision bool

	cmd := &cobra.Command{
		Use:   "reconcile [input.xlsx]",
		Short: "Register the workbook's missing suppliers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			result, _, err := parseInput(a, args[0])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("auto-provision") {
				autoProvision = a.cfg.Import.AutoProvision
			}
			report := a.pipeline.Reconcile(cmd.Context(), result, autoProvision)
			return output.WriteLines(cmd.OutOrStdout(), report.Lines())
		},
	}

	cmd.Flags().BoolVar(&autoProvision, "auto-provision", true, "Create suppliers missing from the registry")

	return cmd
}

func newSubmitCmd() *cobra.Command {
	var (
		reconcileFirst bool
		autoProvision  bool
	)

	cmd := &cobra.Command{
		Use:   "submit [input.xlsx]",
		Short: "Upload the workbook to the backend import endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			result, data, err := parseInput(a, args[0])
			if err != nil {
				return err
			}

			if reconcileFirst {
				if !cmd.Flags().Changed("auto-provision") {
					autoProvision = a.cfg.Import.AutoProvision
				}
				report := a.pipeline.Reconcile(cmd.Context(), result, autoProvision)
				if err := output.WriteLines(cmd.OutOrStdout(), report.Lines()); err != nil {
					return err
				}
			}

			if err := a.pipeline.Submit(cmd.Context(), filepath.Base(args[0]), data); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), procimport.SubmitFailureMessage)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), procimport.SubmitSuccessMessage)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reconcileFirst, "reconcile", false, "Reconcile suppliers before submitting")
	cmd.Flags().BoolVar(&autoProvision, "auto-provision", true, "Create suppliers missing from the registry")

	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the import endpoints over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
				return fmt.Errorf("failed to register metrics: %w", err)
			}

			srv := server.New(a.pipeline, a.cfg.HTTP, a.cfg.Import.AutoProvision, a.logger)
			return srv.Run(cmd.Context())
		},
	}
}

// parseInput reads and previews the workbook at path. The file's original
// bytes are returned alongside the batch for submission. Parse failures are
// reported to stderr with the user-facing message.
func parseInput(a *app, path string) (*models.ImportResult, []byte, error) {
	data, err := procimport.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, procimport.UserMessage(err))
		return nil, nil, err
	}

	result, err := a.pipeline.Preview(data, filepath.Base(path))
	if err != nil {
		fmt.Fprintln(os.Stderr, procimport.UserMessage(err))
		return nil, nil, err
	}

	for _, warning := range result.Warnings {
		fmt.Fprintln(os.Stderr, warning)
	}
	return result, data, nil
}
