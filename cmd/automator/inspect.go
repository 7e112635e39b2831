package main

import (
	"fmt"
	"os"

	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/models"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/output"
	"github.com/spf13/cobra"
)

var (
	inspectSheet  string
	inspectPretty bool
	inspectTable  bool
	inspectOutput string
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [input.xlsx|input.csv]",
		Short: "List the sheets and header columns of a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	cmd.Flags().StringVar(&inspectSheet, "sheet", "", "Sheet to read headers from (default: first sheet)")
	cmd.Flags().BoolVar(&inspectPretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&inspectTable, "table", false, "Render columns as a table instead of JSON")
	cmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	session := automator.NewSession(nil, automator.WithLogger(log))
	if err := session.LoadFile(args[0]); err != nil {
		presentError(cmd.ErrOrStderr(), err)
		return err
	}

	if inspectSheet != "" {
		session.UpdateConfiguration(func(c *models.Configuration) { c.SourceSheetName = inspectSheet })
		if len(session.Columns()) == 0 {
			log.Warn("sheet has no columns or does not exist", "sheet", inspectSheet)
		}
	}

	inspection := session.Inspection()

	if inspectTable {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: sheet %q of %v\n", inspection.FileName, inspection.SheetName, inspection.SheetNames)
		return renderColumns(cmd.OutOrStdout(), inspection.Columns)
	}

	jsonData, err := output.InspectionToJSON(&inspection, inspectPretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if inspectOutput != "" {
		if err := os.WriteFile(inspectOutput, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}
