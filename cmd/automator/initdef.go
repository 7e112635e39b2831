package main

import (
	"fmt"
	"os"

	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/mapping"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	initOutput   string
	initWorkbook string
	initForce    bool
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a definition file seeded with the default configuration",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}

	cmd.Flags().StringVarP(&initOutput, "output", "o", defaultDefinitionFile, "Definition file to create")
	cmd.Flags().StringVar(&initWorkbook, "workbook", "", "Workbook whose first sheet becomes the source sheet")
	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing definition file")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(initOutput); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", initOutput)
	}

	def := mapping.NewDefinition()
	if initWorkbook != "" {
		session := automator.NewSession(nil, automator.WithLogger(log))
		if err := session.LoadFile(initWorkbook); err != nil {
			presentError(cmd.ErrOrStderr(), err)
			return err
		}
		def = session.Definition()
	}

	if err := mapping.WriteFile(def, initOutput); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Wrote %s", initOutput))
	return nil
}
