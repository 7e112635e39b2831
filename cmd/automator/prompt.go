package main

import (
	"fmt"

	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/prompt"
	"github.com/spf13/cobra"
)

var promptWithSystem bool

func newPromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the generation request for a definition file",
		Args:  cobra.NoArgs,
		RunE:  runPrompt,
	}

	cmd.Flags().StringVarP(&definitionFile, "file", "f", defaultDefinitionFile, "Definition file")
	cmd.Flags().BoolVar(&promptWithSystem, "system", false, "Also print the system instruction")
	return cmd
}

func runPrompt(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(definitionFile)
	if err != nil {
		return err
	}

	req := prompt.Build(def.Configuration, def.Mappings)
	if promptWithSystem {
		fmt.Fprintln(cmd.OutOrStdout(), req.System)
		fmt.Fprintln(cmd.OutOrStdout())
	}
	fmt.Fprintln(cmd.OutOrStdout(), req.Instruction)
	return nil
}
