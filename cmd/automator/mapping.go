package main

import (
	"fmt"

	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/mapping"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/output"
	"github.com/spf13/cobra"
)

var (
	definitionFile string
	mappingJSON    bool
	mappingSource  string
	mappingTarget  string
)

func newMappingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Edit the column-to-cell mappings of a definition file",
	}
	cmd.PersistentFlags().StringVarP(&definitionFile, "file", "f", defaultDefinitionFile, "Definition file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List mappings in order",
		Args:  cobra.NoArgs,
		RunE:  runMappingList,
	}
	listCmd.Flags().BoolVar(&mappingJSON, "json", false, "Print mappings as JSON")

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Append a new mapping",
		Args:  cobra.NoArgs,
		RunE:  runMappingAdd,
	}
	addCmd.Flags().StringVar(&mappingSource, "source", "", "Source column (e.g. B)")
	addCmd.Flags().StringVar(&mappingTarget, "target", "", "Target cell (e.g. C5)")

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a mapping",
		Args:  cobra.ExactArgs(1),
		RunE:  runMappingRemove,
	}

	setCmd := &cobra.Command{
		Use:   "set <id> <source|target> <value>",
		Short: "Set the source column or target cell of a mapping",
		Args:  cobra.ExactArgs(3),
		RunE:  runMappingSet,
	}

	cmd.AddCommand(listCmd, addCmd, removeCmd, setCmd)
	return cmd
}

func runMappingList(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(definitionFile)
	if err != nil {
		return err
	}

	if mappingJSON {
		jsonData, err := output.ToJSON(def.Mappings, true)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	}
	return renderMappings(cmd.OutOrStdout(), def.Mappings)
}

func runMappingAdd(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(definitionFile)
	if err != nil {
		return err
	}

	list, added := mapping.List(def.Mappings).Append(mapping.NewID)
	list = list.Update(added.ID, mapping.FieldSourceColumn, mappingSource)
	list = list.Update(added.ID, mapping.FieldTargetCell, mappingTarget)
	def.Mappings = list

	if err := mapping.WriteFile(def, definitionFile); err != nil {
		return err
	}
	log.Info("mapping added", "id", added.ID)
	fmt.Fprintln(cmd.OutOrStdout(), added.ID)
	return nil
}

func runMappingRemove(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(definitionFile)
	if err != nil {
		return err
	}

	list := mapping.List(def.Mappings)
	if !list.Contains(args[0]) {
		log.Warn("no mapping with id", "id", args[0])
	}
	def.Mappings = list.Remove(args[0])

	return mapping.WriteFile(def, definitionFile)
}

func runMappingSet(cmd *cobra.Command, args []string) error {
	field, ok := mapping.ParseField(args[1])
	if !ok {
		return fmt.Errorf("invalid field: %s (must be source or target)", args[1])
	}

	def, err := loadDefinition(definitionFile)
	if err != nil {
		return err
	}

	list := mapping.List(def.Mappings)
	if !list.Contains(args[0]) {
		log.Warn("no mapping with id", "id", args[0])
	}
	def.Mappings = list.Update(args[0], field, args[2])

	return mapping.WriteFile(def, definitionFile)
}
