package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/mapping"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/models"
	"github.com/pterm/pterm"
)

// defaultDefinitionFile is used when -f is not given.
const defaultDefinitionFile = "automator.yaml"

var quickInstallSteps = []string{
	"Open your Excel file and press Alt + F11 to open the VBA editor.",
	"Go to Insert > Module.",
	"Paste the code into the new module.",
	"Press F5 or run the macro from Excel's Developer tab.",
}

func loadDefinition(path string) (*models.Definition, error) {
	def, err := mapping.LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("definition %s not found (run: automator init -o %s)", path, path)
	}
	return def, err
}

func renderColumns(w io.Writer, cols []models.ColumnDef) error {
	data := pterm.TableData{{"Column", "Header"}}
	for _, c := range cols {
		data = append(data, []string{c.Letter, c.Header})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func renderMappings(w io.Writer, ms []models.Mapping) error {
	if len(ms) == 0 {
		_, err := fmt.Fprintln(w, "No mappings defined.")
		return err
	}
	data := pterm.TableData{{"ID", "Source Column", "Target Cell"}}
	for _, m := range ms {
		data = append(data, []string{m.ID, m.SourceColumn, m.TargetCell})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func renderQuickInstall(w io.Writer) {
	items := make([]pterm.BulletListItem, 0, len(quickInstallSteps))
	for i, step := range quickInstallSteps {
		items = append(items, pterm.BulletListItem{Level: 0, Text: step, Bullet: fmt.Sprintf("%d.", i+1)})
	}
	list, err := pterm.DefaultBulletList.WithItems(items).Srender()
	if err != nil {
		return
	}
	fmt.Fprintln(w, pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Quick Install Guide")).
		WithPadding(1).
		Sprint(list))
}

// presentError prints the user-facing message for known error classes.
func presentError(w io.Writer, err error) {
	var decodeErr *automator.DecodeError
	if errors.As(err, &decodeErr) {
		fmt.Fprintln(w, pterm.Error.Sprint(decodeErr.UserMessage()))
		return
	}
	fmt.Fprintln(w, pterm.Error.Sprint(err.Error()))
}
