// Package models defines data structures shared by the automator packages.
package models

// EmptyHeader is the header label reported for a column whose first-row cell is absent or empty.
const EmptyHeader = "(Empty Header)"

// ColumnDef describes one column of a source sheet as offered for mapping suggestions.
type ColumnDef struct {
	// Letter is the spreadsheet-style column reference (A, B, ..., Z, AA, ...).
	Letter string `json:"letter"`
	// Header is the first-row cell text, or EmptyHeader.
	Header string `json:"header"`
}
