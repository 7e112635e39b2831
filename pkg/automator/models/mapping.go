package models

// Mapping binds a source column to a target cell on the template sheet.
// SourceColumn and TargetCell are free text and are never validated.
type Mapping struct {
	// ID is the opaque, stable key used for update and removal.
	ID string `json:"id" yaml:"id"`
	// SourceColumn is the column reference on the source sheet (e.g. "B").
	SourceColumn string `json:"source_column" yaml:"source_column"`
	// TargetCell is the cell reference on the template sheet (e.g. "C5").
	TargetCell string `json:"target_cell" yaml:"target_cell"`
}
