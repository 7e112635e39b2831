package models

// Definition is the on-disk form of a configuration plus its ordered mappings.
type Definition struct {
	// Version is the definition format version.
	Version string `json:"version" yaml:"version"`
	// Workbook optionally names the spreadsheet the definition was authored against.
	Workbook string `json:"workbook,omitempty" yaml:"workbook,omitempty"`
	// Configuration holds the generation parameters.
	Configuration Configuration `json:"configuration" yaml:"configuration"`
	// Mappings holds the column-to-cell bindings in order.
	Mappings []Mapping `json:"mappings" yaml:"mappings"`
}

// Inspection is the structural preview of a loaded workbook.
type Inspection struct {
	// FileName is the uploaded file name (no path).
	FileName string `json:"file_name"`
	// SheetNames lists the workbook's sheets in order.
	SheetNames []string `json:"sheet_names"`
	// SheetName is the sheet the columns were extracted from.
	SheetName string `json:"sheet_name"`
	// Columns lists the columns of SheetName.
	Columns []ColumnDef `json:"columns"`
}
