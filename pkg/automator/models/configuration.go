package models

// Configuration holds the generation parameters that sit alongside the mappings.
// No cross-field validation is performed.
type Configuration struct {
	// SourceSheetName is the sheet rows are read from.
	SourceSheetName string `json:"source_sheet_name" yaml:"source_sheet_name"`
	// TemplateSheetName is the sheet filled in and exported per row.
	TemplateSheetName string `json:"template_sheet_name" yaml:"template_sheet_name"`
	// SavePath is the output directory for exported documents.
	SavePath string `json:"save_path" yaml:"save_path"`
	// StartRow is the first data row (1-based in the generated script). Passed through as-is.
	StartRow int `json:"start_row" yaml:"start_row"`
	// FilenameColumn is the source column whose value names each exported file.
	FilenameColumn string `json:"filename_column" yaml:"filename_column"`
}
