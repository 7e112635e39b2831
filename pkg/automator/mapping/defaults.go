package mapping

import "github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/models"

// DefaultConfiguration returns the example configuration a new session starts with.
func DefaultConfiguration() models.Configuration {
	return models.Configuration{
		SourceSheetName:   "Data Source",
		TemplateSheetName: "Form Letter",
		SavePath:          `C:\Users\Client\Documents\Generated PDFs\`,
		StartRow:          2,
		FilenameColumn:    "A",
	}
}

// DefaultList returns the example mappings a new session starts with.
func DefaultList() List {
	return List{
		{ID: "1", SourceColumn: "B", TargetCell: "C5"},
		{ID: "2", SourceColumn: "C", TargetCell: "C6"},
	}
}
