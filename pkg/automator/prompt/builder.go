// Package prompt builds the generation request sent to the code-generation service.
package prompt

import (
	"fmt"
	"strings"

	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/models"
)

const (
	// PromptVersion identifies the instruction template below.
	PromptVersion = "1.0"

	// ResponseFormatJSON asks the provider for a bare JSON object.
	ResponseFormatJSON = "json"
)

// ResponseDirective is the contract the service must honour. It is repeated
// as the system instruction of providers that support one.
const ResponseDirective = `Respond with a single JSON object with exactly two string keys, "code" and "explanation". ` +
	"Do not wrap the object in markdown code fences or add any text before or after it."

// Request is the payload handed to the generation client.
type Request struct {
	// Instruction describes the script in natural language.
	Instruction string
	// System is the response-format directive.
	System string
	// ResponseFormat is the machine format the response must use.
	ResponseFormat string
}

// Build renders the request for cfg and mappings. The output depends only on
// its arguments, including mapping order, so equal inputs give identical text.
// Every field is passed through verbatim; no reference is validated.
func Build(cfg models.Configuration, mappings []models.Mapping) Request {
	var b strings.Builder

	b.WriteString("Act as a Senior Excel VBA Developer. Write a robust, modular VBA macro based on the following specification.\n")
	b.WriteString("\n")

	b.WriteString("**Configuration:**\n")
	fmt.Fprintf(&b, "- Source Sheet Name: %s\n", quote(cfg.SourceSheetName))
	fmt.Fprintf(&b, "- Template Sheet Name: %s\n", quote(cfg.TemplateSheetName))
	fmt.Fprintf(&b, "- PDF Save Path: %s (handle a missing or present trailing path separator)\n", quote(cfg.SavePath))
	fmt.Fprintf(&b, "- Data Start Row: %d\n", cfg.StartRow)
	fmt.Fprintf(&b, "- Filename Source: Column %s (from Source Sheet)\n", quote(cfg.FilenameColumn))
	b.WriteString("\n")

	b.WriteString("**Data Mappings:**\n")
	for _, m := range mappings {
		fmt.Fprintf(&b, "- %s\n", MappingLine(m))
	}
	b.WriteString("\n")

	b.WriteString("**Requirements:**\n")
	for i, req := range requirements {
		fmt.Fprintf(&b, "%d. %s\n", i+1, req)
	}
	b.WriteString("\n")

	b.WriteString("**Output Format:**\n")
	b.WriteString("Return the response as a JSON object with two keys:\n")
	b.WriteString(`1. "code": The full VBA code string.` + "\n")
	b.WriteString(`2. "explanation": A brief, professional explanation (Markdown supported) of how the client should install and run this macro.` + "\n")
	b.WriteString("\n")
	b.WriteString("Do not use markdown formatting like ```json in the response, just return the raw JSON string.\n")

	return Request{
		Instruction:    b.String(),
		System:         ResponseDirective,
		ResponseFormat: ResponseFormatJSON,
	}
}

// MappingLine renders the instruction for a single mapping.
func MappingLine(m models.Mapping) string {
	return fmt.Sprintf("Copy Column %s from Source to Cell %s on Template", quote(m.SourceColumn), quote(m.TargetCell))
}

var requirements = []string{
	"Use 'Option Explicit'.",
	"Define variables clearly at the top.",
	"Loop from Start Row until the last populated row in the Source Sheet.",
	"Inside the loop, clear previous data in the template and map the new data for the current row.",
	"Use 'ExportAsFixedFormat' Type:=xlTypePDF to save the Template Sheet to the PDF Save Path, named from the Filename Source column.",
	"Implement robust error handling (On Error GoTo ErrorHandler). Log errors to the Immediate Window or a message box if a specific row fails, and continue with the next row or exit gracefully.",
	"Heavily comment the code so a junior developer can understand the mappings.",
	"Add a simple message box at the end confirming completion.",
}

// quote wraps s in double quotes without escaping, so Windows paths keep
// their backslashes as typed.
func quote(s string) string {
	return `"` + s + `"`
}
