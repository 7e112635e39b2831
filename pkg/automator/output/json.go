// Package output serializes inspection results and generated artifacts.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/models"
)

// ToJSON encodes v as JSON. HTML characters are not escaped, so sheet and
// header text round-trips exactly.
func ToJSON(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// InspectionToJSON encodes an inspection result.
func InspectionToJSON(in *models.Inspection, pretty bool) ([]byte, error) {
	return ToJSON(in, pretty)
}

// ResultToJSON encodes a generation result in the {"code","explanation"} shape.
func ResultToJSON(r *models.GenerationResult, pretty bool) ([]byte, error) {
	return ToJSON(r, pretty)
}

// ModuleFileName is the conventional file name for exported VBA code.
const ModuleFileName = "Module1.bas"

// WriteModule writes generated VBA code to path with CRLF line endings, as the
// VBA editor's import expects. A directory path receives Module1.bas.
func WriteModule(path, code string) (string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, ModuleFileName)
	}

	normalized := strings.ReplaceAll(code, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\n", "\r\n")
	if !strings.HasSuffix(normalized, "\r\n") {
		normalized += "\r\n"
	}

	if err := os.WriteFile(path, []byte(normalized), 0644); err != nil {
		return "", fmt.Errorf("failed to write module: %w", err)
	}
	return path, nil
}
