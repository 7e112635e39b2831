package mapping

import (
	"bytes"
	"fmt"
	"os"

	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/models"
	"gopkg.in/yaml.v3"
)

// DefinitionVersion is the current definition file format version.
const DefinitionVersion = "1"

// NewDefinition returns a definition seeded with the default configuration and mappings.
func NewDefinition() *models.Definition {
	return &models.Definition{
		Version:       DefinitionVersion,
		Configuration: DefaultConfiguration(),
		Mappings:      DefaultList(),
	}
}

// LoadFile loads and parses a YAML definition file from the given path.
func LoadFile(path string) (*models.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Definition. Mappings without an id receive a
// fresh one; a repeated id is an error.
func Parse(data []byte) (*models.Definition, error) {
	var def models.Definition

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to parse definition YAML: %w", err)
	}

	if def.Version == "" {
		def.Version = DefinitionVersion
	}

	seen := make(map[string]bool, len(def.Mappings))
	for i := range def.Mappings {
		m := &def.Mappings[i]
		if m.ID == "" {
			continue
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("duplicate mapping id %q", m.ID)
		}
		seen[m.ID] = true
	}
	for i := range def.Mappings {
		m := &def.Mappings[i]
		if m.ID != "" {
			continue
		}
		for m.ID == "" || seen[m.ID] {
			m.ID = NewID()
		}
		seen[m.ID] = true
	}

	return &def, nil
}

// Marshal serializes a Definition to YAML.
func Marshal(def *models.Definition) ([]byte, error) {
	return yaml.Marshal(def)
}

// WriteFile writes a Definition to the given path.
func WriteFile(def *models.Definition, path string) error {
	data, err := Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write definition file %s: %w", path, err)
	}

	return nil
}
