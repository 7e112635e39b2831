package generation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/models"
)

var resultKeys = []string{"code", "explanation"}

// ParseResult decodes raw response text as a JSON object with exactly the
// string keys "code" and "explanation". No repair is attempted: fenced,
// truncated, or extended objects are rejected.
func ParseResult(text string) (models.GenerationResult, error) {
	if strings.TrimSpace(text) == "" {
		return models.GenerationResult{}, errors.New("empty response")
	}

	dec := json.NewDecoder(strings.NewReader(text))
	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return models.GenerationResult{}, fmt.Errorf("response is not a JSON object: %w", err)
	}
	if fields == nil {
		return models.GenerationResult{}, errors.New("response is not a JSON object")
	}
	if dec.More() {
		return models.GenerationResult{}, errors.New("trailing data after JSON object")
	}

	if len(fields) != len(resultKeys) {
		return models.GenerationResult{}, fmt.Errorf("expected keys %v, got %d keys", resultKeys, len(fields))
	}

	values := make(map[string]string, len(resultKeys))
	for _, key := range resultKeys {
		raw, ok := fields[key]
		if !ok {
			return models.GenerationResult{}, fmt.Errorf("missing key %q", key)
		}
		var v string
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return models.GenerationResult{}, fmt.Errorf("key %q is null", key)
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return models.GenerationResult{}, fmt.Errorf("key %q is not a string: %w", key, err)
		}
		values[key] = v
	}

	return models.GenerationResult{
		Code:        values["code"],
		Explanation: values["explanation"],
	}, nil
}
