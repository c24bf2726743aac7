package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/rcc/internal/compiler"
	"github.com/roach88/rcc/internal/ir"
)

// IsScenarioFile reports whether path has a scenario extension.
func IsScenarioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json", ".cue":
		return true
	}
	return false
}

// LoadScenario reads a scenario from a YAML, JSON or CUE file and validates
// it against the scenario schema and graph rules.
func LoadScenario(path string) (*ir.Scenario, error) {
	c, err := compiler.New()
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".cue") {
		return c.CompileFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	s, err := decodeScenario(path, data)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return s, nil
}

func decodeScenario(path string, data []byte) (*ir.Scenario, error) {
	var s ir.Scenario
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported scenario extension %q", filepath.Ext(path))
	}
	return &s, nil
}
