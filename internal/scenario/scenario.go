// Package scenario loads the YAML event scripts played by cmd/hsm run.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a named event sequence with a starting score.
type Scenario struct {
	Name   string   `yaml:"name"`
	Start  int      `yaml:"start"`
	Events []string `yaml:"events"`
}

// Load reads and decodes a scenario file. Unknown fields are rejected so
// typos in scripts fail loudly instead of silently dropping events.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a scenario document.
func Parse(raw []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if len(s.Events) == 0 {
		return nil, fmt.Errorf("scenario %q has no events", s.Name)
	}
	return &s, nil
}
