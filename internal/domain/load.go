package domain

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alineos/kitcell/internal/schema"
)

//go:embed schema.json
var schemaJSON string

// ValidateRaw validates a decoded domain document against the embedded JSON
// schema. This runs before the typed decode; referential integrity is
// checked separately by New.
func ValidateRaw(doc map[string]any) error {
	return schema.Check(schemaJSON, doc, "domain")
}

// Load reads a domain file and returns the immutable environment built from
// it: structural schema check first, then typed decode, then referential
// integrity.
func Load(path string) (*Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read domain file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse domain file: %w", err)
	}
	if err := ValidateRaw(raw); err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode domain file: %w", err)
	}
	return New(doc)
}

// Encode renders a document in the canonical wire layout: top-level keys in
// contract order, positions and sizes as flow pairs. The output is
// deterministic, so encoding the same document twice yields identical bytes.
func Encode(doc Document) ([]byte, error) {
	var buf strings.Builder
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode domain document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode domain document: %w", err)
	}
	return []byte(buf.String()), nil
}
