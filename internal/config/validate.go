package config

import (
	_ "embed"

	"github.com/alineos/kitcell/internal/schema"
)

//go:embed schema.json
var schemaJSON string

// ValidateSettings checks the raw settings map against the embedded schema
// before it is decoded into a Config.
func ValidateSettings(settings map[string]any) error {
	return schema.Check(schemaJSON, settings, "config")
}
