// Package schema runs embedded JSON schemas over decoded YAML documents.
// Structural problems (wrong types, missing keys, malformed pairs) are
// caught here, before a typed decode; semantic and referential rules live
// with the types themselves.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Check validates doc against the schema source. what names the document
// kind in error messages. Schema errors are joined in sorted order so the
// message is deterministic regardless of traversal order.
func Check(schemaJSON string, doc any, what string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validate %s schema: %w", what, err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, schemaErr := range result.Errors() {
		errs = append(errs, schemaErr.String())
	}
	sort.Strings(errs)

	return fmt.Errorf("%s schema validation failed: %s", what, strings.Join(errs, "; "))
}
