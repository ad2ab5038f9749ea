package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const metadataSchemaURL = "schema://exercise-metadata.json"

// metadataSchema describes a valid exercise definition file.
var metadataSchema = map[string]any{
	"type":     "object",
	"required": []string{"title", "difficulty"},
	"properties": map[string]any{
		"title": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"difficulty": map[string]any{
			"type": "string",
			"enum": []string{string(Beginner), string(Intermediate), string(Advanced)},
		},
		"hint": map[string]any{
			"type": "string",
		},
		"timeout_secs": map[string]any{
			"type":             "integer",
			"exclusiveMinimum": 0,
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func metadataValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, not Go maps with typed slices.
		raw, err := json.Marshal(metadataSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal metadata schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			compileErr = fmt.Errorf("parse metadata schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(metadataSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(metadataSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateMetadata checks a decoded definition document against the schema.
// doc must be a JSON-decoded value (maps, float64, strings).
func validateMetadata(doc any) error {
	schema, err := metadataValidator()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid metadata: %w", err)
	}
	return nil
}
