package jsonx

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// KeyCheck is the result of a required-key validation.
type KeyCheck struct {
	Valid       bool
	MissingKeys []string
	Err         error
}

// ValidateRequiredKeys checks that value is a non-array JSON object and
// that every required key is present. Missing keys are collected rather
// than failing on the first one so callers can log the full list.
func ValidateRequiredKeys(value any, required []string) KeyCheck {
	obj, ok := value.(map[string]any)
	if !ok {
		return KeyCheck{Valid: false, Err: fmt.Errorf("value is %T, not a JSON object", value)}
	}

	var missing []string
	for _, key := range required {
		if _, present := obj[key]; !present {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return KeyCheck{Valid: false, MissingKeys: missing}
	}
	return KeyCheck{Valid: true}
}

// ValidateSchema validates an extracted value against a full JSON Schema
// document. Used by category builders that publish a response schema for
// their analysis payloads.
func ValidateSchema(value any, schemaRaw json.RawMessage) error {
	if len(schemaRaw) == 0 {
		return nil
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(schemaRaw)); err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("value does not match schema: %w", err)
	}
	return nil
}
