package tool

import (
	"fmt"
	"math"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/m-mizutani/goerr/v2"
)

// ValidateArgs checks an argument bag against a tool's input schema before
// dispatch: required fields, primitive types, enum membership and numeric
// range. It runs uniformly for every tool, replacing best-effort access
// with defaults.
func ValidateArgs(schema *jsonschema.Schema, args map[string]any) error {
	if schema == nil {
		return nil
	}

	for _, name := range schema.Required {
		if v, ok := args[name]; !ok || v == nil || v == "" {
			return goerr.Wrap(ErrInvalidArgument,
				fmt.Sprintf("missing required field '%s'", name))
		}
	}

	for name, value := range args {
		prop, ok := schema.Properties[name]
		if !ok || value == nil {
			// Undeclared arguments pass through untouched
			continue
		}
		if err := validateValue(name, prop, value); err != nil {
			return err
		}
	}

	return nil
}

func validateValue(name string, prop *jsonschema.Schema, value any) error {
	switch prop.Type {
	case "string":
		s, ok := value.(string)
		if !ok {
			return invalidType(name, "string", value)
		}
		if len(prop.Enum) > 0 && !enumContains(prop.Enum, s) {
			return goerr.Wrap(ErrInvalidArgument,
				fmt.Sprintf("field '%s' must be one of %v", name, prop.Enum))
		}

	case "integer":
		n, ok := asNumber(value)
		if !ok || n != math.Trunc(n) {
			return invalidType(name, "integer", value)
		}
		return checkRange(name, prop, n)

	case "number":
		n, ok := asNumber(value)
		if !ok {
			return invalidType(name, "number", value)
		}
		return checkRange(name, prop, n)

	case "boolean":
		if _, ok := value.(bool); !ok {
			return invalidType(name, "boolean", value)
		}

	case "array":
		items, ok := value.([]any)
		if !ok {
			if _, isStrings := value.([]string); isStrings {
				return nil
			}
			return invalidType(name, "array", value)
		}
		if prop.Items != nil && prop.Items.Type == "string" {
			for _, item := range items {
				if _, ok := item.(string); !ok {
					return invalidType(name, "array of strings", value)
				}
			}
		}

	case "object":
		if _, ok := value.(map[string]any); !ok {
			return invalidType(name, "object", value)
		}
	}

	return nil
}

func invalidType(name, want string, got any) error {
	return goerr.Wrap(ErrInvalidArgument,
		fmt.Sprintf("field '%s' must be a %s", name, want),
		goerr.V("value", got))
}

func checkRange(name string, prop *jsonschema.Schema, n float64) error {
	if prop.Minimum != nil && n < *prop.Minimum {
		return goerr.Wrap(ErrInvalidArgument,
			fmt.Sprintf("field '%s' must be at least %v", name, *prop.Minimum))
	}
	if prop.Maximum != nil && n > *prop.Maximum {
		return goerr.Wrap(ErrInvalidArgument,
			fmt.Sprintf("field '%s' must be at most %v", name, *prop.Maximum))
	}
	return nil
}

// asNumber accepts the numeric encodings that JSON decoding and direct Go
// callers produce
func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func enumContains(enum []any, s string) bool {
	for _, e := range enum {
		if es, ok := e.(string); ok && es == s {
			return true
		}
	}
	return false
}
