package tool_test

import (
	"errors"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/medlar/pkg/tool"
)

func testSchema() *jsonschema.Schema {
	minAge := float64(0)
	maxAge := float64(120)
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"question": {Type: "string"},
			"gender":   {Type: "string", Enum: []any{"male", "female", "other"}},
			"age":      {Type: "integer", Minimum: &minAge, Maximum: &maxAge},
			"score":    {Type: "number"},
			"flag":     {Type: "boolean"},
			"symptoms": {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			"extra":    {Type: "object"},
			"loose":    {Description: "accepts anything"},
		},
		Required: []string{"question"},
	}
}

func TestValidateArgs(t *testing.T) {
	testCases := []struct {
		name string
		args map[string]any
		ok   bool
	}{
		{"valid minimal", map[string]any{"question": "hi"}, true},
		{"missing required", map[string]any{}, false},
		{"required empty string", map[string]any{"question": ""}, false},
		{"required nil", map[string]any{"question": nil}, false},
		{"wrong string type", map[string]any{"question": 42}, false},
		{"enum ok", map[string]any{"question": "hi", "gender": "female"}, true},
		{"enum violation", map[string]any{"question": "hi", "gender": "robot"}, false},
		{"integer from json", map[string]any{"question": "hi", "age": float64(30)}, true},
		{"integer from go", map[string]any{"question": "hi", "age": 30}, true},
		{"fractional integer", map[string]any{"question": "hi", "age": 30.5}, false},
		{"integer below minimum", map[string]any{"question": "hi", "age": -1}, false},
		{"integer above maximum", map[string]any{"question": "hi", "age": 140}, false},
		{"number ok", map[string]any{"question": "hi", "score": 3.7}, true},
		{"number wrong type", map[string]any{"question": "hi", "score": "high"}, false},
		{"boolean ok", map[string]any{"question": "hi", "flag": true}, true},
		{"boolean wrong type", map[string]any{"question": "hi", "flag": "yes"}, false},
		{"string array from json", map[string]any{"question": "hi", "symptoms": []any{"fever", "cough"}}, true},
		{"string array from go", map[string]any{"question": "hi", "symptoms": []string{"fever"}}, true},
		{"mixed array", map[string]any{"question": "hi", "symptoms": []any{"fever", 42}}, false},
		{"array wrong type", map[string]any{"question": "hi", "symptoms": "fever"}, false},
		{"object ok", map[string]any{"question": "hi", "extra": map[string]any{"k": "v"}}, true},
		{"object wrong type", map[string]any{"question": "hi", "extra": "not a map"}, false},
		{"untyped property accepts string", map[string]any{"question": "hi", "loose": "text"}, true},
		{"untyped property accepts map", map[string]any{"question": "hi", "loose": map[string]any{"patient_id": "P001"}}, true},
		{"undeclared argument passes", map[string]any{"question": "hi", "unknown": 123}, true},
		{"nil optional passes", map[string]any{"question": "hi", "gender": nil}, true},
	}

	schema := testSchema()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tool.ValidateArgs(schema, tc.args)
			if tc.ok {
				gt.NoError(t, err)
			} else {
				gt.Error(t, err)
				gt.True(t, errors.Is(err, tool.ErrInvalidArgument))
			}
		})
	}
}

func TestValidateArgsNilSchema(t *testing.T) {
	gt.NoError(t, tool.ValidateArgs(nil, map[string]any{"anything": 1}))
}
