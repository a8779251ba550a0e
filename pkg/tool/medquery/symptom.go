package medquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/medlar/pkg/adapter"
	"github.com/m-mizutani/medlar/pkg/model"
	"github.com/m-mizutani/medlar/pkg/tool"
)

// SymptomChecker analyzes symptom lists and returns general guidance, not
// a diagnosis
type SymptomChecker struct {
	llm  adapter.LLM
	desc *model.ToolDescriptor
}

func NewSymptomChecker(llm adapter.LLM) *SymptomChecker {
	minAge, maxAge := 0.0, 120.0

	return &SymptomChecker{
		llm: llm,
		desc: &model.ToolDescriptor{
			Name:         "symptom_checker",
			Description:  "Analyze symptoms and provide general guidance (not a diagnosis)",
			Category:     model.CategoryGeneral,
			Enabled:      true,
			RateLimit:    15,
			RequiresAuth: true,
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"symptoms": {
						Type:        "array",
						Items:       &jsonschema.Schema{Type: "string"},
						Description: "List of symptoms to analyze",
					},
					"age": {
						Type:        "integer",
						Description: "Patient age (optional)",
						Minimum:     &minAge,
						Maximum:     &maxAge,
					},
					"gender": {
						Type:        "string",
						Description: "Patient gender (optional)",
						Enum:        []any{"male", "female", "other"},
					},
				},
				Required: []string{"symptoms"},
			},
		},
	}
}

func (x *SymptomChecker) Descriptor() *model.ToolDescriptor {
	return x.desc
}

func (x *SymptomChecker) Execute(ctx context.Context, args map[string]any) (string, error) {
	symptoms := stringList(args["symptoms"])
	if len(symptoms) == 0 {
		return "Error: No symptoms provided", nil
	}

	var sb strings.Builder
	sb.WriteString(promptPrefix)
	sb.WriteString("Please analyze the following symptoms and provide general guidance:\n\n")
	sb.WriteString("Symptoms: " + strings.Join(symptoms, ", ") + "\n")

	if age, ok := args["age"]; ok {
		sb.WriteString(fmt.Sprintf("Age: %v\n", age))
	}
	if gender, ok := args["gender"].(string); ok && gender != "" {
		sb.WriteString("Gender: " + gender + "\n")
	}

	sb.WriteString("\nProvide:\n")
	sb.WriteString("1. Possible general categories these symptoms might fall under\n")
	sb.WriteString("2. When to seek medical attention\n")
	sb.WriteString("3. General self-care measures (if appropriate)\n")
	sb.WriteString("4. Red flags that require immediate medical attention\n")

	text, err := x.llm.Generate(ctx, sb.String())
	if err != nil {
		return "", goerr.Wrap(tool.ErrUpstream, "symptom analysis failed", goerr.V("cause", err))
	}
	return text, nil
}

// stringList accepts both []string and the []any that JSON decoding yields
func stringList(v any) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []any:
		var out []string
		for _, item := range items {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
