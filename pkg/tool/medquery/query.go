package medquery

import (
	"context"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/medlar/pkg/adapter"
	"github.com/m-mizutani/medlar/pkg/model"
	"github.com/m-mizutani/medlar/pkg/tool"
)

// Query is the medical_query tool: free-text Q&A delegated to the LLM
type Query struct {
	llm  adapter.LLM
	desc *model.ToolDescriptor
}

// NewQuery creates the medical_query tool
func NewQuery(llm adapter.LLM) *Query {
	return &Query{
		llm: llm,
		desc: &model.ToolDescriptor{
			Name:         "medical_query",
			Description:  "Answer medical questions with professional, evidence-based responses",
			Category:     model.CategoryGeneral,
			Enabled:      true,
			RateLimit:    10,
			RequiresAuth: true,
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"question": {
						Type:        "string",
						Description: "The medical question to answer",
					},
					"context": {
						Type:        "string",
						Description: "Additional context or patient information (optional)",
					},
				},
				Required: []string{"question"},
			},
		},
	}
}

func (x *Query) Descriptor() *model.ToolDescriptor {
	return x.desc
}

func (x *Query) Execute(ctx context.Context, args map[string]any) (string, error) {
	question, _ := args["question"].(string)
	extra, _ := args["context"].(string)

	var sb strings.Builder
	sb.WriteString(promptPrefix)
	sb.WriteString("Question: " + question + "\n")
	if extra != "" {
		sb.WriteString("Additional context: " + extra + "\n")
	}
	sb.WriteString("\nPlease provide a comprehensive, professional response:")

	text, err := x.llm.Generate(ctx, sb.String())
	if err != nil {
		return "", goerr.Wrap(tool.ErrUpstream, "medical query failed", goerr.V("cause", err))
	}
	return text, nil
}
