// Package assist is the natural-language assistant: free-form provider
// queries answered by the LLM with tool access to the patient store.
package assist

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/medlar/pkg/adapter"
	"github.com/m-mizutani/medlar/pkg/repository"
	"github.com/m-mizutani/medlar/pkg/tool"
	"github.com/m-mizutani/medlar/pkg/utils/logging"
	"google.golang.org/genai"
)

// maxToolTurns bounds the function-call loop per query
const maxToolTurns = 16

// Session is one assistant conversation. Gemini sessions run with function
// calling against the registry; other providers answer from the data
// context alone.
type Session struct {
	llm      adapter.LLM
	gemini   adapter.Gemini
	registry *tool.Registry
	store    repository.Store

	contents []*genai.Content
}

// NewInput contains parameters for creating an assistant session
type NewInput struct {
	LLM      adapter.LLM
	Registry *tool.Registry
	Store    repository.Store
}

// New creates an assistant session. When the configured provider is
// Gemini, tool access is enabled automatically.
func New(input NewInput) *Session {
	s := &Session{
		llm:      input.LLM,
		registry: input.Registry,
		store:    input.Store,
	}
	if g, ok := input.LLM.(adapter.Gemini); ok {
		s.gemini = g
	}
	return s
}

// Send processes one natural-language query and returns the final text
// answer
func (s *Session) Send(ctx context.Context, query string) (string, error) {
	if s.gemini == nil {
		return s.llm.Generate(ctx, s.plainPrompt(query))
	}
	return s.sendWithTools(ctx, query)
}

// sendWithTools runs the Gemini function-calling loop: generate, execute
// any requested tools through the registry, feed results back, and repeat
// until the model answers in text.
func (s *Session) sendWithTools(ctx context.Context, query string) (string, error) {
	logger := logging.From(ctx)

	decls, err := s.registry.FunctionDeclarations()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build tool declarations")
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(s.systemPrompt(), ""),
	}
	if len(decls) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	s.contents = append(s.contents, genai.NewContentFromText(query, genai.RoleUser))

	var finalText string
	for turn := 0; turn < maxToolTurns; turn++ {
		resp, err := s.gemini.GenerateContent(ctx, s.contents, config)
		if err != nil {
			return "", goerr.Wrap(err, "failed to generate content")
		}

		hasFunctionCall := false
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			s.contents = append(s.contents, candidate.Content)

			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					finalText = part.Text
				}

				if part.FunctionCall == nil {
					continue
				}
				hasFunctionCall = true

				fc := part.FunctionCall
				logger.Debug("assistant tool call", "tool", fc.Name)

				result := s.registry.Dispatch(ctx, fc.Name, fc.Args)
				s.contents = append(s.contents, &genai.Content{
					Role: genai.RoleUser,
					Parts: []*genai.Part{{
						FunctionResponse: &genai.FunctionResponse{
							Name:     fc.Name,
							Response: map[string]any{"result": result},
						},
					}},
				})
			}
		}

		if !hasFunctionCall {
			break
		}
	}

	if finalText == "" {
		return "", goerr.New("assistant produced no answer", goerr.V("query", query))
	}
	return finalText, nil
}
