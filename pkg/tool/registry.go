package tool

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/medlar/pkg/model"
	"github.com/m-mizutani/medlar/pkg/utils/logging"
	"google.golang.org/genai"
)

// Registry holds the tool table and routes dispatches. It is constructed
// once at process start and passed by reference to the protocol server and
// web layer; there is no ambient singleton.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// New creates a registry from the given tools. Duplicate names are a
// programming error.
func New(tools ...Tool) (*Registry, error) {
	r := &Registry{
		tools: make(map[string]Tool, len(tools)),
	}

	for _, t := range tools {
		desc := t.Descriptor()
		if desc == nil || desc.Name == "" {
			return nil, goerr.New("tool has no descriptor")
		}
		if _, exists := r.tools[desc.Name]; exists {
			return nil, goerr.New("duplicate tool name", goerr.V("name", desc.Name))
		}
		r.tools[desc.Name] = t
		r.order = append(r.order, desc.Name)
	}

	return r, nil
}

// Names returns all registered tool names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Get returns the descriptor for a tool regardless of enabled state
func (r *Registry) Get(name string) (*model.ToolDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	if !ok {
		return nil, false
	}
	return t.Descriptor(), true
}

// Descriptors returns descriptors of all enabled tools in registration order
func (r *Registry) Descriptors() []*model.ToolDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.ToolDescriptor
	for _, name := range r.order {
		if desc := r.tools[name].Descriptor(); desc.Enabled {
			out = append(out, desc)
		}
	}
	return out
}

// ByCategory returns all descriptors grouped by category, including
// disabled tools
func (r *Registry) ByCategory() map[model.ToolCategory][]*model.ToolDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[model.ToolCategory][]*model.ToolDescriptor)
	for _, name := range r.order {
		desc := r.tools[name].Descriptor()
		out[desc.Category] = append(out[desc.Category], desc)
	}
	for _, descs := range out {
		sort.Slice(descs, func(i, j int) bool { return descs[i].Name < descs[j].Name })
	}
	return out
}

// Enable marks the named tool callable again
func (r *Registry) Enable(name string) error {
	return r.setEnabled(name, true)
}

// Disable makes subsequent dispatches of the named tool fail as unknown
func (r *Registry) Disable(name string) error {
	return r.setEnabled(name, false)
}

func (r *Registry) setEnabled(name string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tools[name]
	if !ok {
		return goerr.Wrap(ErrUnknownTool, "no such tool", goerr.V("name", name))
	}
	t.Descriptor().Enabled = enabled
	return nil
}

// Dispatch routes one tool call to its handler and returns the formatted
// response. Every failure class is converted to a user-facing text; the
// caller never receives an error or a panic.
//
// Validation order: known and enabled tool, then typed schema validation,
// then execution. Identity resolution happens inside the patient tools,
// which render their own not-found text.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) string {
	r.mu.RLock()
	t, ok := r.tools[name]
	var desc *model.ToolDescriptor
	if ok {
		desc = t.Descriptor()
		ok = desc.Enabled
	}
	r.mu.RUnlock()

	if !ok {
		return fmt.Sprintf("Error: unknown tool '%s'", name)
	}

	if args == nil {
		args = map[string]any{}
	}

	if err := ValidateArgs(desc.InputSchema, args); err != nil {
		return "Error: " + err.Error()
	}

	text, err := t.Execute(ctx, args)
	if err != nil {
		logging.From(ctx).Error("tool execution failed", "tool", name, "error", err)
		return fmt.Sprintf("Error processing %s: %v", name, err)
	}
	return text
}

// FunctionDeclarations converts all enabled tool schemas into Gemini
// function declarations for the assistant's function-calling loop.
func (r *Registry) FunctionDeclarations() ([]*genai.FunctionDeclaration, error) {
	var decls []*genai.FunctionDeclaration
	for _, desc := range r.Descriptors() {
		params, err := convertJSONSchemaToGenai(desc.InputSchema)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to convert tool schema",
				goerr.V("tool", desc.Name))
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        desc.Name,
			Description: desc.Description,
			Parameters:  params,
		})
	}
	return decls, nil
}
