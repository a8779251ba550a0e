package tool

import (
	"context"

	"github.com/m-mizutani/medlar/pkg/model"
)

// Tool is one named, schema-described operation exposed to external
// callers through the registry.
type Tool interface {
	// Descriptor returns the static metadata for this tool. The registry
	// calls it once at construction; the returned value must not change
	// afterward except through registry Enable/Disable.
	Descriptor() *model.ToolDescriptor

	// Execute runs the tool with already-validated arguments and returns
	// the formatted response text. Errors are converted to user-facing
	// text by the registry, never surfaced to the caller.
	Execute(ctx context.Context, args map[string]any) (string, error)
}
