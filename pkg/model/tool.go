package model

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// ToolCategory groups tools for listing and policy control
type ToolCategory string

const (
	CategoryGeneral     ToolCategory = "general"
	CategoryPatientData ToolCategory = "patient_data"
)

// ToolDescriptor is the static metadata record for one tool. It is built
// once at process start; only the Enabled flag is mutable afterward, via
// explicit registry operations.
type ToolDescriptor struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	Category    ToolCategory

	Enabled bool

	// RateLimit is requests per minute. Advisory only: no limiter in this
	// system enforces it.
	RateLimit int

	RequiresAuth          bool
	RequiresPatientAccess bool
}
