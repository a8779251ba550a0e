// Package patient implements the patient_data tool family: identity
// resolution against the store, data retrieval, and the fixed text layouts
// consumed by protocol callers.
package patient

import (
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/m-mizutani/medlar/pkg/model"
	"github.com/m-mizutani/medlar/pkg/repository"
)

// base carries the store shared by every patient tool
type base struct {
	store repository.Store
}

// resolve maps the patient_identifier argument to a patient. When the
// identifier does not resolve, the second return value is the complete
// user-facing message; not finding a patient is a normal outcome, not a
// fault.
func (x *base) resolve(args map[string]any) (*model.Patient, string) {
	ident := model.ParseIdentifier(args["patient_identifier"])

	p, err := repository.Resolve(x.store, ident)
	if err != nil {
		return nil, x.notFoundText(ident)
	}
	return p, ""
}

func (x *base) notFoundText(ident model.Identifier) string {
	var names []string
	for _, p := range x.store.Patients() {
		names = append(names, p.Name())
	}
	return fmt.Sprintf("Patient '%s' not found. Available patients: %s",
		ident.String(), strings.Join(names, ", "))
}

// identifierSchema is shared by all patient tools. No type is declared so
// both a plain name string and a structured {first_name, last_name,
// patient_id} object are accepted.
func identifierSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "Patient name or ID (e.g., 'Amos Appendino' or 'amos_appendino')",
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

// title upper-cases the first letter, e.g. "male" -> "Male"
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
