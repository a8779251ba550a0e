package repository

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/medlar/pkg/model"
)

// Resolve maps a loosely-typed identifier to exactly one patient.
//
// Structured identifiers use PatientID first, then the composite name key.
// Free-text queries match, in priority order: exact composite key, exact
// case-insensitive full name, then substring of the full name. Exact
// matches always beat substring matches, and within a match class the
// patient with the lowest PatientID wins; Patients() iterates in PatientID
// order, so the first hit is the winner.
//
// "No match" is a normal outcome reported as ErrPatientNotFound, never a
// fault.
func Resolve(store Store, id model.Identifier) (*model.Patient, error) {
	if id.IsZero() {
		return nil, goerr.Wrap(ErrPatientNotFound, "empty identifier")
	}

	if id.Query != "" {
		return resolveQuery(store, id.Query)
	}

	if id.PatientID != "" {
		if p, err := store.GetByID(id.PatientID); err == nil {
			return p, nil
		}
	}

	if id.FirstName != "" && id.LastName != "" {
		key := strings.ToLower(id.FirstName) + "_" + strings.ToLower(id.LastName)
		if p, err := store.GetByKey(key); err == nil {
			return p, nil
		}
	}

	return nil, goerr.Wrap(ErrPatientNotFound, "identifier did not resolve",
		goerr.V("identifier", id.String()))
}

func resolveQuery(store Store, query string) (*model.Patient, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, goerr.Wrap(ErrPatientNotFound, "empty query")
	}

	// Exact composite key, e.g. "amos_appendino"
	if p, err := store.GetByKey(q); err == nil {
		return p, nil
	}

	// Exact PatientID
	if p, err := store.GetByID(query); err == nil {
		return p, nil
	}

	var substring *model.Patient
	for _, p := range store.Patients() {
		name := strings.ToLower(p.Name())
		if name == q {
			return p, nil
		}
		if substring == nil && strings.Contains(name, q) {
			substring = p
		}
	}
	if substring != nil {
		return substring, nil
	}

	return nil, goerr.Wrap(ErrPatientNotFound, "no patient matches query",
		goerr.V("query", query))
}
