package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

var ErrInvalidGender = goerr.New("invalid gender")

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Validate checks if the gender is valid
func (g Gender) Validate() error {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return nil
	default:
		return goerr.Wrap(ErrInvalidGender, "unknown gender", goerr.V("gender", g))
	}
}

// Patient is one row of the patient roster. Records are loaded once at
// startup and never mutated.
type Patient struct {
	PatientID   string
	FirstName   string
	LastName    string
	Age         int
	Gender      Gender
	HeightCM    *float64
	WeightKG    *float64
	BloodType   string
	Conditions  []string
	Medications []string
	LastVisit   string
	Email       string
}

// Name returns the display name, e.g. "Amos Appendino"
func (p *Patient) Name() string {
	return p.FirstName + " " + p.LastName
}

// Key returns the case-folded composite lookup key, e.g. "amos_appendino".
// The key is a secondary, non-unique index; PatientID is the primary one.
func (p *Patient) Key() string {
	return strings.ToLower(p.FirstName) + "_" + strings.ToLower(p.LastName)
}

// Identifier is a caller-supplied value used to locate a patient. Either
// Query (free text) or the structured fields are set, not both.
type Identifier struct {
	Query     string
	PatientID string
	FirstName string
	LastName  string
}

// String renders the identifier the way the caller supplied it, for use in
// not-found messages.
func (id Identifier) String() string {
	if id.Query != "" {
		return id.Query
	}
	if id.PatientID != "" {
		return id.PatientID
	}
	return strings.TrimSpace(id.FirstName + " " + id.LastName)
}

// IsZero reports whether no identifying field is set
func (id Identifier) IsZero() bool {
	return id.Query == "" && id.PatientID == "" && id.FirstName == "" && id.LastName == ""
}

// ParseIdentifier converts a tool argument into an Identifier. The argument
// is either a plain string or a one-level map with patient_id or
// first_name/last_name fields.
func ParseIdentifier(v any) Identifier {
	switch arg := v.(type) {
	case string:
		return Identifier{Query: strings.TrimSpace(arg)}

	case map[string]any:
		var id Identifier
		if s, ok := arg["patient_id"].(string); ok {
			id.PatientID = s
		}
		if s, ok := arg["first_name"].(string); ok {
			id.FirstName = s
		}
		if s, ok := arg["last_name"].(string); ok {
			id.LastName = s
		}
		return id

	default:
		return Identifier{}
	}
}
