package repository

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/medlar/pkg/model"
)

var ErrPatientNotFound = goerr.New("patient not found")

// Store owns all patient, visit and wearable records. Implementations load
// everything once at construction and answer read-only queries; there are
// no mutation operations, and a process restart is required to pick up
// changed source files.
type Store interface {
	// Patients returns all patients ordered by PatientID
	Patients() []*model.Patient

	// GetByID retrieves a patient by exact PatientID
	GetByID(id string) (*model.Patient, error)

	// GetByKey retrieves a patient by case-folded "first_last" key
	GetByKey(key string) (*model.Patient, error)

	// Visits returns all visits for the patient, in stored (newest-first) order
	Visits(patientID string) []*model.Visit

	// Wearable returns the dataset for the given kind. Missing source files
	// yield a permanently-empty dataset, never an error.
	Wearable(kind model.WearableKind) *model.WearableDataset

	// WearableConnected reports whether any wearable dataset has rows for
	// the patient. In the demo data this is true for exactly one patient.
	WearableConnected(patientID string) bool
}
