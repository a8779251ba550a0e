package model

import (
	"github.com/m-mizutani/goerr/v2"
)

var ErrInvalidWearableKind = goerr.New("invalid wearable kind")

// WearableKind identifies one of the Whoop time-series datasets
type WearableKind string

const (
	WearableSleep   WearableKind = "sleep"
	WearableWorkout WearableKind = "workout"
	WearableCycle   WearableKind = "cycle"
	WearableJournal WearableKind = "journal"
)

// WearableKinds lists all dataset kinds in a fixed order
func WearableKinds() []WearableKind {
	return []WearableKind{WearableSleep, WearableWorkout, WearableCycle, WearableJournal}
}

// Validate checks if the kind is one of the known datasets
func (k WearableKind) Validate() error {
	switch k {
	case WearableSleep, WearableWorkout, WearableCycle, WearableJournal:
		return nil
	default:
		return goerr.Wrap(ErrInvalidWearableKind, "unknown kind", goerr.V("kind", k))
	}
}

// Label returns the human-readable dataset name used in messages
func (k WearableKind) Label() string {
	switch k {
	case WearableSleep:
		return "sleep"
	case WearableWorkout:
		return "workout"
	case WearableCycle:
		return "physiological cycle"
	case WearableJournal:
		return "journal"
	default:
		return string(k)
	}
}

// TimestampColumn returns the column used for recency ordering. Source
// files are assumed pre-sorted descending by this column; queries preserve
// file order and never re-sort.
func (k WearableKind) TimestampColumn() string {
	if k == WearableWorkout {
		return "Workout start time"
	}
	return "Cycle start time"
}

// WearablePatientColumn is the column scoping each row to a patient
const WearablePatientColumn = "Patient id"

// WearableRecord is one row of a wearable dataset, keyed by column name
type WearableRecord map[string]string

// Timestamp returns the record's recency-ordering value for the given kind
func (r WearableRecord) Timestamp(kind WearableKind) string {
	return r[kind.TimestampColumn()]
}

// WearableDataset holds one loaded CSV: the header in file order plus all
// rows in file order. An empty dataset (missing source file) stays empty
// for the process lifetime.
type WearableDataset struct {
	Kind    WearableKind
	Columns []string
	Rows    []WearableRecord
}

// Empty reports whether the dataset has no rows at all
func (d *WearableDataset) Empty() bool {
	return d == nil || len(d.Rows) == 0
}

// Records returns the first limit rows belonging to patientID, in file
// order. A limit of 0 or less returns all matching rows.
func (d *WearableDataset) Records(patientID string, limit int) []WearableRecord {
	if d == nil {
		return nil
	}

	var out []WearableRecord
	for _, row := range d.Rows {
		if row[WearablePatientColumn] != patientID {
			continue
		}
		out = append(out, row)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// HasPatient reports whether any row belongs to patientID
func (d *WearableDataset) HasPatient(patientID string) bool {
	if d == nil {
		return false
	}
	for _, row := range d.Rows {
		if row[WearablePatientColumn] == patientID {
			return true
		}
	}
	return false
}
