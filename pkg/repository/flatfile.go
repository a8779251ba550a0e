package repository

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/medlar/pkg/model"
	"github.com/m-mizutani/medlar/pkg/utils/logging"
)

// Source file names inside the doctor and wearable data directories
const (
	patientsFile = "patients.csv"
	visitsFile   = "visits.json"
)

var wearableFiles = map[model.WearableKind]string{
	model.WearableSleep:   "sleeps.csv",
	model.WearableWorkout: "workouts.csv",
	model.WearableCycle:   "physiological_cycles.csv",
	model.WearableJournal: "journal_entries.csv",
}

// LoadFlatFiles builds an in-memory Store from the flat files under dataDir
// (patient roster and visits) and whoopDir (wearable datasets). A missing
// visits file or wearable file is tolerated and logged; a missing or broken
// patient roster is a startup failure.
func LoadFlatFiles(ctx context.Context, dataDir, whoopDir string) (*Memory, error) {
	logger := logging.From(ctx)

	patients, err := loadPatients(filepath.Join(dataDir, patientsFile))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load patient roster", goerr.V("dir", dataDir))
	}

	visits, err := loadVisits(filepath.Join(dataDir, visitsFile))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load visits", goerr.V("dir", dataDir))
	}

	wearable := make(map[model.WearableKind]*model.WearableDataset)
	for kind, name := range wearableFiles {
		path := filepath.Join(whoopDir, name)
		ds, err := loadWearable(kind, path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load wearable dataset",
				goerr.V("kind", kind), goerr.V("path", path))
		}
		if ds == nil {
			logger.Debug("wearable dataset not present", "kind", kind, "path", path)
			continue
		}
		wearable[kind] = ds
	}

	logger.Info("patient data loaded",
		"patients", len(patients),
		"visits", len(visits),
		"wearable_datasets", len(wearable),
	)

	return NewMemory(patients, visits, wearable), nil
}

func loadPatients(path string) ([]*model.Patient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open patients file", goerr.V("path", path))
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse patients CSV", goerr.V("path", path))
	}
	if len(rows) < 1 {
		return nil, goerr.New("patients CSV has no header", goerr.V("path", path))
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"patient_id", "first_name", "last_name", "age", "gender"} {
		if _, ok := col[required]; !ok {
			return nil, goerr.New("patients CSV missing column", goerr.V("column", required))
		}
	}

	cell := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	patients := make([]*model.Patient, 0, len(rows)-1)
	for _, row := range rows[1:] {
		age, err := strconv.Atoi(cell(row, "age"))
		if err != nil || age < 0 {
			return nil, goerr.New("invalid age in patients CSV",
				goerr.V("patient_id", cell(row, "patient_id")),
				goerr.V("age", cell(row, "age")))
		}

		p := &model.Patient{
			PatientID:   cell(row, "patient_id"),
			FirstName:   cell(row, "first_name"),
			LastName:    cell(row, "last_name"),
			Age:         age,
			Gender:      model.Gender(strings.ToLower(cell(row, "gender"))),
			HeightCM:    parseOptionalFloat(cell(row, "height_cm")),
			WeightKG:    parseOptionalFloat(cell(row, "weight_kg")),
			BloodType:   optionalCell(cell(row, "blood_type")),
			Conditions:  splitList(cell(row, "conditions")),
			Medications: splitList(cell(row, "medications")),
			LastVisit:   optionalCell(cell(row, "last_visit")),
			Email:       optionalCell(cell(row, "email")),
		}
		if err := p.Gender.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid gender in patients CSV",
				goerr.V("patient_id", p.PatientID))
		}

		patients = append(patients, p)
	}

	return patients, nil
}

// splitList parses a comma-separated cell; "n/a" and blank cells mean an
// empty list, not a one-element list.
func splitList(s string) []string {
	if s == "" || strings.EqualFold(s, "n/a") {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func optionalCell(s string) string {
	if strings.EqualFold(s, "n/a") {
		return ""
	}
	return s
}

func parseOptionalFloat(s string) *float64 {
	if s == "" || strings.EqualFold(s, "n/a") {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// loadVisits reads the visits JSON document. A missing file means no visit
// history, which is a valid state.
func loadVisits(path string) ([]*model.Visit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to read visits file", goerr.V("path", path))
	}

	var visits []*model.Visit
	if err := json.Unmarshal(data, &visits); err != nil {
		return nil, goerr.Wrap(err, "failed to parse visits JSON", goerr.V("path", path))
	}
	return visits, nil
}

// loadWearable reads one wearable CSV preserving file order. Returns nil
// (no dataset) when the file does not exist.
func loadWearable(kind model.WearableKind, path string) (*model.WearableDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to open wearable file", goerr.V("path", path))
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse wearable CSV", goerr.V("path", path))
	}
	if len(rows) < 1 {
		return nil, goerr.New("wearable CSV has no header", goerr.V("path", path))
	}

	columns := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		columns[i] = strings.TrimSpace(name)
	}

	ds := &model.WearableDataset{
		Kind:    kind,
		Columns: columns,
		Rows:    make([]model.WearableRecord, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		rec := make(model.WearableRecord, len(columns))
		for i, name := range columns {
			if i < len(row) {
				rec[name] = strings.TrimSpace(row[i])
			}
		}
		ds.Rows = append(ds.Rows, rec)
	}

	return ds, nil
}
