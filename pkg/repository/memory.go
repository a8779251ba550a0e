package repository

import (
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/medlar/pkg/model"
)

// Memory is an in-memory Store assembled from already-parsed records. The
// flat-file loader builds one of these; tests construct them directly.
type Memory struct {
	patients []*model.Patient
	byID     map[string]*model.Patient
	byKey    map[string]*model.Patient
	visits   []*model.Visit
	wearable map[model.WearableKind]*model.WearableDataset
}

// NewMemory creates a Store from the given records. Patients are indexed by
// PatientID and by composite name key; on a key collision the patient with
// the lexicographically smaller PatientID wins, keeping lookups
// deterministic.
func NewMemory(patients []*model.Patient, visits []*model.Visit, wearable map[model.WearableKind]*model.WearableDataset) *Memory {
	m := &Memory{
		patients: make([]*model.Patient, len(patients)),
		byID:     make(map[string]*model.Patient, len(patients)),
		byKey:    make(map[string]*model.Patient, len(patients)),
		visits:   visits,
		wearable: wearable,
	}
	if m.wearable == nil {
		m.wearable = make(map[model.WearableKind]*model.WearableDataset)
	}

	copy(m.patients, patients)
	sort.Slice(m.patients, func(i, j int) bool {
		return m.patients[i].PatientID < m.patients[j].PatientID
	})

	for _, p := range m.patients {
		if _, exists := m.byID[p.PatientID]; !exists {
			m.byID[p.PatientID] = p
		}
		if _, exists := m.byKey[p.Key()]; !exists {
			m.byKey[p.Key()] = p
		}
	}

	return m
}

func (m *Memory) Patients() []*model.Patient {
	return m.patients
}

func (m *Memory) GetByID(id string) (*model.Patient, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, goerr.Wrap(ErrPatientNotFound, "no such patient_id", goerr.V("patient_id", id))
	}
	return p, nil
}

func (m *Memory) GetByKey(key string) (*model.Patient, error) {
	p, ok := m.byKey[key]
	if !ok {
		return nil, goerr.Wrap(ErrPatientNotFound, "no such patient key", goerr.V("key", key))
	}
	return p, nil
}

func (m *Memory) Visits(patientID string) []*model.Visit {
	var out []*model.Visit
	for _, v := range m.visits {
		if v.PatientID == patientID {
			out = append(out, v)
		}
	}
	return out
}

func (m *Memory) Wearable(kind model.WearableKind) *model.WearableDataset {
	return m.wearable[kind]
}

func (m *Memory) WearableConnected(patientID string) bool {
	for _, ds := range m.wearable {
		if ds.HasPatient(patientID) {
			return true
		}
	}
	return false
}
