package patient_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/medlar/pkg/model"
	"github.com/m-mizutani/medlar/pkg/repository"
	"github.com/m-mizutani/medlar/pkg/tool/patient"
)

func floatPtr(v float64) *float64 { return &v }

func testStore() *repository.Memory {
	patients := []*model.Patient{
		{
			PatientID:   "P001",
			FirstName:   "Sarah",
			LastName:    "Johnson",
			Age:         34,
			Gender:      model.GenderFemale,
			HeightCM:    floatPtr(165),
			WeightKG:    floatPtr(62.5),
			BloodType:   "A+",
			Conditions:  []string{"Hypertension", "Anxiety"},
			Medications: []string{"Lisinopril"},
			LastVisit:   "2024-03-10",
			Email:       "sarah.johnson@example.com",
		},
		{
			PatientID: "P002",
			FirstName: "Michael",
			LastName:  "Chen",
			Age:       45,
			Gender:    model.GenderMale,
		},
		{
			PatientID: "P003",
			FirstName: "Amos",
			LastName:  "Appendino",
			Age:       29,
			Gender:    model.GenderMale,
		},
	}

	visits := []*model.Visit{
		{
			PatientID: "P001",
			VisitDate: "2024-03-10",
			VisitType: "Follow-up",
			Reason:    "Blood pressure check",
			Diagnosis: "Hypertension, controlled",
			Vitals:    &model.Vitals{SystolicBP: 128, DiastolicBP: 82, HeartRate: 72},
		},
		{
			PatientID: "P001",
			VisitDate: "2024-01-15",
			VisitType: "Annual Physical",
			Reason:    "Routine examination",
			Diagnosis: "Healthy",
		},
	}

	wearable := map[model.WearableKind]*model.WearableDataset{
		model.WearableSleep: {
			Kind:    model.WearableSleep,
			Columns: []string{"Patient id", "Cycle start time", "Sleep performance %"},
			Rows: []model.WearableRecord{
				{"Patient id": "P003", "Cycle start time": "2024-03-10 22:01:00", "Sleep performance %": "88"},
				{"Patient id": "P003", "Cycle start time": "2024-03-09 22:45:00", "Sleep performance %": "75"},
			},
		},
		model.WearableWorkout: {
			Kind:    model.WearableWorkout,
			Columns: []string{"Patient id", "Workout start time", "Sport", "Strain"},
			Rows: []model.WearableRecord{
				{"Patient id": "P003", "Workout start time": "2024-03-10 17:00:00", "Sport": "Running", "Strain": "12.4"},
			},
		},
	}

	return repository.NewMemory(patients, visits, wearable)
}

func TestOverview(t *testing.T) {
	tool := patient.NewOverview(testStore())

	out, err := tool.Execute(t.Context(), map[string]any{"patient_identifier": "Sarah Johnson"})
	gt.NoError(t, err)

	gt.S(t, out).Contains("Patient Overview: Sarah Johnson")
	gt.S(t, out).Contains("Patient ID: P001")
	gt.S(t, out).Contains("Age: 34 years")
	gt.S(t, out).Contains("Gender: Female")
	gt.S(t, out).Contains("Height: 165.0 cm")
	gt.S(t, out).Contains("Weight: 62.5 kg")
	gt.S(t, out).Contains("Blood Type: A+")
	gt.S(t, out).Contains("Conditions: Hypertension, Anxiety")
	gt.S(t, out).Contains("Medications: Lisinopril")
	gt.S(t, out).Contains("Recent Visits (2 of 2 total):")
	gt.S(t, out).Contains("2024-03-10 [Follow-up] Blood pressure check - Hypertension, controlled")
	gt.S(t, out).Contains("Whoop Connected: No")
}

func TestOverviewOmitsAbsentFields(t *testing.T) {
	tool := patient.NewOverview(testStore())

	out, err := tool.Execute(t.Context(), map[string]any{"patient_identifier": "michael chen"})
	gt.NoError(t, err)

	gt.S(t, out).NotContains("Height:")
	gt.S(t, out).NotContains("Blood Type:")
	gt.S(t, out).NotContains("Email:")
	gt.S(t, out).Contains("Conditions: None")
	gt.S(t, out).Contains("Medications: None")
	gt.S(t, out).Contains("No visits recorded")
}

func TestOverviewStructuredIdentifier(t *testing.T) {
	tool := patient.NewOverview(testStore())

	out, err := tool.Execute(t.Context(), map[string]any{
		"patient_identifier": map[string]any{"patient_id": "P003"},
	})
	gt.NoError(t, err)
	gt.S(t, out).Contains("Patient Overview: Amos Appendino")
	gt.S(t, out).Contains("Whoop Connected: Yes")
}

func TestOverviewNotFound(t *testing.T) {
	tool := patient.NewOverview(testStore())

	out, err := tool.Execute(t.Context(), map[string]any{"patient_identifier": "Nobody Here"})
	gt.NoError(t, err)
	gt.S(t, out).Contains("Patient 'Nobody Here' not found.")
	gt.S(t, out).Contains("Available patients: Sarah Johnson, Michael Chen, Amos Appendino")
}

func TestVisits(t *testing.T) {
	tool := patient.NewVisits(testStore())

	out, err := tool.Execute(t.Context(), map[string]any{"patient_identifier": "P001"})
	gt.NoError(t, err)

	gt.S(t, out).Contains("Visit History for Sarah Johnson")
	gt.S(t, out).Contains("Total Visits: 2")
	gt.S(t, out).Contains("1. 2024-03-10 [Follow-up]")
	gt.S(t, out).Contains("Reason: Blood pressure check")
	gt.S(t, out).Contains("Vitals: BP 128/82 mmHg, HR 72 bpm")

	// Second visit carries no vitals block
	gt.S(t, out).Contains("2. 2024-01-15 [Annual Physical]")
}

func TestVisitsNoneRecorded(t *testing.T) {
	tool := patient.NewVisits(testStore())

	out, err := tool.Execute(t.Context(), map[string]any{"patient_identifier": "P002"})
	gt.NoError(t, err)
	gt.S(t, out).Contains("Total Visits: 0")
}

func TestWearableData(t *testing.T) {
	store := testStore()

	for _, w := range patient.NewAllWearables(store) {
		kind := w.Descriptor().Name
		t.Run(kind, func(t *testing.T) {
			out, err := w.Execute(t.Context(), map[string]any{"patient_identifier": "amos_appendino"})
			gt.NoError(t, err)
			gt.S(t, out).NotContains("not found")
			gt.S(t, out).NotContains("has not connected")
		})
	}
}

func TestWearableSleepFormat(t *testing.T) {
	store := testStore()
	tool := patient.NewWearable(store, model.WearableSleep)

	out, err := tool.Execute(t.Context(), map[string]any{
		"patient_identifier": "Amos Appendino",
		"days":               float64(5),
	})
	gt.NoError(t, err)

	gt.S(t, out).Contains("Whoop Sleep Data for Amos Appendino")
	gt.S(t, out).Contains("Period: Last 5 days")
	gt.S(t, out).Contains("Total Records: 2")
	gt.S(t, out).Contains("1. 2024-03-10 22:01:00")
	gt.S(t, out).Contains("Sleep performance %: 88")
	gt.S(t, out).Contains("2. 2024-03-09 22:45:00")
}

func TestWearableNotConnected(t *testing.T) {
	store := testStore()

	for _, w := range patient.NewAllWearables(store) {
		t.Run(w.Descriptor().Name, func(t *testing.T) {
			out, err := w.Execute(t.Context(), map[string]any{"patient_identifier": "Sarah Johnson"})
			gt.NoError(t, err)
			gt.S(t, out).Contains("Sarah Johnson has not connected their Whoop account.")
			gt.S(t, out).Contains("Only Amos Appendino has Whoop data available.")
		})
	}
}

func TestWearableEmptyDataset(t *testing.T) {
	store := testStore()
	tool := patient.NewWearable(store, model.WearableJournal)

	// Amos is connected through sleep data but has no journal entries
	out, err := tool.Execute(t.Context(), map[string]any{"patient_identifier": "P003"})
	gt.NoError(t, err)
	gt.Equal(t, out, "No Whoop journal data available")
}

func TestWearableSchema(t *testing.T) {
	tool := patient.NewWearable(testStore(), model.WearableCycle)
	desc := tool.Descriptor()

	gt.Equal(t, desc.Name, "get_patient_whoop_physiological_cycle_data")
	gt.Equal(t, desc.Category, model.CategoryPatientData)
	gt.Map(t, desc.InputSchema.Properties).HasKey("patient_identifier")
	gt.Map(t, desc.InputSchema.Properties).HasKey("days")
	gt.Equal(t, desc.InputSchema.Required, []string{"patient_identifier"})
}
