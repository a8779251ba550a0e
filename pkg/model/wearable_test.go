package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/medlar/pkg/model"
)

func TestWearableKindValidate(t *testing.T) {
	for _, kind := range model.WearableKinds() {
		gt.NoError(t, kind.Validate())
	}
	gt.Error(t, model.WearableKind("steps").Validate())
}

func TestWearableKindLabel(t *testing.T) {
	gt.Equal(t, model.WearableSleep.Label(), "sleep")
	gt.Equal(t, model.WearableCycle.Label(), "physiological cycle")
}

func TestTimestampColumn(t *testing.T) {
	gt.Equal(t, model.WearableWorkout.TimestampColumn(), "Workout start time")
	gt.Equal(t, model.WearableSleep.TimestampColumn(), "Cycle start time")
	gt.Equal(t, model.WearableCycle.TimestampColumn(), "Cycle start time")
	gt.Equal(t, model.WearableJournal.TimestampColumn(), "Cycle start time")
}

func TestDatasetRecordsPreserveFileOrder(t *testing.T) {
	ds := &model.WearableDataset{
		Kind:    model.WearableSleep,
		Columns: []string{"Patient id", "Cycle start time", "Sleep performance %"},
		Rows: []model.WearableRecord{
			{"Patient id": "P001", "Cycle start time": "2024-03-10 22:01:00", "Sleep performance %": "88"},
			{"Patient id": "P002", "Cycle start time": "2024-03-10 21:30:00", "Sleep performance %": "91"},
			{"Patient id": "P001", "Cycle start time": "2024-03-09 22:15:00", "Sleep performance %": "75"},
			{"Patient id": "P001", "Cycle start time": "2024-03-08 23:02:00", "Sleep performance %": "82"},
		},
	}

	records := ds.Records("P001", 2)
	gt.A(t, records).Length(2)
	gt.Equal(t, records[0].Timestamp(model.WearableSleep), "2024-03-10 22:01:00")
	gt.Equal(t, records[1].Timestamp(model.WearableSleep), "2024-03-09 22:15:00")

	// limit of 0 returns everything
	gt.A(t, ds.Records("P001", 0)).Length(3)

	gt.True(t, ds.HasPatient("P002"))
	gt.False(t, ds.HasPatient("P999"))
}

func TestNilDatasetIsSafe(t *testing.T) {
	var ds *model.WearableDataset
	gt.True(t, ds.Empty())
	gt.False(t, ds.HasPatient("P001"))
	gt.A(t, ds.Records("P001", 10)).Length(0)
}
