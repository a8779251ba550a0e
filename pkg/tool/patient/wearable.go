package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/m-mizutani/medlar/pkg/model"
	"github.com/m-mizutani/medlar/pkg/repository"
)

const defaultDays = 30

// wearableSpec fixes the per-kind tool name, headline and display columns.
// Column order is part of the response contract.
type wearableSpec struct {
	toolName   string
	usage      string
	headline   string
	countLabel string
	columns    []string
}

var wearableSpecs = map[model.WearableKind]wearableSpec{
	model.WearableSleep: {
		toolName:   "get_patient_whoop_sleep_data",
		usage:      "Get a patient's Whoop sleep data for the specified time period",
		headline:   "Whoop Sleep Data",
		countLabel: "Total Records",
		columns: []string{
			"Sleep performance %",
			"Sleep efficiency %",
			"REM duration (min)",
			"Deep (SWS) duration (min)",
		},
	},
	model.WearableWorkout: {
		toolName:   "get_patient_whoop_activity_data",
		usage:      "Get a patient's Whoop workout and activity data",
		headline:   "Whoop Workout Data",
		countLabel: "Total Workouts",
		columns: []string{
			"Sport",
			"Strain",
			"Duration (min)",
		},
	},
	model.WearableCycle: {
		toolName:   "get_patient_whoop_physiological_cycle_data",
		usage:      "Get a patient's Whoop physiological cycle data (recovery, strain, etc)",
		headline:   "Whoop Physiological Cycle Data",
		countLabel: "Total Cycles",
		columns: []string{
			"Recovery score %",
			"Strain",
			"Resting heart rate (bpm)",
			"Heart rate variability (ms)",
		},
	},
	model.WearableJournal: {
		toolName:   "get_patient_whoop_journal_data",
		usage:      "Get a patient's Whoop journal entries",
		headline:   "Whoop Journal Data",
		countLabel: "Total Entries",
		columns: []string{
			"Question text",
			"Answered yes",
		},
	},
}

// Wearable serves one Whoop dataset kind; four instances cover the whole
// tool family.
type Wearable struct {
	base
	kind model.WearableKind
	spec wearableSpec
	desc *model.ToolDescriptor
}

// NewWearable creates the tool for one dataset kind
func NewWearable(store repository.Store, kind model.WearableKind) *Wearable {
	spec := wearableSpecs[kind]
	minDays, maxDays := 1.0, 90.0

	return &Wearable{
		base: base{store: store},
		kind: kind,
		spec: spec,
		desc: &model.ToolDescriptor{
			Name:                  spec.toolName,
			Description:           spec.usage,
			Category:              model.CategoryPatientData,
			Enabled:               true,
			RateLimit:             20,
			RequiresAuth:          true,
			RequiresPatientAccess: true,
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"patient_identifier": identifierSchema(),
					"days": {
						Type:        "integer",
						Description: "Number of days to retrieve (default: 30)",
						Minimum:     &minDays,
						Maximum:     &maxDays,
					},
				},
				Required: []string{"patient_identifier"},
			},
		},
	}
}

// NewAllWearables creates the complete wearable tool family in a fixed order
func NewAllWearables(store repository.Store) []*Wearable {
	var out []*Wearable
	for _, kind := range model.WearableKinds() {
		out = append(out, NewWearable(store, kind))
	}
	return out
}

func (x *Wearable) Descriptor() *model.ToolDescriptor {
	return x.desc
}

func (x *Wearable) Execute(ctx context.Context, args map[string]any) (string, error) {
	p, notFound := x.resolve(args)
	if notFound != "" {
		return notFound, nil
	}

	if !x.store.WearableConnected(p.PatientID) {
		return x.notConnectedText(p), nil
	}

	ds := x.store.Wearable(x.kind)
	if ds.Empty() {
		return fmt.Sprintf("No Whoop %s data available", x.kind.Label()), nil
	}

	days := defaultDays
	if n, ok := args["days"]; ok {
		switch v := n.(type) {
		case float64:
			days = int(v)
		case int:
			days = v
		case int64:
			days = int(v)
		}
	}

	records := ds.Records(p.PatientID, days)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s for %s\n", x.spec.headline, p.Name())
	fmt.Fprintf(&sb, "Period: Last %d days\n", days)
	fmt.Fprintf(&sb, "%s: %d\n", x.spec.countLabel, len(records))

	for i, rec := range records {
		fmt.Fprintf(&sb, "\n%d. %s\n", i+1, rec.Timestamp(x.kind))
		for _, col := range x.spec.columns {
			if v, ok := rec[col]; ok && v != "" {
				fmt.Fprintf(&sb, "   %s: %s\n", col, v)
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

// notConnectedText names both the requested patient and the patients that
// do have wearable data.
func (x *Wearable) notConnectedText(p *model.Patient) string {
	var connected []string
	for _, other := range x.store.Patients() {
		if x.store.WearableConnected(other.PatientID) {
			connected = append(connected, other.Name())
		}
	}

	msg := fmt.Sprintf("%s has not connected their Whoop account.", p.Name())
	if len(connected) == 0 {
		return msg + " No patients currently have Whoop data available."
	}
	return fmt.Sprintf("%s Only %s has Whoop data available.", msg, strings.Join(connected, ", "))
}
