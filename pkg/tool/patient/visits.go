package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/m-mizutani/medlar/pkg/model"
	"github.com/m-mizutani/medlar/pkg/repository"
)

// Visits is the get_patient_visits tool
type Visits struct {
	base
	desc *model.ToolDescriptor
}

func NewVisits(store repository.Store) *Visits {
	return &Visits{
		base: base{store: store},
		desc: &model.ToolDescriptor{
			Name:                  "get_patient_visits",
			Description:           "Get a patient's full visit history with vitals where recorded",
			Category:              model.CategoryPatientData,
			Enabled:               true,
			RateLimit:             20,
			RequiresAuth:          true,
			RequiresPatientAccess: true,
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"patient_identifier": identifierSchema(),
				},
				Required: []string{"patient_identifier"},
			},
		},
	}
}

func (x *Visits) Descriptor() *model.ToolDescriptor {
	return x.desc
}

func (x *Visits) Execute(ctx context.Context, args map[string]any) (string, error) {
	p, notFound := x.resolve(args)
	if notFound != "" {
		return notFound, nil
	}

	visits := x.store.Visits(p.PatientID)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Visit History for %s\n", p.Name())
	fmt.Fprintf(&sb, "Total Visits: %d\n", len(visits))

	for i, v := range visits {
		fmt.Fprintf(&sb, "\n%d. %s [%s]\n", i+1, v.VisitDate, v.VisitType)
		fmt.Fprintf(&sb, "   Reason: %s\n", v.Reason)
		fmt.Fprintf(&sb, "   Diagnosis: %s\n", v.Diagnosis)
		if v.Vitals != nil {
			// Blood pressure is always rendered systolic/diastolic mmHg
			fmt.Fprintf(&sb, "   Vitals: BP %d/%d mmHg, HR %d bpm\n",
				v.Vitals.SystolicBP, v.Vitals.DiastolicBP, v.Vitals.HeartRate)
		}
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}
