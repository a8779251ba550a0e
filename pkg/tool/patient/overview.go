package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/m-mizutani/medlar/pkg/model"
	"github.com/m-mizutani/medlar/pkg/repository"
)

// recentVisitCount is how many visits the overview includes
const recentVisitCount = 3

// Overview is the get_patient_overview tool
type Overview struct {
	base
	desc *model.ToolDescriptor
}

func NewOverview(store repository.Store) *Overview {
	return &Overview{
		base: base{store: store},
		desc: &model.ToolDescriptor{
			Name:                  "get_patient_overview",
			Description:           "Get comprehensive patient overview including demographics, conditions, and recent visits",
			Category:              model.CategoryPatientData,
			Enabled:               true,
			RateLimit:             10,
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

func (x *Overview) Descriptor() *model.ToolDescriptor {
	return x.desc
}

func (x *Overview) Execute(ctx context.Context, args map[string]any) (string, error) {
	p, notFound := x.resolve(args)
	if notFound != "" {
		return notFound, nil
	}

	visits := x.store.Visits(p.PatientID)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Patient Overview: %s\n\n", p.Name())

	sb.WriteString("Demographics:\n")
	fmt.Fprintf(&sb, "  Patient ID: %s\n", p.PatientID)
	fmt.Fprintf(&sb, "  Age: %d years\n", p.Age)
	fmt.Fprintf(&sb, "  Gender: %s\n", title(string(p.Gender)))
	if p.HeightCM != nil {
		fmt.Fprintf(&sb, "  Height: %.1f cm\n", *p.HeightCM)
	}
	if p.WeightKG != nil {
		fmt.Fprintf(&sb, "  Weight: %.1f kg\n", *p.WeightKG)
	}
	if p.BloodType != "" {
		fmt.Fprintf(&sb, "  Blood Type: %s\n", p.BloodType)
	}
	if p.LastVisit != "" {
		fmt.Fprintf(&sb, "  Last Visit: %s\n", p.LastVisit)
	}
	if p.Email != "" {
		fmt.Fprintf(&sb, "  Email: %s\n", p.Email)
	}

	fmt.Fprintf(&sb, "\nConditions: %s\n", joinOrNone(p.Conditions))
	fmt.Fprintf(&sb, "Medications: %s\n", joinOrNone(p.Medications))

	recent := visits
	if len(recent) > recentVisitCount {
		recent = recent[:recentVisitCount]
	}
	fmt.Fprintf(&sb, "\nRecent Visits (%d of %d total):\n", len(recent), len(visits))
	if len(recent) == 0 {
		sb.WriteString("  No visits recorded\n")
	}
	for _, v := range recent {
		fmt.Fprintf(&sb, "  %s [%s] %s - %s\n", v.VisitDate, v.VisitType, v.Reason, v.Diagnosis)
	}

	connected := "No"
	if x.store.WearableConnected(p.PatientID) {
		connected = "Yes"
	}
	fmt.Fprintf(&sb, "\nWhoop Connected: %s", connected)

	return sb.String(), nil
}
