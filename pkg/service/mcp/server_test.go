package mcp

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/medlar/pkg/model"
	"github.com/m-mizutani/medlar/pkg/repository"
	"github.com/m-mizutani/medlar/pkg/tool"
	"github.com/m-mizutani/medlar/pkg/tool/patient"
)

func TestDecodeArguments(t *testing.T) {
	args, err := decodeArguments(nil)
	gt.NoError(t, err)
	gt.Equal(t, len(args), 0)

	args, err = decodeArguments(map[string]any{"question": "hi"})
	gt.NoError(t, err)
	gt.Equal(t, args["question"], "hi")

	args, err = decodeArguments(json.RawMessage(`{"days": 7}`))
	gt.NoError(t, err)
	gt.Equal(t, args["days"], any(float64(7)))

	args, err = decodeArguments(json.RawMessage(""))
	gt.NoError(t, err)
	gt.Equal(t, len(args), 0)

	_, err = decodeArguments(json.RawMessage(`not json`))
	gt.Error(t, err)

	_, err = decodeArguments(42)
	gt.Error(t, err)
}

func TestNewServerPublishesEnabledTools(t *testing.T) {
	store := repository.NewMemory([]*model.Patient{
		{PatientID: "P001", FirstName: "Sarah", LastName: "Johnson", Age: 34, Gender: model.GenderFemale},
	}, nil, nil)

	registry, err := tool.New(patient.NewOverview(store), patient.NewVisits(store))
	gt.NoError(t, err)
	gt.NoError(t, registry.Disable("get_patient_visits"))

	server := NewServer(registry)
	gt.NotNil(t, server)
}

func TestTextResult(t *testing.T) {
	res := textResult("hello")
	gt.A(t, res.Content).Length(1)
}
