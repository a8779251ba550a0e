package medquery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/medlar/pkg/model"
	"github.com/m-mizutani/medlar/pkg/tool"
	"github.com/m-mizutani/medlar/pkg/tool/medquery"
)

// fakeLLM records the last prompt and returns a canned response
type fakeLLM struct {
	prompt   string
	response string
	err      error
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func TestQuerySchema(t *testing.T) {
	q := medquery.NewQuery(nil)
	desc := q.Descriptor()

	gt.Equal(t, desc.Name, "medical_query")
	gt.Equal(t, desc.Category, model.CategoryGeneral)
	gt.True(t, desc.Enabled)
	gt.Map(t, desc.InputSchema.Properties).HasKey("question")
	gt.Map(t, desc.InputSchema.Properties).HasKey("context")
	gt.Equal(t, desc.InputSchema.Required, []string{"question"})
}

func TestQueryExecute(t *testing.T) {
	llm := &fakeLLM{response: "Stay hydrated."}
	q := medquery.NewQuery(llm)

	out, err := q.Execute(t.Context(), map[string]any{
		"question": "How much water should an adult drink?",
		"context":  "Patient is 34 years old",
	})
	gt.NoError(t, err)
	gt.Equal(t, out, "Stay hydrated.")

	gt.S(t, llm.prompt).Contains("medical data assistant")
	gt.S(t, llm.prompt).Contains("Question: How much water should an adult drink?")
	gt.S(t, llm.prompt).Contains("Additional context: Patient is 34 years old")
}

func TestQueryUpstreamFailure(t *testing.T) {
	llm := &fakeLLM{err: goerr.New("connection refused")}
	q := medquery.NewQuery(llm)

	_, err := q.Execute(t.Context(), map[string]any{"question": "anything"})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, tool.ErrUpstream))
}

func TestSymptomCheckerSchema(t *testing.T) {
	s := medquery.NewSymptomChecker(nil)
	desc := s.Descriptor()

	gt.Equal(t, desc.Name, "symptom_checker")
	gt.Map(t, desc.InputSchema.Properties).HasKey("symptoms")
	gt.Map(t, desc.InputSchema.Properties).HasKey("age")
	gt.Map(t, desc.InputSchema.Properties).HasKey("gender")
	gt.Equal(t, desc.InputSchema.Required, []string{"symptoms"})

	age := desc.InputSchema.Properties["age"]
	gt.NotNil(t, age.Minimum)
	gt.Equal(t, *age.Minimum, 0.0)
	gt.NotNil(t, age.Maximum)
	gt.Equal(t, *age.Maximum, 120.0)
}

func TestSymptomCheckerExecute(t *testing.T) {
	llm := &fakeLLM{response: "General guidance follows."}
	s := medquery.NewSymptomChecker(llm)

	out, err := s.Execute(t.Context(), map[string]any{
		"symptoms": []any{"fever", "cough"},
		"age":      float64(34),
		"gender":   "female",
	})
	gt.NoError(t, err)
	gt.Equal(t, out, "General guidance follows.")

	gt.S(t, llm.prompt).Contains("Symptoms: fever, cough")
	gt.S(t, llm.prompt).Contains("Age: 34")
	gt.S(t, llm.prompt).Contains("Gender: female")
	gt.S(t, llm.prompt).Contains("Red flags")
}

func TestSymptomCheckerAcceptsStringSlice(t *testing.T) {
	llm := &fakeLLM{response: "ok"}
	s := medquery.NewSymptomChecker(llm)

	_, err := s.Execute(t.Context(), map[string]any{"symptoms": []string{"headache"}})
	gt.NoError(t, err)
	gt.S(t, llm.prompt).Contains("Symptoms: headache")
}

func TestSymptomCheckerEmptySymptoms(t *testing.T) {
	s := medquery.NewSymptomChecker(&fakeLLM{})

	out, err := s.Execute(t.Context(), map[string]any{"symptoms": []any{}})
	gt.NoError(t, err)
	gt.Equal(t, out, "Error: No symptoms provided")
}
