package assist

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/medlar/pkg/model"
)

// systemPrompt frames the assistant for Gemini sessions, including the
// live data context so the model knows which patients and datasets exist.
func (s *Session) systemPrompt() string {
	var sb strings.Builder
	sb.WriteString(`You are a medical assistant for healthcare providers with access to patient data tools.

`)
	sb.WriteString(s.dataContext())
	sb.WriteString(`

RESPONSE GUIDELINES:
1. Be CONCISE and SUMMARIZED unless specifically asked for detailed information
2. For patient data queries: use the available tools and provide key metrics with brief clinical insights
3. For general medical questions: give essential information in bullet points
4. Always include brief medical disclaimers
5. Use clinical terminology appropriate for medical providers
6. If asked for "detailed" or "comprehensive" analysis, then provide full information

Provide focused, professional responses suitable for busy medical providers.`)
	return sb.String()
}

// plainPrompt is the no-tools variant used by providers without function
// calling
func (s *Session) plainPrompt(query string) string {
	return s.systemPrompt() + "\n\nUSER QUERY: \"" + query + "\"\n"
}

// dataContext summarizes what is loaded in the store
func (s *Session) dataContext() string {
	var lines []string

	patients := s.store.Patients()
	if len(patients) > 0 {
		lines = append(lines, "PATIENTS IN SYSTEM:")
		for _, p := range patients {
			conditions := "None"
			if len(p.Conditions) > 0 {
				conditions = strings.Join(p.Conditions, ", ")
			}
			lines = append(lines, fmt.Sprintf("- %s, %dyo %s, Conditions: %s",
				p.Name(), p.Age, p.Gender, conditions))
		}
	}

	totalVisits := 0
	for _, p := range patients {
		totalVisits += len(s.store.Visits(p.PatientID))
	}
	lines = append(lines, fmt.Sprintf("\nMEDICAL VISITS: %d visits recorded", totalVisits))

	var wearableLines []string
	for _, kind := range model.WearableKinds() {
		ds := s.store.Wearable(kind)
		if ds.Empty() {
			continue
		}
		wearableLines = append(wearableLines,
			fmt.Sprintf("- %s data: %d records", kind.Label(), len(ds.Rows)))
	}
	if len(wearableLines) > 0 {
		lines = append(lines, "\nWHOOP DATA AVAILABLE:")
		lines = append(lines, wearableLines...)
	}

	return strings.Join(lines, "\n")
}
