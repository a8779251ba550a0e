package web

import (
	"net/http"

	"github.com/m-mizutani/medlar/pkg/model"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if !s.verify(username, password) {
		s.logger.Warn("login failed", "username", username)
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	sess := s.sessions.Create(username, sessionTTL)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    string(sess.ID),
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(sessionTTL.Seconds()),
	})

	s.logger.Info("login", "username", username)
	writeJSON(w, http.StatusOK, map[string]string{"user": username})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.Delete(model.SessionID(cookie.Value))
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"patients": len(s.store.Patients()),
		"tools":    len(s.registry.Descriptors()),
	})
}

type medicalQueryRequest struct {
	Question string `json:"question"`
	Context  string `json:"context,omitempty"`
}

func (s *Server) handleMedicalQuery(w http.ResponseWriter, r *http.Request) {
	var req medicalQueryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	args := map[string]any{"question": req.Question}
	if req.Context != "" {
		args["context"] = req.Context
	}

	text := s.registry.Dispatch(r.Context(), "medical_query", args)
	writeJSON(w, http.StatusOK, map[string]string{
		"response": text,
		"user":     r.Header.Get(userHeader),
	})
}

type symptomCheckRequest struct {
	Symptoms []string `json:"symptoms"`
	Age      *int     `json:"age,omitempty"`
	Gender   string   `json:"gender,omitempty"`
}

func (s *Server) handleSymptomCheck(w http.ResponseWriter, r *http.Request) {
	var req symptomCheckRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	args := map[string]any{"symptoms": req.Symptoms}
	if req.Age != nil {
		args["age"] = *req.Age
	}
	if req.Gender != "" {
		args["gender"] = req.Gender
	}

	text := s.registry.Dispatch(r.Context(), "symptom_checker", args)
	writeJSON(w, http.StatusOK, map[string]string{
		"response": text,
		"user":     r.Header.Get(userHeader),
	})
}

type patientQueryRequest struct {
	PatientIdentifier string `json:"patient_identifier"`
	QueryType         string `json:"query_type"`
	Days              *int   `json:"days,omitempty"`
}

// queryTypeTools maps the web API's query_type values onto registry tools
var queryTypeTools = map[string]string{
	"overview": "get_patient_overview",
	"visits":   "get_patient_visits",
	"sleep":    "get_patient_whoop_sleep_data",
	"activity": "get_patient_whoop_activity_data",
	"cycle":    "get_patient_whoop_physiological_cycle_data",
	"journal":  "get_patient_whoop_journal_data",
}

func (s *Server) handlePatientQuery(w http.ResponseWriter, r *http.Request) {
	var req patientQueryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	toolName, ok := queryTypeTools[req.QueryType]
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown query type: "+req.QueryType)
		return
	}

	args := map[string]any{"patient_identifier": req.PatientIdentifier}
	if req.Days != nil {
		args["days"] = *req.Days
	}

	text := s.registry.Dispatch(r.Context(), toolName, args)
	writeJSON(w, http.StatusOK, map[string]string{
		"response": text,
		"user":     r.Header.Get(userHeader),
	})
}
