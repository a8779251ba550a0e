package model

// Vitals is the optional measurement block nested in a visit record
type Vitals struct {
	SystolicBP  int `json:"systolic_bp"`
	DiastolicBP int `json:"diastolic_bp"`
	HeartRate   int `json:"heart_rate"`
}

// Visit is one clinical encounter. Visits reference patients by PatientID;
// orphan visits are tolerated and simply never matched by queries.
type Visit struct {
	PatientID string  `json:"patient_id"`
	VisitDate string  `json:"visit_date"`
	VisitType string  `json:"visit_type"`
	Reason    string  `json:"reason"`
	Diagnosis string  `json:"diagnosis"`
	Vitals    *Vitals `json:"vitals,omitempty"`
}
