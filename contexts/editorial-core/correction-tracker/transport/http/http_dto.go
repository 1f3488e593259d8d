package httptransport

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitCorrectionRequest struct {
	Type           string `json:"type"`
	Details        string `json:"details"`
	RequesterEmail string `json:"requester_email,omitempty"`
}

type ResolveCorrectionRequest struct {
	ResolutionNotes string `json:"resolution_notes"`
}

type ApplyCorrectionRequest struct {
	Changes        string `json:"changes"`
	ChangesSummary string `json:"changes_summary"`
}

type CorrectionResponse struct {
	CorrectionID    string    `json:"correction_id"`
	FactCheckID     string    `json:"fact_check_id"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Details         string    `json:"details"`
	ResolutionNotes string    `json:"resolution_notes,omitempty"`
	SLADeadline     time.Time `json:"sla_deadline"`
	CreatedAt       time.Time `json:"created_at"`
}

type TriageItemResponse struct {
	Correction    CorrectionResponse `json:"correction"`
	DaysRemaining int                `json:"days_remaining"`
	Overdue       bool               `json:"overdue"`
}

type TriageResponse struct {
	Items []TriageItemResponse `json:"items"`
}

type ApplicationResponse struct {
	ApplicationID  string    `json:"application_id"`
	CorrectionID   string    `json:"correction_id"`
	FactCheckID    string    `json:"fact_check_id"`
	Version        int       `json:"version"`
	AppliedBy      string    `json:"applied_by"`
	ChangesSummary string    `json:"changes_summary"`
	AppliedAt      time.Time `json:"applied_at"`
}

type ApplicationHistoryResponse struct {
	FactCheckID string                `json:"fact_check_id"`
	Items       []ApplicationResponse `json:"items"`
}
