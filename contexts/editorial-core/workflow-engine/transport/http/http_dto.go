package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StartFactCheckRequest struct {
	SubmissionID string `json:"submission_id"`
	ClaimSummary string `json:"claim_summary,omitempty"`
}

type TransitionRequest struct {
	ToState  string         `json:"to_state"`
	Reason   string         `json:"reason,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type FactCheckResponse struct {
	FactCheckID  string `json:"fact_check_id"`
	SubmissionID string `json:"submission_id"`
	State        string `json:"state"`
	StateVersion int64  `json:"state_version"`
	Label        string `json:"label"`
	Color        string `json:"color"`
	Terminal     bool   `json:"terminal"`
}

type TransitionResponse struct {
	FactCheck FactCheckResponse   `json:"fact_check"`
	History   HistoryItemResponse `json:"history_item"`
}

type HistoryItemResponse struct {
	HistoryID string         `json:"history_id"`
	FromState string         `json:"from_state,omitempty"`
	ToState   string         `json:"to_state"`
	ActorID   string         `json:"actor_id"`
	ActorRole string         `json:"actor_role"`
	Reason    string         `json:"reason,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type HistoryResponse struct {
	FactCheckID string                `json:"fact_check_id"`
	Items       []HistoryItemResponse `json:"items"`
}

type TransitionOptionResponse struct {
	ToState        string `json:"to_state"`
	Label          string `json:"label"`
	ReasonRequired bool   `json:"reason_required"`
}

type ValidTransitionsResponse struct {
	FactCheckID string                     `json:"fact_check_id"`
	State       string                     `json:"state"`
	Options     []TransitionOptionResponse `json:"options"`
}
