package httptransport

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StartRoundRequest struct {
	FactCheckID  string `json:"fact_check_id"`
	SubmissionID string `json:"submission_id"`
}

type RoundResponse struct {
	RoundID     string     `json:"round_id"`
	FactCheckID string     `json:"fact_check_id"`
	RoundNumber int        `json:"round_number"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
}

type SubmitDecisionRequest struct {
	Approved bool   `json:"approved"`
	Comments string `json:"comments,omitempty"`
}

type ReviewResponse struct {
	ReviewID    string     `json:"review_id"`
	RoundID     string     `json:"round_id"`
	FactCheckID string     `json:"fact_check_id"`
	ReviewerID  string     `json:"reviewer_id"`
	Status      string     `json:"status"`
	Comments    string     `json:"comments,omitempty"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ConsensusResponse struct {
	FactCheckID      string `json:"fact_check_id"`
	RoundID          string `json:"round_id"`
	RoundNumber      int    `json:"round_number"`
	MinReviewers     int    `json:"min_reviewers"`
	ApprovedCount    int    `json:"approved_count"`
	RejectedCount    int    `json:"rejected_count"`
	PendingCount     int    `json:"pending_count"`
	ConsensusReached bool   `json:"consensus_reached"`
	Approved         bool   `json:"approved"`
}

type RoundReviewsResponse struct {
	RoundID string           `json:"round_id"`
	Items   []ReviewResponse `json:"items"`
}
