package httptransport

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateSubmissionRequest struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

type AssignReviewerRequest struct {
	ReviewerID string `json:"reviewer_id"`
}

type SubmissionResponse struct {
	SubmissionID string    `json:"submission_id"`
	Kind         string    `json:"kind"`
	Content      string    `json:"content"`
	SubmitterID  string    `json:"submitter_id"`
	Status       string    `json:"status"`
	Reviewers    []string  `json:"reviewers"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
