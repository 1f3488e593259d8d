package httptransport

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AssignRatingRequest struct {
	Rating        string `json:"rating"`
	Justification string `json:"justification"`
}

type RatingResponse struct {
	RatingID      string    `json:"rating_id"`
	FactCheckID   string    `json:"fact_check_id"`
	Rating        string    `json:"rating"`
	Justification string    `json:"justification"`
	Version       int       `json:"version"`
	IsCurrent     bool      `json:"is_current"`
	AssignedBy    string    `json:"assigned_by"`
	CreatedAt     time.Time `json:"created_at"`
}

type RatingHistoryResponse struct {
	FactCheckID string           `json:"fact_check_id"`
	Items       []RatingResponse `json:"items"`
}
