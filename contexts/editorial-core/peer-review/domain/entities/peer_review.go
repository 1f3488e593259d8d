package entities

import "time"

type DecisionStatus string

const (
	DecisionPending  DecisionStatus = "pending"
	DecisionApproved DecisionStatus = "approved"
	DecisionRejected DecisionStatus = "rejected"
)

type RoundStatus string

const (
	RoundOpen   RoundStatus = "open"
	RoundClosed RoundStatus = "closed"
)

// ReviewRound is one peer-review pass over a fact-check. The reviewer set is
// fixed at round start; re-entering peer_review opens a new round with an
// incremented number.
type ReviewRound struct {
	RoundID     string
	FactCheckID string
	RoundNumber int
	Status      RoundStatus
	CreatedAt   time.Time
	ClosedAt    *time.Time
}

// PeerReview is one reviewer's decision slot in a round. The row is created
// pending at round start and mutated exactly once by the reviewer's decision.
type PeerReview struct {
	ReviewID    string
	RoundID     string
	FactCheckID string
	ReviewerID  string
	Status      DecisionStatus
	Comments    string
	RowVersion  int64
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ConsensusStatus is the pure aggregate over a round's decisions.
type ConsensusStatus struct {
	FactCheckID      string
	RoundID          string
	RoundNumber      int
	MinReviewers     int
	ApprovedCount    int
	RejectedCount    int
	PendingCount     int
	ConsensusReached bool
	Approved         bool
}
