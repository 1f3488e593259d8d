package entities

import (
	"time"

	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

// FactCheck is the research artifact anchoring workflow state, peer reviews,
// ratings, and corrections. One fact-check per submission.
type FactCheck struct {
	FactCheckID      string
	SubmissionID     string
	CurrentState     WorkflowState
	StateVersion     int64
	ClaimSummary     string
	DraftContent     string
	PublishedContent string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// WorkflowHistoryItem is the append-only transition log record. The most
// recent item's ToState always equals the fact-check's current state.
type WorkflowHistoryItem struct {
	HistoryID   string
	FactCheckID string
	FromState   WorkflowState // empty on the intake item
	ToState     WorkflowState
	ActorID     string
	ActorRole   identity.Role
	Reason      string
	Metadata    map[string]any
	CreatedAt   time.Time
}
