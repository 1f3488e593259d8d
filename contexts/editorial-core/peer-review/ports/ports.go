package ports

import (
	"context"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/domain/entities"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/events"
)

type Repository interface {
	// CreateRound persists the round and its pending decision slots in one
	// atomic step.
	CreateRound(ctx context.Context, round entities.ReviewRound, reviews []entities.PeerReview) error
	GetOpenRound(ctx context.Context, factCheckID string) (entities.ReviewRound, bool, error)
	CountRounds(ctx context.Context, factCheckID string) (int, error)
	CloseRound(ctx context.Context, roundID string, closedAt time.Time) error
	GetReview(ctx context.Context, roundID string, reviewerID string) (entities.PeerReview, bool, error)
	ListRoundReviews(ctx context.Context, roundID string) ([]entities.PeerReview, error)
	// UpdateDecision applies the reviewer's verdict guarded by the expected
	// row version; a stale version surfaces as the domain conflict error.
	UpdateDecision(ctx context.Context, review entities.PeerReview, expectedVersion int64) error
}

// ReviewerDirectory resolves the reviewer set assigned to a submission. It is
// a projection of the intake module; the coordinator never mutates it.
type ReviewerDirectory interface {
	ListAssignedReviewers(ctx context.Context, submissionID string) ([]string, error)
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, events.Envelope) error) error
}

type EventDedupStore interface {
	ReserveEvent(ctx context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
