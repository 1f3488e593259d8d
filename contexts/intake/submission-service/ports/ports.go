package ports

import (
	"context"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/domain/entities"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/events"
)

type Repository interface {
	CreateSubmission(ctx context.Context, submission entities.Submission) error
	GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error)
	// AddReviewer fails with the already-assigned sentinel on duplicates.
	AddReviewer(ctx context.Context, submissionID string, reviewerID string, assignedAt time.Time) error
	// RemoveReviewer fails with the not-assigned sentinel when absent.
	RemoveReviewer(ctx context.Context, submissionID string, reviewerID string) error
	// ListAssignedReviewers satisfies the peer review coordinator's reviewer
	// directory; the set is unordered.
	ListAssignedReviewers(ctx context.Context, submissionID string) ([]string, error)
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, event events.Envelope) error
}

type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
