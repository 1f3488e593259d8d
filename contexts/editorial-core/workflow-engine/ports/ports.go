package ports

import (
	"context"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/entities"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/events"
)

type Repository interface {
	// CreateFactCheck persists the fact-check, its intake history item, and
	// the outbox row for event in one atomic step. A zero-valued envelope
	// (empty EventID) skips the outbox row.
	CreateFactCheck(ctx context.Context, factCheck entities.FactCheck, intake entities.WorkflowHistoryItem, event events.Envelope) error
	GetFactCheck(ctx context.Context, factCheckID string) (entities.FactCheck, error)
	GetFactCheckBySubmission(ctx context.Context, submissionID string) (entities.FactCheck, bool, error)
	// ApplyTransition persists the new state pointer, the history item, and
	// the outbox row for event in one atomic step, guarded by the expected
	// state version. A stale version surfaces as the domain conflict error;
	// a zero-valued envelope skips the outbox row.
	ApplyTransition(ctx context.Context, factCheck entities.FactCheck, expectedVersion int64, item entities.WorkflowHistoryItem, event events.Envelope) error
	ListHistory(ctx context.Context, factCheckID string) ([]entities.WorkflowHistoryItem, error)
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
