package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/application"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/ports"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/events"
)

// OutboxRelay publishes persisted workflow outbox records to the event bus.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce publishes a bounded batch of pending outbox rows and marks each row
// published only after bus publish succeeds. It stops on the first failure so
// the retry loop can reprocess remaining rows safely.
func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("workflow outbox list failed",
			"event", "workflow_outbox_list_failed",
			"module", "editorial-core/workflow-engine",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		var event events.Envelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("workflow outbox decode failed",
				"event", "workflow_outbox_decode_failed",
				"module", "editorial-core/workflow-engine",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("workflow outbox publish failed",
				"event", "workflow_outbox_publish_failed",
				"module", "editorial-core/workflow-engine",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"event_id", event.EventID,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			logger.Error("workflow outbox mark published failed",
				"event", "workflow_outbox_mark_published_failed",
				"module", "editorial-core/workflow-engine",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	logger.Info("workflow outbox relay cycle completed",
		"event", "workflow_outbox_relay_completed",
		"module", "editorial-core/workflow-engine",
		"layer", "worker",
		"published_count", len(pending),
	)
	return nil
}
