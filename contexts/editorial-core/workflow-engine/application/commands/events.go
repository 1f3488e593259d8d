package commands

import (
	"encoding/json"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/internal/shared/events"
)

func newWorkflowEnvelope(
	eventID string,
	eventType string,
	factCheckID string,
	occurredAt time.Time,
	data map[string]any,
) (events.Envelope, error) {
	// Workflow events are partitioned by fact-check for stable ordering on
	// fact-check-scoped consumers.
	payload, err := json.Marshal(data)
	if err != nil {
		return events.Envelope{}, err
	}
	return events.Envelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "workflow-engine",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "fact_check_id",
		PartitionKey:     factCheckID,
		Data:             payload,
	}, nil
}
