package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/events"
)

func testEnvelope(eventID string) (events.Envelope, error) {
	return events.Envelope{
		EventID:      eventID,
		EventType:    "fact_check.state_changed",
		OccurredAt:   time.Now().UTC(),
		PartitionKey: "fc-1",
		Data:         []byte(`{"fact_check_id":"fc-1"}`),
	}, nil
}

func TestApplyTransitionStaleVersionConflicts(t *testing.T) {
	store := NewStore(nil)
	factCheck := entities.FactCheck{
		FactCheckID:  "fc-1",
		SubmissionID: "sub-1",
		CurrentState: entities.StateSubmitted,
		StateVersion: 1,
	}
	if err := store.CreateFactCheck(context.Background(), factCheck, entities.WorkflowHistoryItem{
		HistoryID:   "hist-0",
		FactCheckID: "fc-1",
		ToState:     entities.StateSubmitted,
	}, events.Envelope{}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Two writers read version 1; the second apply must lose.
	first := factCheck
	first.CurrentState = entities.StateQueued
	first.StateVersion = 2
	if err := store.ApplyTransition(context.Background(), first, 1, entities.WorkflowHistoryItem{
		HistoryID:   "hist-1",
		FactCheckID: "fc-1",
		FromState:   entities.StateSubmitted,
		ToState:     entities.StateQueued,
	}, events.Envelope{}); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}

	second := factCheck
	second.CurrentState = entities.StateDuplicateDetected
	second.StateVersion = 2
	err := store.ApplyTransition(context.Background(), second, 1, entities.WorkflowHistoryItem{
		HistoryID:   "hist-2",
		FactCheckID: "fc-1",
		FromState:   entities.StateSubmitted,
		ToState:     entities.StateDuplicateDetected,
	}, events.Envelope{})
	if !errors.Is(err, domainerrors.ErrConflict) {
		t.Fatalf("expected conflict for stale version, got %v", err)
	}

	current, err := store.GetFactCheck(context.Background(), "fc-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if current.CurrentState != entities.StateQueued {
		t.Fatalf("losing writer must not overwrite state, got %s", current.CurrentState)
	}
	history, _ := store.ListHistory(context.Background(), "fc-1")
	if len(history) != 2 {
		t.Fatalf("losing writer must not append history, got %d items", len(history))
	}
}

func TestOutboxPendingAndPublishedLifecycle(t *testing.T) {
	store := NewStore(nil)
	envelope, _ := testEnvelope("evt-1")
	if err := store.CreateFactCheck(context.Background(), entities.FactCheck{
		FactCheckID:  "fc-1",
		SubmissionID: "sub-1",
		CurrentState: entities.StateSubmitted,
		StateVersion: 1,
	}, entities.WorkflowHistoryItem{
		HistoryID:   "hist-0",
		FactCheckID: "fc-1",
		ToState:     entities.StateSubmitted,
	}, envelope); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].OutboxID != "evt-1" {
		t.Fatalf("expected one pending row evt-1, got %+v", pending)
	}

	if err := store.MarkOutboxPublished(context.Background(), "evt-1", time.Now().UTC()); err != nil {
		t.Fatalf("mark published failed: %v", err)
	}
	pending, _ = store.ListPendingOutbox(context.Background(), 10)
	if len(pending) != 0 {
		t.Fatalf("expected no pending rows after publish, got %d", len(pending))
	}
}
