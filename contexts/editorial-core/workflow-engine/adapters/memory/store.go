package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/ports"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/events"

	"github.com/google/uuid"
)

type outboxRow struct {
	message   ports.OutboxMessage
	published bool
}

type Store struct {
	mu sync.RWMutex

	factChecks map[string]entities.FactCheck
	history    map[string][]entities.WorkflowHistoryItem
	outbox     []outboxRow
}

func NewStore(seed []entities.FactCheck) *Store {
	factChecks := make(map[string]entities.FactCheck, len(seed))
	for _, item := range seed {
		factChecks[item.FactCheckID] = item
	}
	return &Store{
		factChecks: factChecks,
		history:    make(map[string][]entities.WorkflowHistoryItem),
	}
}

func (s *Store) CreateFactCheck(
	_ context.Context,
	factCheck entities.FactCheck,
	intake entities.WorkflowHistoryItem,
	event events.Envelope,
) error {
	rows, err := outboxRowsFromEnvelope(event)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.factChecks {
		if existing.SubmissionID == factCheck.SubmissionID {
			return domainerrors.ErrFactCheckExists
		}
	}
	s.factChecks[factCheck.FactCheckID] = factCheck
	s.history[factCheck.FactCheckID] = append(s.history[factCheck.FactCheckID], intake)
	s.outbox = append(s.outbox, rows...)
	return nil
}

func (s *Store) GetFactCheck(_ context.Context, factCheckID string) (entities.FactCheck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.factChecks[strings.TrimSpace(factCheckID)]
	if !exists {
		return entities.FactCheck{}, domainerrors.ErrFactCheckNotFound
	}
	return item, nil
}

func (s *Store) GetFactCheckBySubmission(_ context.Context, submissionID string) (entities.FactCheck, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.factChecks {
		if item.SubmissionID == strings.TrimSpace(submissionID) {
			return item, true, nil
		}
	}
	return entities.FactCheck{}, false, nil
}

func (s *Store) ApplyTransition(
	_ context.Context,
	factCheck entities.FactCheck,
	expectedVersion int64,
	item entities.WorkflowHistoryItem,
	event events.Envelope,
) error {
	rows, err := outboxRowsFromEnvelope(event)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.factChecks[factCheck.FactCheckID]
	if !exists {
		return domainerrors.ErrFactCheckNotFound
	}
	if existing.StateVersion != expectedVersion {
		return domainerrors.ErrConflict
	}
	s.factChecks[factCheck.FactCheckID] = factCheck
	s.history[factCheck.FactCheckID] = append(s.history[factCheck.FactCheckID], item)
	s.outbox = append(s.outbox, rows...)
	return nil
}

func (s *Store) ListHistory(_ context.Context, factCheckID string) ([]entities.WorkflowHistoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := append([]entities.WorkflowHistoryItem(nil), s.history[strings.TrimSpace(factCheckID)]...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

// outboxRowsFromEnvelope marshals the event ahead of the map writes so the
// lock never covers a fallible step. A zero envelope yields no rows.
func outboxRowsFromEnvelope(envelope events.Envelope) ([]outboxRow, error) {
	if envelope.EventID == "" {
		return nil, nil
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return nil, err
	}
	return []outboxRow{{
		message: ports.OutboxMessage{
			OutboxID:  envelope.EventID,
			EventType: envelope.EventType,
			Payload:   payload,
			CreatedAt: envelope.OccurredAt,
		},
	}}, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.OutboxMessage, 0, limit)
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].message.OutboxID == outboxID {
			s.outbox[i].published = true
			return nil
		}
	}
	return domainerrors.ErrInvalidWorkflowInput
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
