package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/ports"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/events"

	"github.com/google/uuid"
)

type outboxRow struct {
	message   ports.OutboxMessage
	published bool
}

type Store struct {
	mu sync.RWMutex

	submissions map[string]entities.Submission
	reviewers   map[string]map[string]bool // submission id -> reviewer id set
	outbox      []outboxRow
}

func NewStore() *Store {
	return &Store{
		submissions: make(map[string]entities.Submission),
		reviewers:   make(map[string]map[string]bool),
	}
}

func (s *Store) CreateSubmission(_ context.Context, submission entities.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submissions[submission.SubmissionID] = submission
	s.reviewers[submission.SubmissionID] = make(map[string]bool)
	return nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	submission, exists := s.submissions[strings.TrimSpace(submissionID)]
	if !exists {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	submission.Reviewers = s.reviewerList(submission.SubmissionID)
	return submission, nil
}

func (s *Store) AddReviewer(_ context.Context, submissionID string, reviewerID string, assignedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	submissionID = strings.TrimSpace(submissionID)
	submission, exists := s.submissions[submissionID]
	if !exists {
		return domainerrors.ErrSubmissionNotFound
	}
	set := s.reviewers[submissionID]
	if set[reviewerID] {
		return domainerrors.ErrReviewerAlreadyAssigned
	}
	set[reviewerID] = true
	submission.UpdatedAt = assignedAt.UTC()
	s.submissions[submissionID] = submission
	return nil
}

func (s *Store) RemoveReviewer(_ context.Context, submissionID string, reviewerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	submissionID = strings.TrimSpace(submissionID)
	if _, exists := s.submissions[submissionID]; !exists {
		return domainerrors.ErrSubmissionNotFound
	}
	set := s.reviewers[submissionID]
	if !set[reviewerID] {
		return domainerrors.ErrReviewerNotAssigned
	}
	delete(set, reviewerID)
	return nil
}

func (s *Store) ListAssignedReviewers(_ context.Context, submissionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.reviewerList(strings.TrimSpace(submissionID)), nil
}

func (s *Store) reviewerList(submissionID string) []string {
	ids := make([]string, 0, len(s.reviewers[submissionID]))
	for reviewerID := range s.reviewers[submissionID] {
		ids = append(ids, reviewerID)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) AppendOutbox(_ context.Context, event events.Envelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.outbox = append(s.outbox, outboxRow{
		message: ports.OutboxMessage{
			OutboxID:  uuid.NewString(),
			EventType: event.EventType,
			Payload:   payload,
			CreatedAt: event.OccurredAt.UTC(),
		},
	})
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pending := make([]ports.OutboxMessage, 0, limit)
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		pending = append(pending, row.message)
		if limit > 0 && len(pending) >= limit {
			break
		}
	}
	return pending, nil
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
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
