package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/domain/errors"

	"github.com/google/uuid"
)

type dedupRecord struct {
	payloadHash string
	expiresAt   time.Time
}

type Store struct {
	mu sync.RWMutex

	rounds    map[string]entities.ReviewRound
	reviews   map[string]entities.PeerReview // keyed by review id
	reviewers map[string][]string            // submission id -> assigned reviewer ids
	dedup     map[string]dedupRecord
}

func NewStore() *Store {
	return &Store{
		rounds:    make(map[string]entities.ReviewRound),
		reviews:   make(map[string]entities.PeerReview),
		reviewers: make(map[string][]string),
		dedup:     make(map[string]dedupRecord),
	}
}

// SetAssignedReviewers seeds the reviewer directory projection for tests and
// in-memory wiring.
func (s *Store) SetAssignedReviewers(submissionID string, reviewerIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reviewers[strings.TrimSpace(submissionID)] = append([]string(nil), reviewerIDs...)
}

func (s *Store) ListAssignedReviewers(_ context.Context, submissionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.reviewers[strings.TrimSpace(submissionID)]...), nil
}

func (s *Store) CreateRound(_ context.Context, round entities.ReviewRound, reviews []entities.PeerReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.rounds {
		if existing.FactCheckID == round.FactCheckID && existing.Status == entities.RoundOpen {
			return domainerrors.ErrRoundActive
		}
	}
	s.rounds[round.RoundID] = round
	for _, review := range reviews {
		s.reviews[review.ReviewID] = review
	}
	return nil
}

func (s *Store) GetOpenRound(_ context.Context, factCheckID string) (entities.ReviewRound, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, round := range s.rounds {
		if round.FactCheckID == strings.TrimSpace(factCheckID) && round.Status == entities.RoundOpen {
			return round, true, nil
		}
	}
	return entities.ReviewRound{}, false, nil
}

func (s *Store) CountRounds(_ context.Context, factCheckID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, round := range s.rounds {
		if round.FactCheckID == strings.TrimSpace(factCheckID) {
			count++
		}
	}
	return count, nil
}

func (s *Store) CloseRound(_ context.Context, roundID string, closedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, exists := s.rounds[strings.TrimSpace(roundID)]
	if !exists {
		return domainerrors.ErrNoActiveRound
	}
	closed := closedAt.UTC()
	round.Status = entities.RoundClosed
	round.ClosedAt = &closed
	s.rounds[round.RoundID] = round
	return nil
}

func (s *Store) GetReview(_ context.Context, roundID string, reviewerID string) (entities.PeerReview, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, review := range s.reviews {
		if review.RoundID == strings.TrimSpace(roundID) && review.ReviewerID == strings.TrimSpace(reviewerID) {
			return review, true, nil
		}
	}
	return entities.PeerReview{}, false, nil
}

func (s *Store) ListRoundReviews(_ context.Context, roundID string) ([]entities.PeerReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.PeerReview, 0, 4)
	for _, review := range s.reviews {
		if review.RoundID == strings.TrimSpace(roundID) {
			items = append(items, review)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ReviewerID < items[j].ReviewerID
	})
	return items, nil
}

func (s *Store) UpdateDecision(_ context.Context, review entities.PeerReview, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.reviews[review.ReviewID]
	if !exists {
		return domainerrors.ErrNotAReviewer
	}
	if existing.RowVersion != expectedVersion {
		return domainerrors.ErrConflict
	}
	s.reviews[review.ReviewID] = review
	return nil
}

func (s *Store) ReserveEvent(_ context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record, exists := s.dedup[eventID]; exists && record.payloadHash == payloadHash {
		return true, nil
	}
	s.dedup[eventID] = dedupRecord{payloadHash: payloadHash, expiresAt: expiresAt.UTC()}
	return false, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
