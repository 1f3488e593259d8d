package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	ratings    map[string][]entities.RatingVersion // fact check id -> ascending versions
	factChecks map[string]string                   // fact check id -> workflow state
}

func NewStore() *Store {
	return &Store{
		ratings:    make(map[string][]entities.RatingVersion),
		factChecks: make(map[string]string),
	}
}

// SetFactCheckState seeds the workflow projection for tests and in-memory
// wiring.
func (s *Store) SetFactCheckState(factCheckID string, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.factChecks[strings.TrimSpace(factCheckID)] = state
}

func (s *Store) State(_ context.Context, factCheckID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, exists := s.factChecks[strings.TrimSpace(factCheckID)]
	return state, exists, nil
}

func (s *Store) CurrentRating(_ context.Context, factCheckID string) (entities.RatingVersion, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rating := range s.ratings[strings.TrimSpace(factCheckID)] {
		if rating.IsCurrent {
			return rating, true, nil
		}
	}
	return entities.RatingVersion{}, false, nil
}

func (s *Store) AppendRating(_ context.Context, next entities.RatingVersion, previousID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chain := s.ratings[next.FactCheckID]
	currentID := ""
	currentIdx := -1
	for i, rating := range chain {
		if rating.IsCurrent {
			currentID = rating.RatingID
			currentIdx = i
		}
	}
	if currentID != previousID {
		return domainerrors.ErrConflict
	}
	if currentIdx >= 0 {
		chain[currentIdx].IsCurrent = false
	}
	s.ratings[next.FactCheckID] = append(chain, next)
	return nil
}

func (s *Store) ListRatings(_ context.Context, factCheckID string) ([]entities.RatingVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]entities.RatingVersion(nil), s.ratings[strings.TrimSpace(factCheckID)]...), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
