package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/domain/errors"

	"github.com/google/uuid"
)

type factCheckRow struct {
	state            string
	publishedContent string
}

type Store struct {
	mu sync.RWMutex

	corrections  map[string]entities.Correction
	applications map[string][]entities.CorrectionApplication // fact check id -> ascending versions
	factChecks   map[string]factCheckRow
}

func NewStore() *Store {
	return &Store{
		corrections:  make(map[string]entities.Correction),
		applications: make(map[string][]entities.CorrectionApplication),
		factChecks:   make(map[string]factCheckRow),
	}
}

// SetFactCheckState seeds the workflow projection for tests and in-memory
// wiring.
func (s *Store) SetFactCheckState(factCheckID string, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.factChecks[strings.TrimSpace(factCheckID)]
	row.state = state
	s.factChecks[strings.TrimSpace(factCheckID)] = row
}

func (s *Store) PublishedContent(factCheckID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.factChecks[strings.TrimSpace(factCheckID)].publishedContent
}

func (s *Store) State(_ context.Context, factCheckID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, exists := s.factChecks[strings.TrimSpace(factCheckID)]
	if !exists {
		return "", false, nil
	}
	return row.state, true, nil
}

func (s *Store) CreateCorrection(_ context.Context, correction entities.Correction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.corrections[correction.CorrectionID] = correction
	return nil
}

func (s *Store) GetCorrection(_ context.Context, correctionID string) (entities.Correction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	correction, exists := s.corrections[strings.TrimSpace(correctionID)]
	if !exists {
		return entities.Correction{}, domainerrors.ErrCorrectionNotFound
	}
	return correction, nil
}

func (s *Store) ListPendingCorrections(_ context.Context) ([]entities.Correction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Correction, 0, 8)
	for _, correction := range s.corrections {
		if correction.Status == entities.CorrectionPending {
			items = append(items, correction)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Type.SeverityRank() != items[j].Type.SeverityRank() {
			return items[i].Type.SeverityRank() < items[j].Type.SeverityRank()
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) UpdateCorrection(_ context.Context, correction entities.Correction, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.corrections[correction.CorrectionID]
	if !exists {
		return domainerrors.ErrCorrectionNotFound
	}
	if existing.RowVersion != expectedVersion {
		return domainerrors.ErrConflict
	}
	s.corrections[correction.CorrectionID] = correction
	return nil
}

func (s *Store) ApplyCorrection(
	_ context.Context,
	correction entities.Correction,
	expectedVersion int64,
	application entities.CorrectionApplication,
	publishedContent string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.corrections[correction.CorrectionID]
	if !exists {
		return domainerrors.ErrCorrectionNotFound
	}
	if existing.RowVersion != expectedVersion {
		return domainerrors.ErrConflict
	}
	s.corrections[correction.CorrectionID] = correction
	s.applications[application.FactCheckID] = append(s.applications[application.FactCheckID], application)
	row := s.factChecks[application.FactCheckID]
	row.publishedContent = publishedContent
	s.factChecks[application.FactCheckID] = row
	return nil
}

func (s *Store) LastApplicationVersion(_ context.Context, factCheckID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chain := s.applications[strings.TrimSpace(factCheckID)]
	if len(chain) == 0 {
		return 0, nil
	}
	return chain[len(chain)-1].Version, nil
}

func (s *Store) ListApplications(_ context.Context, factCheckID string) ([]entities.CorrectionApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]entities.CorrectionApplication(nil), s.applications[strings.TrimSpace(factCheckID)]...), nil
}

func (s *Store) CountOverdue(_ context.Context, now time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, correction := range s.corrections {
		if correction.Status == entities.CorrectionPending && entities.SLAOverdue(correction.SLADeadline, now) {
			count++
		}
	}
	return count, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
