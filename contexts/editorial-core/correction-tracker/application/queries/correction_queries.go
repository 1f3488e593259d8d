package queries

import (
	"context"
	"strings"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/ports"
)

// TriageItem decorates a pending correction with its live SLA derivation.
type TriageItem struct {
	Correction    entities.Correction
	DaysRemaining int
	Overdue       bool
}

type CorrectionQueries struct {
	Repository ports.Repository
	Clock      ports.Clock
}

// TriageList returns pending corrections in working order: substantial
// first, then update, then minor, oldest first within a type.
func (q CorrectionQueries) TriageList(ctx context.Context) ([]TriageItem, error) {
	pending, err := q.Repository.ListPendingCorrections(ctx)
	if err != nil {
		return nil, err
	}
	now := q.now()
	items := make([]TriageItem, 0, len(pending))
	for _, correction := range pending {
		items = append(items, TriageItem{
			Correction:    correction,
			DaysRemaining: entities.SLADaysRemaining(correction.SLADeadline, now),
			Overdue:       entities.SLAOverdue(correction.SLADeadline, now),
		})
	}
	return items, nil
}

func (q CorrectionQueries) GetCorrection(ctx context.Context, correctionID string) (entities.Correction, error) {
	correctionID = strings.TrimSpace(correctionID)
	if correctionID == "" {
		return entities.Correction{}, domainerrors.ErrInvalidCorrectionInput
	}
	return q.Repository.GetCorrection(ctx, correctionID)
}

// ApplicationHistory lists applied corrections for a fact-check in ascending
// version order.
func (q CorrectionQueries) ApplicationHistory(ctx context.Context, factCheckID string) ([]entities.CorrectionApplication, error) {
	factCheckID = strings.TrimSpace(factCheckID)
	if factCheckID == "" {
		return nil, domainerrors.ErrInvalidCorrectionInput
	}
	return q.Repository.ListApplications(ctx, factCheckID)
}

// OverdueCount feeds the SLA dashboard tile.
func (q CorrectionQueries) OverdueCount(ctx context.Context) (int, error) {
	return q.Repository.CountOverdue(ctx, q.now())
}

func (q CorrectionQueries) now() time.Time {
	now := time.Now().UTC()
	if q.Clock != nil {
		now = q.Clock.Now().UTC()
	}
	return now
}
