package ports

import (
	"context"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/domain/entities"
)

type Repository interface {
	CreateCorrection(ctx context.Context, correction entities.Correction) error
	GetCorrection(ctx context.Context, correctionID string) (entities.Correction, error)
	// ListPendingCorrections returns pending corrections in triage order:
	// severity first (substantial, update, minor), then oldest first.
	ListPendingCorrections(ctx context.Context) ([]entities.Correction, error)
	// UpdateCorrection applies the status change guarded by the expected row
	// version; a stale version surfaces as the domain conflict error.
	UpdateCorrection(ctx context.Context, correction entities.Correction, expectedVersion int64) error
	// ApplyCorrection atomically records the application row, moves the
	// correction to applied, and lands publishedContent on the fact-check,
	// guarded by the correction's row version. Either all three writes commit
	// or none do.
	ApplyCorrection(ctx context.Context, correction entities.Correction, expectedVersion int64, application entities.CorrectionApplication, publishedContent string) error
	LastApplicationVersion(ctx context.Context, factCheckID string) (int, error)
	ListApplications(ctx context.Context, factCheckID string) ([]entities.CorrectionApplication, error)
	CountOverdue(ctx context.Context, now time.Time) (int, error)
}

// FactCheckProjection is the correction tracker's read-only seam into the
// workflow engine's fact-checks. State reads gate intake; content writes ride
// the repository's atomic apply step instead.
type FactCheckProjection interface {
	State(ctx context.Context, factCheckID string) (string, bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
