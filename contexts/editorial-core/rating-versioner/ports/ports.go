package ports

import (
	"context"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/domain/entities"
)

type Repository interface {
	CurrentRating(ctx context.Context, factCheckID string) (entities.RatingVersion, bool, error)
	// AppendRating atomically flips the previous current link to non-current
	// and inserts the next one. previousID is empty for the first link. A
	// stale chain head surfaces as the domain conflict error.
	AppendRating(ctx context.Context, next entities.RatingVersion, previousID string) error
	ListRatings(ctx context.Context, factCheckID string) ([]entities.RatingVersion, error)
}

// WorkflowReader is a read-only projection of the workflow engine used to
// gate rating assignment on the fact-check's current state.
type WorkflowReader interface {
	State(ctx context.Context, factCheckID string) (string, bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
