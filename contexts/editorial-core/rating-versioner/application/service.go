package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/ports"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

// finalApprovalState mirrors the workflow engine's final_approval state as
// seen through the projection. Ratings are assigned there and nowhere else.
const finalApprovalState = "final_approval"

const defaultMinJustificationLen = 50

// ResolveLogger guarantees a non-nil logger for application code paths.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// Service owns the verdict chain. Scale and MinJustificationLen come from
// policy config; zero values fall back to the platform defaults.
type Service struct {
	Repo                ports.Repository
	Workflow            ports.WorkflowReader
	Clock               ports.Clock
	IDGen               ports.IDGenerator
	Scale               []string
	MinJustificationLen int
	Logger              *slog.Logger
}

// AssignRating appends a new verdict version. Only super admins may assign,
// and only while the fact-check sits in final approval; the state gate
// applies to every role.
func (s Service) AssignRating(
	ctx context.Context,
	factCheckID string,
	actor identity.Actor,
	rating string,
	justification string,
) (entities.RatingVersion, error) {
	logger := ResolveLogger(s.Logger)
	factCheckID = strings.TrimSpace(factCheckID)
	rating = strings.TrimSpace(rating)
	justification = strings.TrimSpace(justification)
	if factCheckID == "" || strings.TrimSpace(actor.ID) == "" {
		return entities.RatingVersion{}, domainerrors.ErrInvalidRatingInput
	}
	if !s.inScale(rating) {
		return entities.RatingVersion{}, domainerrors.ErrInvalidRatingInput
	}
	if len(justification) < s.justificationFloor() {
		return entities.RatingVersion{}, domainerrors.ErrInvalidRatingInput
	}

	state, exists, err := s.Workflow.State(ctx, factCheckID)
	if err != nil {
		return entities.RatingVersion{}, err
	}
	if !exists || state != finalApprovalState {
		return entities.RatingVersion{}, domainerrors.ErrInvalidWorkflowState
	}
	if !actor.Role.AtLeast(identity.RoleSuperAdmin) {
		return entities.RatingVersion{}, domainerrors.ErrPermissionDenied
	}

	previous, hasPrevious, err := s.Repo.CurrentRating(ctx, factCheckID)
	if err != nil {
		return entities.RatingVersion{}, err
	}
	version := 1
	previousID := ""
	if hasPrevious {
		version = previous.Version + 1
		previousID = previous.RatingID
	}

	ratingID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.RatingVersion{}, err
	}
	next := entities.RatingVersion{
		RatingID:      ratingID,
		FactCheckID:   factCheckID,
		Rating:        rating,
		Justification: justification,
		Version:       version,
		IsCurrent:     true,
		AssignedBy:    strings.TrimSpace(actor.ID),
		CreatedAt:     s.now(),
	}
	if err := s.Repo.AppendRating(ctx, next, previousID); err != nil {
		return entities.RatingVersion{}, err
	}

	logger.Info("rating assigned",
		"event", "rating_assigned",
		"module", "editorial-core/rating-versioner",
		"layer", "application",
		"fact_check_id", factCheckID,
		"rating", rating,
		"version", version,
		"actor_id", actor.ID,
	)
	return next, nil
}

// CurrentRating returns the single current link, or the not-found sentinel
// when no rating has ever been assigned.
func (s Service) CurrentRating(ctx context.Context, factCheckID string) (entities.RatingVersion, error) {
	current, exists, err := s.Repo.CurrentRating(ctx, strings.TrimSpace(factCheckID))
	if err != nil {
		return entities.RatingVersion{}, err
	}
	if !exists {
		return entities.RatingVersion{}, domainerrors.ErrRatingNotFound
	}
	return current, nil
}

// RatingHistory returns the full chain in ascending version order.
func (s Service) RatingHistory(ctx context.Context, factCheckID string) ([]entities.RatingVersion, error) {
	return s.Repo.ListRatings(ctx, strings.TrimSpace(factCheckID))
}

func (s Service) inScale(rating string) bool {
	scale := s.Scale
	if len(scale) == 0 {
		scale = entities.DefaultScale
	}
	for _, value := range scale {
		if rating == value {
			return true
		}
	}
	return false
}

func (s Service) justificationFloor() int {
	if s.MinJustificationLen <= 0 {
		return defaultMinJustificationLen
	}
	return s.MinJustificationLen
}

func (s Service) now() time.Time {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}
	return now
}
