package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/application"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/ports"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

// publishedState mirrors the workflow engine's published state value as seen
// through the projection.
const publishedState = "published"

type CorrectionUseCase struct {
	Repository ports.Repository
	FactChecks ports.FactCheckProjection
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Policy     application.Policy
	Logger     *slog.Logger
}

type SubmitCorrectionCommand struct {
	FactCheckID    string
	Type           entities.CorrectionType
	Details        string
	RequesterEmail string
}

// SubmitCorrection accepts a public correction request against a published
// fact-check. No actor role is required; anyone can flag an error.
func (uc CorrectionUseCase) SubmitCorrection(ctx context.Context, cmd SubmitCorrectionCommand) (entities.Correction, error) {
	logger := application.ResolveLogger(uc.Logger)
	factCheckID := strings.TrimSpace(cmd.FactCheckID)
	details := strings.TrimSpace(cmd.Details)
	if factCheckID == "" || !cmd.Type.Valid() {
		return entities.Correction{}, domainerrors.ErrInvalidCorrectionInput
	}
	if len(details) < uc.Policy.DetailsFloor() {
		return entities.Correction{}, domainerrors.ErrInvalidCorrectionInput
	}

	state, exists, err := uc.FactChecks.State(ctx, factCheckID)
	if err != nil {
		return entities.Correction{}, err
	}
	if !exists || state != publishedState {
		return entities.Correction{}, domainerrors.ErrFactCheckNotPublished
	}

	now := uc.now()
	correctionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Correction{}, err
	}
	correction := entities.Correction{
		CorrectionID:   correctionID,
		FactCheckID:    factCheckID,
		Type:           cmd.Type,
		Status:         entities.CorrectionPending,
		Details:        details,
		RequesterEmail: strings.TrimSpace(cmd.RequesterEmail),
		SLADeadline:    now.Add(time.Duration(uc.Policy.SLADays(cmd.Type)) * 24 * time.Hour),
		RowVersion:     1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.Repository.CreateCorrection(ctx, correction); err != nil {
		return entities.Correction{}, err
	}

	logger.Info("correction submitted",
		"event", "correction_submitted",
		"module", "editorial-core/correction-tracker",
		"layer", "application",
		"correction_id", correction.CorrectionID,
		"fact_check_id", factCheckID,
		"correction_type", string(cmd.Type),
		"sla_deadline", correction.SLADeadline,
	)
	return correction, nil
}

type ResolveCorrectionCommand struct {
	CorrectionID    string
	Actor           identity.Actor
	ResolutionNotes string
}

// AcceptCorrection moves a pending correction to accepted, queueing it for
// application.
func (uc CorrectionUseCase) AcceptCorrection(ctx context.Context, cmd ResolveCorrectionCommand) (entities.Correction, error) {
	return uc.resolve(ctx, cmd, entities.CorrectionAccepted)
}

// RejectCorrection closes a pending correction without content changes.
// Rejected is terminal.
func (uc CorrectionUseCase) RejectCorrection(ctx context.Context, cmd ResolveCorrectionCommand) (entities.Correction, error) {
	return uc.resolve(ctx, cmd, entities.CorrectionRejected)
}

func (uc CorrectionUseCase) resolve(
	ctx context.Context,
	cmd ResolveCorrectionCommand,
	target entities.CorrectionStatus,
) (entities.Correction, error) {
	logger := application.ResolveLogger(uc.Logger)
	correctionID := strings.TrimSpace(cmd.CorrectionID)
	notes := strings.TrimSpace(cmd.ResolutionNotes)
	if correctionID == "" || strings.TrimSpace(cmd.Actor.ID) == "" {
		return entities.Correction{}, domainerrors.ErrInvalidCorrectionInput
	}
	if !cmd.Actor.Role.AtLeast(identity.RoleAdmin) {
		return entities.Correction{}, domainerrors.ErrPermissionDenied
	}
	if len(notes) < uc.Policy.NotesFloor() {
		return entities.Correction{}, domainerrors.ErrInvalidCorrectionInput
	}

	correction, err := uc.Repository.GetCorrection(ctx, correctionID)
	if err != nil {
		return entities.Correction{}, err
	}
	if correction.Status != entities.CorrectionPending {
		return entities.Correction{}, domainerrors.ErrInvalidCorrectionState
	}

	expectedVersion := correction.RowVersion
	correction.Status = target
	correction.ResolutionNotes = notes
	correction.UpdatedAt = uc.now()
	correction.RowVersion = expectedVersion + 1
	if err := uc.Repository.UpdateCorrection(ctx, correction, expectedVersion); err != nil {
		return entities.Correction{}, err
	}

	logger.Info("correction resolved",
		"event", "correction_resolved",
		"module", "editorial-core/correction-tracker",
		"layer", "application",
		"correction_id", correction.CorrectionID,
		"fact_check_id", correction.FactCheckID,
		"status", string(target),
		"actor_id", cmd.Actor.ID,
	)
	return correction, nil
}

type ApplyCorrectionCommand struct {
	CorrectionID   string
	Actor          identity.Actor
	Changes        string
	ChangesSummary string
}

// ApplyCorrection lands an accepted correction: in one atomic repository step
// it records an immutable application row with the next gapless version for
// the fact-check, rewrites the published content, and marks the correction
// applied. A failure anywhere leaves the correction accepted and retryable.
func (uc CorrectionUseCase) ApplyCorrection(ctx context.Context, cmd ApplyCorrectionCommand) (entities.CorrectionApplication, error) {
	logger := application.ResolveLogger(uc.Logger)
	correctionID := strings.TrimSpace(cmd.CorrectionID)
	changes := strings.TrimSpace(cmd.Changes)
	summary := strings.TrimSpace(cmd.ChangesSummary)
	if correctionID == "" || strings.TrimSpace(cmd.Actor.ID) == "" || changes == "" {
		return entities.CorrectionApplication{}, domainerrors.ErrInvalidCorrectionInput
	}
	if !cmd.Actor.Role.AtLeast(identity.RoleAdmin) {
		return entities.CorrectionApplication{}, domainerrors.ErrPermissionDenied
	}
	if len(summary) < uc.Policy.SummaryFloor() {
		return entities.CorrectionApplication{}, domainerrors.ErrInvalidCorrectionInput
	}

	correction, err := uc.Repository.GetCorrection(ctx, correctionID)
	if err != nil {
		return entities.CorrectionApplication{}, err
	}
	if correction.Status != entities.CorrectionAccepted {
		return entities.CorrectionApplication{}, domainerrors.ErrInvalidCorrectionState
	}

	lastVersion, err := uc.Repository.LastApplicationVersion(ctx, correction.FactCheckID)
	if err != nil {
		return entities.CorrectionApplication{}, err
	}

	now := uc.now()
	applicationID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.CorrectionApplication{}, err
	}
	applied := entities.CorrectionApplication{
		ApplicationID:  applicationID,
		CorrectionID:   correction.CorrectionID,
		FactCheckID:    correction.FactCheckID,
		Version:        lastVersion + 1,
		AppliedBy:      strings.TrimSpace(cmd.Actor.ID),
		Changes:        changes,
		ChangesSummary: summary,
		AppliedAt:      now,
	}

	expectedVersion := correction.RowVersion
	correction.Status = entities.CorrectionApplied
	correction.UpdatedAt = now
	correction.RowVersion = expectedVersion + 1
	if err := uc.Repository.ApplyCorrection(ctx, correction, expectedVersion, applied, changes); err != nil {
		return entities.CorrectionApplication{}, err
	}

	logger.Info("correction applied",
		"event", "correction_applied",
		"module", "editorial-core/correction-tracker",
		"layer", "application",
		"correction_id", correction.CorrectionID,
		"fact_check_id", correction.FactCheckID,
		"version", applied.Version,
		"actor_id", cmd.Actor.ID,
	)
	return applied, nil
}

func (uc CorrectionUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
