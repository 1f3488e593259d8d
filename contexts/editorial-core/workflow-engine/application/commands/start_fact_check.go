package commands

import (
	"context"
	"strings"
	"time"

	application "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/application"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

// StartFactCheckCommand opens the workflow for a submission once research
// begins. The fact-check starts in the submitted state with an intake history
// item.
type StartFactCheckCommand struct {
	SubmissionID string
	Actor        identity.Actor
	ClaimSummary string
}

func (uc WorkflowUseCase) StartFactCheck(ctx context.Context, cmd StartFactCheckCommand) (entities.FactCheck, error) {
	logger := application.ResolveLogger(uc.Logger)
	submissionID := strings.TrimSpace(cmd.SubmissionID)
	if submissionID == "" || strings.TrimSpace(cmd.Actor.ID) == "" {
		return entities.FactCheck{}, domainerrors.ErrInvalidWorkflowInput
	}
	if !cmd.Actor.Role.AtLeast(identity.RoleReviewer) {
		return entities.FactCheck{}, domainerrors.ErrPermissionDenied
	}

	if _, exists, err := uc.Repository.GetFactCheckBySubmission(ctx, submissionID); err != nil {
		return entities.FactCheck{}, err
	} else if exists {
		return entities.FactCheck{}, domainerrors.ErrFactCheckExists
	}

	now := uc.now()
	factCheckID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.FactCheck{}, err
	}
	historyID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.FactCheck{}, err
	}

	factCheck := entities.FactCheck{
		FactCheckID:  factCheckID,
		SubmissionID: submissionID,
		CurrentState: entities.StateSubmitted,
		StateVersion: 1,
		ClaimSummary: strings.TrimSpace(cmd.ClaimSummary),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	intake := entities.WorkflowHistoryItem{
		HistoryID:   historyID,
		FactCheckID: factCheckID,
		ToState:     entities.StateSubmitted,
		ActorID:     strings.TrimSpace(cmd.Actor.ID),
		ActorRole:   cmd.Actor.Role,
		CreatedAt:   now,
	}
	event, err := uc.stateEvent(ctx, "fact_check.started", factCheck, intake, now)
	if err != nil {
		return entities.FactCheck{}, err
	}
	if err := uc.Repository.CreateFactCheck(ctx, factCheck, intake, event); err != nil {
		return entities.FactCheck{}, err
	}

	logger.Info("fact check started",
		"event", "workflow_fact_check_started",
		"module", "editorial-core/workflow-engine",
		"layer", "application",
		"fact_check_id", factCheck.FactCheckID,
		"submission_id", factCheck.SubmissionID,
		"actor_id", intake.ActorID,
	)
	return factCheck, nil
}

func (uc WorkflowUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
