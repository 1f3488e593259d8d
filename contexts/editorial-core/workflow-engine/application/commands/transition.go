package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/application"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/ports"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/events"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

// TransitionCommand is the write-model input for one workflow step.
type TransitionCommand struct {
	FactCheckID string
	Actor       identity.Actor
	ToState     entities.WorkflowState
	Reason      string
	Metadata    map[string]any
}

// TransitionResult carries the advanced fact-check and the appended history
// item back to the transport layer.
type TransitionResult struct {
	FactCheck entities.FactCheck
	History   entities.WorkflowHistoryItem
}

// WorkflowUseCase validates and applies workflow transitions. Every mutation
// is a validate-then-mutate step: the history item, the state pointer, and
// the outbox event land together, or nothing is persisted.
type WorkflowUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc WorkflowUseCase) Transition(ctx context.Context, cmd TransitionCommand) (TransitionResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	factCheckID := strings.TrimSpace(cmd.FactCheckID)
	logger.Info("workflow transition processing started",
		"event", "workflow_transition_started",
		"module", "editorial-core/workflow-engine",
		"layer", "application",
		"fact_check_id", factCheckID,
		"to_state", string(cmd.ToState),
		"actor_id", strings.TrimSpace(cmd.Actor.ID),
		"actor_role", string(cmd.Actor.Role),
	)

	if factCheckID == "" || strings.TrimSpace(cmd.Actor.ID) == "" || !cmd.Actor.Role.Valid() {
		return TransitionResult{}, domainerrors.ErrInvalidWorkflowInput
	}
	if !cmd.ToState.Valid() {
		return TransitionResult{}, domainerrors.ErrUnknownState
	}

	factCheck, err := uc.Repository.GetFactCheck(ctx, factCheckID)
	if err != nil {
		return TransitionResult{}, err
	}

	rule, found := entities.RuleFor(factCheck.CurrentState, cmd.ToState)
	if !found {
		logger.Warn("workflow transition not allowed",
			"event", "workflow_transition_invalid",
			"module", "editorial-core/workflow-engine",
			"layer", "application",
			"fact_check_id", factCheckID,
			"from_state", string(factCheck.CurrentState),
			"to_state", string(cmd.ToState),
		)
		return TransitionResult{}, domainerrors.ErrInvalidTransition
	}
	if !cmd.Actor.Role.AtLeast(rule.MinRole) {
		logger.Warn("workflow transition denied",
			"event", "workflow_transition_denied",
			"module", "editorial-core/workflow-engine",
			"layer", "application",
			"fact_check_id", factCheckID,
			"to_state", string(cmd.ToState),
			"actor_role", string(cmd.Actor.Role),
			"required_role", string(rule.MinRole),
		)
		return TransitionResult{}, domainerrors.ErrPermissionDenied
	}
	if rule.ReasonRequired && strings.TrimSpace(cmd.Reason) == "" {
		return TransitionResult{}, domainerrors.ErrReasonRequired
	}

	now := uc.now()
	historyID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return TransitionResult{}, err
	}
	item := entities.WorkflowHistoryItem{
		HistoryID:   historyID,
		FactCheckID: factCheck.FactCheckID,
		FromState:   factCheck.CurrentState,
		ToState:     cmd.ToState,
		ActorID:     strings.TrimSpace(cmd.Actor.ID),
		ActorRole:   cmd.Actor.Role,
		Reason:      strings.TrimSpace(cmd.Reason),
		Metadata:    cmd.Metadata,
		CreatedAt:   now,
	}

	expectedVersion := factCheck.StateVersion
	factCheck.CurrentState = cmd.ToState
	factCheck.StateVersion = expectedVersion + 1
	factCheck.UpdatedAt = now
	event, err := uc.stateEvent(ctx, "fact_check.state_changed", factCheck, item, now)
	if err != nil {
		return TransitionResult{}, err
	}
	if err := uc.Repository.ApplyTransition(ctx, factCheck, expectedVersion, item, event); err != nil {
		return TransitionResult{}, err
	}

	logger.Info("workflow transition applied",
		"event", "workflow_transition_applied",
		"module", "editorial-core/workflow-engine",
		"layer", "application",
		"fact_check_id", factCheck.FactCheckID,
		"from_state", string(item.FromState),
		"to_state", string(item.ToState),
		"actor_id", item.ActorID,
		"state_version", factCheck.StateVersion,
	)
	return TransitionResult{FactCheck: factCheck, History: item}, nil
}

// stateEvent builds the outbox envelope before the repository write so the
// state change and its event commit in the same step.
func (uc WorkflowUseCase) stateEvent(
	ctx context.Context,
	eventType string,
	factCheck entities.FactCheck,
	item entities.WorkflowHistoryItem,
	occurredAt time.Time,
) (events.Envelope, error) {
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return events.Envelope{}, err
	}
	return newWorkflowEnvelope(eventID, eventType, factCheck.FactCheckID, occurredAt, map[string]any{
		"fact_check_id": factCheck.FactCheckID,
		"submission_id": factCheck.SubmissionID,
		"from_state":    string(item.FromState),
		"to_state":      string(item.ToState),
		"actor_id":      item.ActorID,
		"actor_role":    string(item.ActorRole),
		"reason":        item.Reason,
		"occurred_at":   occurredAt.Format(time.RFC3339),
	})
}
