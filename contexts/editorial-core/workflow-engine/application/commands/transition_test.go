package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/adapters/memory"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/events"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

func newUseCase(store *memory.Store) WorkflowUseCase {
	return WorkflowUseCase{
		Repository: store,
		Clock:      fixedClock{now: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)},
		IDGen:      store,
	}
}

func seedFactCheck(store *memory.Store, state entities.WorkflowState) entities.FactCheck {
	factCheck := entities.FactCheck{
		FactCheckID:  "fc-1",
		SubmissionID: "sub-1",
		CurrentState: state,
		StateVersion: 1,
		CreatedAt:    time.Date(2026, time.March, 9, 8, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, time.March, 9, 8, 0, 0, 0, time.UTC),
	}
	_ = store.CreateFactCheck(context.Background(), factCheck, entities.WorkflowHistoryItem{
		HistoryID:   "hist-0",
		FactCheckID: "fc-1",
		ToState:     state,
		ActorID:     "reviewer-1",
		ActorRole:   identity.RoleReviewer,
		CreatedAt:   factCheck.CreatedAt,
	}, events.Envelope{})
	return factCheck
}

func TestTransitionAppendsHistoryAndAdvancesState(t *testing.T) {
	store := memory.NewStore(nil)
	seedFactCheck(store, entities.StateSubmitted)
	uc := newUseCase(store)

	result, err := uc.Transition(context.Background(), TransitionCommand{
		FactCheckID: "fc-1",
		Actor:       identity.Actor{ID: "reviewer-1", Role: identity.RoleReviewer},
		ToState:     entities.StateQueued,
	})
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if result.FactCheck.CurrentState != entities.StateQueued {
		t.Fatalf("expected queued, got %s", result.FactCheck.CurrentState)
	}
	if result.FactCheck.StateVersion != 2 {
		t.Fatalf("expected state version 2, got %d", result.FactCheck.StateVersion)
	}

	history, err := store.ListHistory(context.Background(), "fc-1")
	if err != nil {
		t.Fatalf("history read failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history items, got %d", len(history))
	}
	latest := history[len(history)-1]
	if latest.ToState != result.FactCheck.CurrentState {
		t.Fatalf("latest history to_state %s does not match current state %s", latest.ToState, result.FactCheck.CurrentState)
	}
	if latest.FromState != entities.StateSubmitted {
		t.Fatalf("expected from_state submitted, got %s", latest.FromState)
	}
}

func TestTransitionRejectsNonAdjacentEdge(t *testing.T) {
	store := memory.NewStore(nil)
	seedFactCheck(store, entities.StateSubmitted)
	uc := newUseCase(store)

	_, err := uc.Transition(context.Background(), TransitionCommand{
		FactCheckID: "fc-1",
		Actor:       identity.Actor{ID: "admin-1", Role: identity.RoleAdmin},
		ToState:     entities.StateInResearch,
	})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestTransitionRoleGates(t *testing.T) {
	store := memory.NewStore(nil)
	seedFactCheck(store, entities.StateDraftReady)
	uc := newUseCase(store)

	_, err := uc.Transition(context.Background(), TransitionCommand{
		FactCheckID: "fc-1",
		Actor:       identity.Actor{ID: "reviewer-1", Role: identity.RoleReviewer},
		ToState:     entities.StateAdminReview,
	})
	if !errors.Is(err, domainerrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for reviewer, got %v", err)
	}

	if _, err := uc.Transition(context.Background(), TransitionCommand{
		FactCheckID: "fc-1",
		Actor:       identity.Actor{ID: "admin-1", Role: identity.RoleAdmin},
		ToState:     entities.StateAdminReview,
	}); err != nil {
		t.Fatalf("expected admin to enter admin_review, got %v", err)
	}
}

func TestTransitionIntoFinalApprovalRequiresSuperAdmin(t *testing.T) {
	store := memory.NewStore(nil)
	seedFactCheck(store, entities.StatePeerReview)
	uc := newUseCase(store)

	_, err := uc.Transition(context.Background(), TransitionCommand{
		FactCheckID: "fc-1",
		Actor:       identity.Actor{ID: "admin-1", Role: identity.RoleAdmin},
		ToState:     entities.StateFinalApproval,
	})
	if !errors.Is(err, domainerrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for admin, got %v", err)
	}

	if _, err := uc.Transition(context.Background(), TransitionCommand{
		FactCheckID: "fc-1",
		Actor:       identity.Actor{ID: "sa-1", Role: identity.RoleSuperAdmin},
		ToState:     entities.StateFinalApproval,
	}); err != nil {
		t.Fatalf("expected super_admin to enter final_approval, got %v", err)
	}
}

func TestTransitionReasonRequired(t *testing.T) {
	store := memory.NewStore(nil)
	seedFactCheck(store, entities.StateAdminReview)
	uc := newUseCase(store)

	_, err := uc.Transition(context.Background(), TransitionCommand{
		FactCheckID: "fc-1",
		Actor:       identity.Actor{ID: "admin-1", Role: identity.RoleAdmin},
		ToState:     entities.StateRejected,
		Reason:      "   ",
	})
	if !errors.Is(err, domainerrors.ErrReasonRequired) {
		t.Fatalf("expected reason required, got %v", err)
	}

	result, err := uc.Transition(context.Background(), TransitionCommand{
		FactCheckID: "fc-1",
		Actor:       identity.Actor{ID: "admin-1", Role: identity.RoleAdmin},
		ToState:     entities.StateRejected,
		Reason:      "claim is satire, out of scope",
	})
	if err != nil {
		t.Fatalf("rejection with reason failed: %v", err)
	}
	if !result.FactCheck.CurrentState.Terminal() {
		t.Fatalf("expected rejected to be terminal")
	}
}

func TestTransitionUnknownStateAndMissingFactCheck(t *testing.T) {
	store := memory.NewStore(nil)
	seedFactCheck(store, entities.StateSubmitted)
	uc := newUseCase(store)

	_, err := uc.Transition(context.Background(), TransitionCommand{
		FactCheckID: "fc-1",
		Actor:       identity.Actor{ID: "admin-1", Role: identity.RoleAdmin},
		ToState:     entities.WorkflowState("fact_checked"),
	})
	if !errors.Is(err, domainerrors.ErrUnknownState) {
		t.Fatalf("expected unknown state, got %v", err)
	}

	_, err = uc.Transition(context.Background(), TransitionCommand{
		FactCheckID: "fc-missing",
		Actor:       identity.Actor{ID: "admin-1", Role: identity.RoleAdmin},
		ToState:     entities.StateQueued,
	})
	if !errors.Is(err, domainerrors.ErrFactCheckNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCorrectionLoopEdges(t *testing.T) {
	store := memory.NewStore(nil)
	seedFactCheck(store, entities.StatePublished)
	uc := newUseCase(store)
	admin := identity.Actor{ID: "admin-1", Role: identity.RoleAdmin}

	for _, toState := range []entities.WorkflowState{
		entities.StateUnderCorrection,
		entities.StateCorrected,
		entities.StatePublished,
	} {
		if _, err := uc.Transition(context.Background(), TransitionCommand{
			FactCheckID: "fc-1",
			Actor:       admin,
			ToState:     toState,
		}); err != nil {
			t.Fatalf("correction loop step to %s failed: %v", toState, err)
		}
	}

	factCheck, err := store.GetFactCheck(context.Background(), "fc-1")
	if err != nil {
		t.Fatalf("get fact check failed: %v", err)
	}
	if factCheck.CurrentState != entities.StatePublished {
		t.Fatalf("expected published after correction loop, got %s", factCheck.CurrentState)
	}
	if factCheck.StateVersion != 4 {
		t.Fatalf("expected state version 4, got %d", factCheck.StateVersion)
	}
}

func TestTransitionRecordsStateEventWithStateChange(t *testing.T) {
	store := memory.NewStore(nil)
	seedFactCheck(store, entities.StateSubmitted)
	uc := newUseCase(store)

	if _, err := uc.Transition(context.Background(), TransitionCommand{
		FactCheckID: "fc-1",
		Actor:       identity.Actor{ID: "reviewer-1", Role: identity.RoleReviewer},
		ToState:     entities.StateQueued,
	}); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending event, got %d", len(pending))
	}
	if pending[0].EventType != "fact_check.state_changed" {
		t.Fatalf("expected fact_check.state_changed, got %s", pending[0].EventType)
	}
}

// brokenRepository rejects every write, simulating a rolled-back transaction.
type brokenRepository struct {
	*memory.Store
}

func (r brokenRepository) ApplyTransition(
	_ context.Context,
	_ entities.FactCheck,
	_ int64,
	_ entities.WorkflowHistoryItem,
	_ events.Envelope,
) error {
	return errors.New("storage unavailable")
}

func TestFailedTransitionLeavesNoStateChangeAndNoEvent(t *testing.T) {
	store := memory.NewStore(nil)
	seedFactCheck(store, entities.StateSubmitted)
	uc := newUseCase(store)
	uc.Repository = brokenRepository{Store: store}

	_, err := uc.Transition(context.Background(), TransitionCommand{
		FactCheckID: "fc-1",
		Actor:       identity.Actor{ID: "reviewer-1", Role: identity.RoleReviewer},
		ToState:     entities.StateQueued,
	})
	if err == nil {
		t.Fatal("expected storage error")
	}

	factCheck, err := store.GetFactCheck(context.Background(), "fc-1")
	if err != nil {
		t.Fatalf("get fact check failed: %v", err)
	}
	if factCheck.CurrentState != entities.StateSubmitted {
		t.Fatalf("expected state unchanged, got %s", factCheck.CurrentState)
	}
	if factCheck.StateVersion != 1 {
		t.Fatalf("expected state version 1, got %d", factCheck.StateVersion)
	}
	pending, _ := store.ListPendingOutbox(context.Background(), 10)
	if len(pending) != 0 {
		t.Fatalf("expected no pending events after failed transition, got %d", len(pending))
	}
}

func TestStartFactCheckRecordsStartedEvent(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newUseCase(store)

	if _, err := uc.StartFactCheck(context.Background(), StartFactCheckCommand{
		SubmissionID: "sub-9",
		Actor:        identity.Actor{ID: "reviewer-1", Role: identity.RoleReviewer},
	}); err != nil {
		t.Fatalf("start fact check failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending event, got %d", len(pending))
	}
	if pending[0].EventType != "fact_check.started" {
		t.Fatalf("expected fact_check.started, got %s", pending[0].EventType)
	}
}

func TestStartFactCheckRejectsDuplicateSubmission(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newUseCase(store)
	reviewer := identity.Actor{ID: "reviewer-1", Role: identity.RoleReviewer}

	if _, err := uc.StartFactCheck(context.Background(), StartFactCheckCommand{
		SubmissionID: "sub-9",
		Actor:        reviewer,
	}); err != nil {
		t.Fatalf("start fact check failed: %v", err)
	}
	_, err := uc.StartFactCheck(context.Background(), StartFactCheckCommand{
		SubmissionID: "sub-9",
		Actor:        reviewer,
	})
	if !errors.Is(err, domainerrors.ErrFactCheckExists) {
		t.Fatalf("expected duplicate fact check error, got %v", err)
	}
}
