package entities

import (
	"testing"

	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

func TestTerminalStatesHaveNoOutgoingEdges(t *testing.T) {
	for _, state := range []WorkflowState{StateRejected, StateArchived} {
		if rules := RulesFrom(state); len(rules) != 0 {
			t.Fatalf("expected %s to be terminal, found %d edges", state, len(rules))
		}
		if !state.Terminal() {
			t.Fatalf("expected %s Terminal() true", state)
		}
	}
}

func TestPublishedOnlyExitsIntoCorrectionLoop(t *testing.T) {
	rules := RulesFrom(StatePublished)
	if len(rules) != 1 || rules[0].To != StateUnderCorrection {
		t.Fatalf("published must only exit into under_correction, got %+v", rules)
	}
}

func TestEveryEdgeConnectsKnownStates(t *testing.T) {
	for _, from := range []WorkflowState{
		StateSubmitted, StateQueued, StateDuplicateDetected, StateAssigned,
		StateInResearch, StateDraftReady, StateNeedsMoreResearch,
		StateAdminReview, StatePeerReview, StateFinalApproval,
		StatePublished, StateUnderCorrection, StateCorrected,
	} {
		for _, rule := range RulesFrom(from) {
			if !rule.To.Valid() {
				t.Fatalf("edge %s -> %s targets unknown state", rule.From, rule.To)
			}
			if !rule.MinRole.Valid() {
				t.Fatalf("edge %s -> %s carries unknown role %q", rule.From, rule.To, rule.MinRole)
			}
		}
	}
}

func TestFinalApprovalEdgesAreSuperAdminOnly(t *testing.T) {
	for _, rule := range RulesFrom(StateFinalApproval) {
		if rule.MinRole != identity.RoleSuperAdmin {
			t.Fatalf("edge out of final_approval must require super_admin, got %s", rule.MinRole)
		}
	}
	rule, found := RuleFor(StatePeerReview, StateFinalApproval)
	if !found || rule.MinRole != identity.RoleSuperAdmin {
		t.Fatalf("entering final_approval must require super_admin")
	}
}

func TestLabelsAndColorsAreExhaustive(t *testing.T) {
	states := []WorkflowState{
		StateSubmitted, StateQueued, StateDuplicateDetected, StateArchived,
		StateAssigned, StateInResearch, StateDraftReady, StateNeedsMoreResearch,
		StateAdminReview, StatePeerReview, StateFinalApproval, StatePublished,
		StateUnderCorrection, StateCorrected, StateRejected,
	}
	for _, state := range states {
		if state.Label() == "" {
			t.Fatalf("state %s has no label", state)
		}
		if state.Color() == "" {
			t.Fatalf("state %s has no color", state)
		}
	}
	if WorkflowState("mystery").Label() != "" || WorkflowState("mystery").Color() != "" {
		t.Fatalf("unknown state must not resolve to a default label or color")
	}
}
