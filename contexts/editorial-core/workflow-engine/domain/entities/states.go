package entities

import "github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"

// WorkflowState is a stage of the editorial lifecycle.
type WorkflowState string

const (
	StateSubmitted         WorkflowState = "submitted"
	StateQueued            WorkflowState = "queued"
	StateDuplicateDetected WorkflowState = "duplicate_detected"
	StateArchived          WorkflowState = "archived"
	StateAssigned          WorkflowState = "assigned"
	StateInResearch        WorkflowState = "in_research"
	StateDraftReady        WorkflowState = "draft_ready"
	StateNeedsMoreResearch WorkflowState = "needs_more_research"
	StateAdminReview       WorkflowState = "admin_review"
	StatePeerReview        WorkflowState = "peer_review"
	StateFinalApproval     WorkflowState = "final_approval"
	StatePublished         WorkflowState = "published"
	StateUnderCorrection   WorkflowState = "under_correction"
	StateCorrected         WorkflowState = "corrected"
	StateRejected          WorkflowState = "rejected"
)

// TransitionRule is one edge of the workflow graph. MinRole gates who may
// take the edge; ReasonRequired edges reject empty free-text reasons.
type TransitionRule struct {
	From           WorkflowState
	To             WorkflowState
	MinRole        identity.Role
	ReasonRequired bool
}

// transitionTable is the single source of truth for the workflow graph.
// Derived labels and colors are pure functions of state; callers must not
// re-implement edge knowledge. Rejected and archived have no outgoing edges.
var transitionTable = []TransitionRule{
	{From: StateSubmitted, To: StateQueued, MinRole: identity.RoleReviewer},
	{From: StateSubmitted, To: StateDuplicateDetected, MinRole: identity.RoleReviewer},
	{From: StateSubmitted, To: StateRejected, MinRole: identity.RoleAdmin, ReasonRequired: true},
	{From: StateSubmitted, To: StateArchived, MinRole: identity.RoleAdmin, ReasonRequired: true},
	{From: StateQueued, To: StateAssigned, MinRole: identity.RoleAdmin},
	{From: StateQueued, To: StateArchived, MinRole: identity.RoleAdmin, ReasonRequired: true},
	{From: StateDuplicateDetected, To: StateQueued, MinRole: identity.RoleAdmin},
	{From: StateDuplicateDetected, To: StateArchived, MinRole: identity.RoleAdmin, ReasonRequired: true},
	{From: StateAssigned, To: StateInResearch, MinRole: identity.RoleReviewer},
	{From: StateInResearch, To: StateDraftReady, MinRole: identity.RoleReviewer},
	{From: StateDraftReady, To: StateAdminReview, MinRole: identity.RoleAdmin},
	{From: StateAdminReview, To: StatePeerReview, MinRole: identity.RoleAdmin},
	{From: StateAdminReview, To: StateNeedsMoreResearch, MinRole: identity.RoleAdmin, ReasonRequired: true},
	{From: StateAdminReview, To: StateRejected, MinRole: identity.RoleAdmin, ReasonRequired: true},
	{From: StateNeedsMoreResearch, To: StateInResearch, MinRole: identity.RoleReviewer},
	{From: StatePeerReview, To: StateFinalApproval, MinRole: identity.RoleSuperAdmin},
	{From: StatePeerReview, To: StateDraftReady, MinRole: identity.RoleAdmin, ReasonRequired: true},
	{From: StateFinalApproval, To: StatePublished, MinRole: identity.RoleSuperAdmin},
	{From: StateFinalApproval, To: StateAdminReview, MinRole: identity.RoleSuperAdmin, ReasonRequired: true},
	{From: StatePublished, To: StateUnderCorrection, MinRole: identity.RoleAdmin},
	{From: StateUnderCorrection, To: StateCorrected, MinRole: identity.RoleAdmin},
	{From: StateCorrected, To: StatePublished, MinRole: identity.RoleAdmin},
}

// RuleFor returns the edge for a (from, to) pair when the graph defines one.
func RuleFor(from WorkflowState, to WorkflowState) (TransitionRule, bool) {
	for _, rule := range transitionTable {
		if rule.From == from && rule.To == to {
			return rule, true
		}
	}
	return TransitionRule{}, false
}

// RulesFrom returns every outgoing edge of a state in table order.
func RulesFrom(from WorkflowState) []TransitionRule {
	rules := make([]TransitionRule, 0, 4)
	for _, rule := range transitionTable {
		if rule.From == from {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Valid reports whether the state is part of the lifecycle enumeration.
func (s WorkflowState) Valid() bool {
	switch s {
	case StateSubmitted, StateQueued, StateDuplicateDetected, StateArchived,
		StateAssigned, StateInResearch, StateDraftReady, StateNeedsMoreResearch,
		StateAdminReview, StatePeerReview, StateFinalApproval, StatePublished,
		StateUnderCorrection, StateCorrected, StateRejected:
		return true
	default:
		return false
	}
}

// Terminal reports whether the state has no outgoing edges.
func (s WorkflowState) Terminal() bool {
	return len(RulesFrom(s)) == 0
}

// Label is the display name for a state. The switch is exhaustive on purpose:
// an unknown state is a validation failure upstream, never a silent default.
func (s WorkflowState) Label() string {
	switch s {
	case StateSubmitted:
		return "Submitted"
	case StateQueued:
		return "Queued"
	case StateDuplicateDetected:
		return "Duplicate detected"
	case StateArchived:
		return "Archived"
	case StateAssigned:
		return "Assigned"
	case StateInResearch:
		return "In research"
	case StateDraftReady:
		return "Draft ready"
	case StateNeedsMoreResearch:
		return "Needs more research"
	case StateAdminReview:
		return "Admin review"
	case StatePeerReview:
		return "Peer review"
	case StateFinalApproval:
		return "Final approval"
	case StatePublished:
		return "Published"
	case StateUnderCorrection:
		return "Under correction"
	case StateCorrected:
		return "Corrected"
	case StateRejected:
		return "Rejected"
	default:
		return ""
	}
}

// Color is the display color class for a state.
func (s WorkflowState) Color() string {
	switch s {
	case StateSubmitted, StateQueued:
		return "gray"
	case StateDuplicateDetected:
		return "orange"
	case StateArchived, StateRejected:
		return "red"
	case StateAssigned, StateInResearch, StateNeedsMoreResearch:
		return "blue"
	case StateDraftReady, StateAdminReview, StatePeerReview, StateFinalApproval:
		return "purple"
	case StatePublished, StateCorrected:
		return "green"
	case StateUnderCorrection:
		return "yellow"
	default:
		return ""
	}
}
