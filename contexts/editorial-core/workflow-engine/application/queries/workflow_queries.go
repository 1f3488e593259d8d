package queries

import (
	"context"
	"strings"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/entities"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/ports"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

// StateView is the read model for the current workflow position. Label and
// color are derived once here, not re-computed per caller.
type StateView struct {
	FactCheckID  string
	SubmissionID string
	State        entities.WorkflowState
	StateVersion int64
	Label        string
	Color        string
	Terminal     bool
}

// TransitionOption is one edge the acting role may take from the current state.
type TransitionOption struct {
	ToState        entities.WorkflowState
	Label          string
	ReasonRequired bool
}

type WorkflowQueries struct {
	Repository ports.Repository
}

func (q WorkflowQueries) CurrentState(ctx context.Context, factCheckID string) (StateView, error) {
	factCheck, err := q.Repository.GetFactCheck(ctx, strings.TrimSpace(factCheckID))
	if err != nil {
		return StateView{}, err
	}
	return StateView{
		FactCheckID:  factCheck.FactCheckID,
		SubmissionID: factCheck.SubmissionID,
		State:        factCheck.CurrentState,
		StateVersion: factCheck.StateVersion,
		Label:        factCheck.CurrentState.Label(),
		Color:        factCheck.CurrentState.Color(),
		Terminal:     factCheck.CurrentState.Terminal(),
	}, nil
}

// ValidTransitions filters the edge table by the actor's role rank. The read
// is pure; it never mutates workflow state.
func (q WorkflowQueries) ValidTransitions(ctx context.Context, factCheckID string, actor identity.Actor) ([]TransitionOption, error) {
	factCheck, err := q.Repository.GetFactCheck(ctx, strings.TrimSpace(factCheckID))
	if err != nil {
		return nil, err
	}
	rules := entities.RulesFrom(factCheck.CurrentState)
	options := make([]TransitionOption, 0, len(rules))
	for _, rule := range rules {
		if !actor.Role.AtLeast(rule.MinRole) {
			continue
		}
		options = append(options, TransitionOption{
			ToState:        rule.To,
			Label:          rule.To.Label(),
			ReasonRequired: rule.ReasonRequired,
		})
	}
	return options, nil
}

func (q WorkflowQueries) History(ctx context.Context, factCheckID string) ([]entities.WorkflowHistoryItem, error) {
	return q.Repository.ListHistory(ctx, strings.TrimSpace(factCheckID))
}
