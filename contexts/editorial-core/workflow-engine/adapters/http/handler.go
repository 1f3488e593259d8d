package httpadapter

import (
	"context"
	"log/slog"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/application/commands"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/application/queries"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/entities"
	httptransport "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/transport/http"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

type Handler struct {
	Workflow commands.WorkflowUseCase
	Queries  queries.WorkflowQueries
	Logger   *slog.Logger
}

func (h Handler) StartFactCheckHandler(
	ctx context.Context,
	actor identity.Actor,
	req httptransport.StartFactCheckRequest,
) (httptransport.FactCheckResponse, error) {
	factCheck, err := h.Workflow.StartFactCheck(ctx, commands.StartFactCheckCommand{
		SubmissionID: req.SubmissionID,
		Actor:        actor,
		ClaimSummary: req.ClaimSummary,
	})
	if err != nil {
		return httptransport.FactCheckResponse{}, err
	}
	return mapFactCheck(factCheck), nil
}

func (h Handler) TransitionHandler(
	ctx context.Context,
	factCheckID string,
	actor identity.Actor,
	req httptransport.TransitionRequest,
) (httptransport.TransitionResponse, error) {
	result, err := h.Workflow.Transition(ctx, commands.TransitionCommand{
		FactCheckID: factCheckID,
		Actor:       actor,
		ToState:     entities.WorkflowState(req.ToState),
		Reason:      req.Reason,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return httptransport.TransitionResponse{}, err
	}
	return httptransport.TransitionResponse{
		FactCheck: mapFactCheck(result.FactCheck),
		History:   mapHistoryItem(result.History),
	}, nil
}

func (h Handler) CurrentStateHandler(ctx context.Context, factCheckID string) (httptransport.FactCheckResponse, error) {
	view, err := h.Queries.CurrentState(ctx, factCheckID)
	if err != nil {
		return httptransport.FactCheckResponse{}, err
	}
	return httptransport.FactCheckResponse{
		FactCheckID:  view.FactCheckID,
		SubmissionID: view.SubmissionID,
		State:        string(view.State),
		StateVersion: view.StateVersion,
		Label:        view.Label,
		Color:        view.Color,
		Terminal:     view.Terminal,
	}, nil
}

func (h Handler) ValidTransitionsHandler(
	ctx context.Context,
	factCheckID string,
	actor identity.Actor,
) (httptransport.ValidTransitionsResponse, error) {
	view, err := h.Queries.CurrentState(ctx, factCheckID)
	if err != nil {
		return httptransport.ValidTransitionsResponse{}, err
	}
	options, err := h.Queries.ValidTransitions(ctx, factCheckID, actor)
	if err != nil {
		return httptransport.ValidTransitionsResponse{}, err
	}
	items := make([]httptransport.TransitionOptionResponse, 0, len(options))
	for _, option := range options {
		items = append(items, httptransport.TransitionOptionResponse{
			ToState:        string(option.ToState),
			Label:          option.Label,
			ReasonRequired: option.ReasonRequired,
		})
	}
	return httptransport.ValidTransitionsResponse{
		FactCheckID: view.FactCheckID,
		State:       string(view.State),
		Options:     items,
	}, nil
}

func (h Handler) HistoryHandler(ctx context.Context, factCheckID string) (httptransport.HistoryResponse, error) {
	items, err := h.Queries.History(ctx, factCheckID)
	if err != nil {
		return httptransport.HistoryResponse{}, err
	}
	mapped := make([]httptransport.HistoryItemResponse, 0, len(items))
	for _, item := range items {
		mapped = append(mapped, mapHistoryItem(item))
	}
	return httptransport.HistoryResponse{
		FactCheckID: factCheckID,
		Items:       mapped,
	}, nil
}

func mapFactCheck(factCheck entities.FactCheck) httptransport.FactCheckResponse {
	return httptransport.FactCheckResponse{
		FactCheckID:  factCheck.FactCheckID,
		SubmissionID: factCheck.SubmissionID,
		State:        string(factCheck.CurrentState),
		StateVersion: factCheck.StateVersion,
		Label:        factCheck.CurrentState.Label(),
		Color:        factCheck.CurrentState.Color(),
		Terminal:     factCheck.CurrentState.Terminal(),
	}
}

func mapHistoryItem(item entities.WorkflowHistoryItem) httptransport.HistoryItemResponse {
	return httptransport.HistoryItemResponse{
		HistoryID: item.HistoryID,
		FromState: string(item.FromState),
		ToState:   string(item.ToState),
		ActorID:   item.ActorID,
		ActorRole: string(item.ActorRole),
		Reason:    item.Reason,
		Metadata:  item.Metadata,
		CreatedAt: item.CreatedAt,
	}
}
