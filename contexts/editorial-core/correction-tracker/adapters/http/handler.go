package httpadapter

import (
	"context"
	"log/slog"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/application/commands"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/application/queries"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/domain/entities"
	httptransport "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/transport/http"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

type Handler struct {
	Corrections commands.CorrectionUseCase
	Queries     queries.CorrectionQueries
	Logger      *slog.Logger
}

func (h Handler) SubmitCorrectionHandler(
	ctx context.Context,
	factCheckID string,
	req httptransport.SubmitCorrectionRequest,
) (httptransport.CorrectionResponse, error) {
	correction, err := h.Corrections.SubmitCorrection(ctx, commands.SubmitCorrectionCommand{
		FactCheckID:    factCheckID,
		Type:           entities.CorrectionType(req.Type),
		Details:        req.Details,
		RequesterEmail: req.RequesterEmail,
	})
	if err != nil {
		return httptransport.CorrectionResponse{}, err
	}
	return mapCorrection(correction), nil
}

func (h Handler) AcceptCorrectionHandler(
	ctx context.Context,
	correctionID string,
	actor identity.Actor,
	req httptransport.ResolveCorrectionRequest,
) (httptransport.CorrectionResponse, error) {
	correction, err := h.Corrections.AcceptCorrection(ctx, commands.ResolveCorrectionCommand{
		CorrectionID:    correctionID,
		Actor:           actor,
		ResolutionNotes: req.ResolutionNotes,
	})
	if err != nil {
		return httptransport.CorrectionResponse{}, err
	}
	return mapCorrection(correction), nil
}

func (h Handler) RejectCorrectionHandler(
	ctx context.Context,
	correctionID string,
	actor identity.Actor,
	req httptransport.ResolveCorrectionRequest,
) (httptransport.CorrectionResponse, error) {
	correction, err := h.Corrections.RejectCorrection(ctx, commands.ResolveCorrectionCommand{
		CorrectionID:    correctionID,
		Actor:           actor,
		ResolutionNotes: req.ResolutionNotes,
	})
	if err != nil {
		return httptransport.CorrectionResponse{}, err
	}
	return mapCorrection(correction), nil
}

func (h Handler) ApplyCorrectionHandler(
	ctx context.Context,
	correctionID string,
	actor identity.Actor,
	req httptransport.ApplyCorrectionRequest,
) (httptransport.ApplicationResponse, error) {
	applied, err := h.Corrections.ApplyCorrection(ctx, commands.ApplyCorrectionCommand{
		CorrectionID:   correctionID,
		Actor:          actor,
		Changes:        req.Changes,
		ChangesSummary: req.ChangesSummary,
	})
	if err != nil {
		return httptransport.ApplicationResponse{}, err
	}
	return mapApplication(applied), nil
}

func (h Handler) GetCorrectionHandler(ctx context.Context, correctionID string) (httptransport.CorrectionResponse, error) {
	correction, err := h.Queries.GetCorrection(ctx, correctionID)
	if err != nil {
		return httptransport.CorrectionResponse{}, err
	}
	return mapCorrection(correction), nil
}

func (h Handler) TriageHandler(ctx context.Context) (httptransport.TriageResponse, error) {
	items, err := h.Queries.TriageList(ctx)
	if err != nil {
		return httptransport.TriageResponse{}, err
	}
	mapped := make([]httptransport.TriageItemResponse, 0, len(items))
	for _, item := range items {
		mapped = append(mapped, httptransport.TriageItemResponse{
			Correction:    mapCorrection(item.Correction),
			DaysRemaining: item.DaysRemaining,
			Overdue:       item.Overdue,
		})
	}
	return httptransport.TriageResponse{Items: mapped}, nil
}

func (h Handler) ApplicationHistoryHandler(ctx context.Context, factCheckID string) (httptransport.ApplicationHistoryResponse, error) {
	items, err := h.Queries.ApplicationHistory(ctx, factCheckID)
	if err != nil {
		return httptransport.ApplicationHistoryResponse{}, err
	}
	mapped := make([]httptransport.ApplicationResponse, 0, len(items))
	for _, item := range items {
		mapped = append(mapped, mapApplication(item))
	}
	return httptransport.ApplicationHistoryResponse{
		FactCheckID: factCheckID,
		Items:       mapped,
	}, nil
}

func mapCorrection(correction entities.Correction) httptransport.CorrectionResponse {
	return httptransport.CorrectionResponse{
		CorrectionID:    correction.CorrectionID,
		FactCheckID:     correction.FactCheckID,
		Type:            string(correction.Type),
		Status:          string(correction.Status),
		Details:         correction.Details,
		ResolutionNotes: correction.ResolutionNotes,
		SLADeadline:     correction.SLADeadline,
		CreatedAt:       correction.CreatedAt,
	}
}

func mapApplication(item entities.CorrectionApplication) httptransport.ApplicationResponse {
	return httptransport.ApplicationResponse{
		ApplicationID:  item.ApplicationID,
		CorrectionID:   item.CorrectionID,
		FactCheckID:    item.FactCheckID,
		Version:        item.Version,
		AppliedBy:      item.AppliedBy,
		ChangesSummary: item.ChangesSummary,
		AppliedAt:      item.AppliedAt,
	}
}
