package httpadapter

import (
	"context"
	"log/slog"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/application"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/domain/entities"
	httptransport "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/transport/http"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

type Handler struct {
	Ratings application.Service
	Logger  *slog.Logger
}

func (h Handler) AssignRatingHandler(
	ctx context.Context,
	factCheckID string,
	actor identity.Actor,
	req httptransport.AssignRatingRequest,
) (httptransport.RatingResponse, error) {
	rating, err := h.Ratings.AssignRating(ctx, factCheckID, actor, req.Rating, req.Justification)
	if err != nil {
		return httptransport.RatingResponse{}, err
	}
	return mapRating(rating), nil
}

func (h Handler) CurrentRatingHandler(ctx context.Context, factCheckID string) (httptransport.RatingResponse, error) {
	rating, err := h.Ratings.CurrentRating(ctx, factCheckID)
	if err != nil {
		return httptransport.RatingResponse{}, err
	}
	return mapRating(rating), nil
}

func (h Handler) RatingHistoryHandler(ctx context.Context, factCheckID string) (httptransport.RatingHistoryResponse, error) {
	items, err := h.Ratings.RatingHistory(ctx, factCheckID)
	if err != nil {
		return httptransport.RatingHistoryResponse{}, err
	}
	mapped := make([]httptransport.RatingResponse, 0, len(items))
	for _, item := range items {
		mapped = append(mapped, mapRating(item))
	}
	return httptransport.RatingHistoryResponse{
		FactCheckID: factCheckID,
		Items:       mapped,
	}, nil
}

func mapRating(rating entities.RatingVersion) httptransport.RatingResponse {
	return httptransport.RatingResponse{
		RatingID:      rating.RatingID,
		FactCheckID:   rating.FactCheckID,
		Rating:        rating.Rating,
		Justification: rating.Justification,
		Version:       rating.Version,
		IsCurrent:     rating.IsCurrent,
		AssignedBy:    rating.AssignedBy,
		CreatedAt:     rating.CreatedAt,
	}
}
