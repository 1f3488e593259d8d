package httpadapter

import (
	"context"
	"log/slog"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/application"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/domain/entities"
	httptransport "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/transport/http"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

type Handler struct {
	Reviews application.Service
	Logger  *slog.Logger
}

func (h Handler) StartRoundHandler(
	ctx context.Context,
	req httptransport.StartRoundRequest,
) (httptransport.RoundResponse, error) {
	round, err := h.Reviews.StartRound(ctx, req.FactCheckID, req.SubmissionID)
	if err != nil {
		return httptransport.RoundResponse{}, err
	}
	return mapRound(round), nil
}

func (h Handler) SubmitDecisionHandler(
	ctx context.Context,
	factCheckID string,
	actor identity.Actor,
	req httptransport.SubmitDecisionRequest,
) (httptransport.ReviewResponse, error) {
	review, err := h.Reviews.SubmitDecision(ctx, factCheckID, actor.ID, req.Approved, req.Comments)
	if err != nil {
		return httptransport.ReviewResponse{}, err
	}
	return mapReview(review), nil
}

func (h Handler) ConsensusHandler(
	ctx context.Context,
	factCheckID string,
	minReviewers int,
) (httptransport.ConsensusResponse, error) {
	status, err := h.Reviews.ComputeStatus(ctx, factCheckID, minReviewers)
	if err != nil {
		return httptransport.ConsensusResponse{}, err
	}
	return httptransport.ConsensusResponse{
		FactCheckID:      status.FactCheckID,
		RoundID:          status.RoundID,
		RoundNumber:      status.RoundNumber,
		MinReviewers:     status.MinReviewers,
		ApprovedCount:    status.ApprovedCount,
		RejectedCount:    status.RejectedCount,
		PendingCount:     status.PendingCount,
		ConsensusReached: status.ConsensusReached,
		Approved:         status.Approved,
	}, nil
}

func (h Handler) RoundReviewsHandler(ctx context.Context, factCheckID string) (httptransport.RoundReviewsResponse, error) {
	round, reviews, err := h.Reviews.OpenRoundReviews(ctx, factCheckID)
	if err != nil {
		return httptransport.RoundReviewsResponse{}, err
	}
	items := make([]httptransport.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, mapReview(review))
	}
	return httptransport.RoundReviewsResponse{
		RoundID: round.RoundID,
		Items:   items,
	}, nil
}

func mapRound(round entities.ReviewRound) httptransport.RoundResponse {
	return httptransport.RoundResponse{
		RoundID:     round.RoundID,
		FactCheckID: round.FactCheckID,
		RoundNumber: round.RoundNumber,
		Status:      string(round.Status),
		CreatedAt:   round.CreatedAt,
		ClosedAt:    round.ClosedAt,
	}
}

func mapReview(review entities.PeerReview) httptransport.ReviewResponse {
	return httptransport.ReviewResponse{
		ReviewID:    review.ReviewID,
		RoundID:     review.RoundID,
		FactCheckID: review.FactCheckID,
		ReviewerID:  review.ReviewerID,
		Status:      string(review.Status),
		Comments:    review.Comments,
		DecidedAt:   review.DecidedAt,
		CreatedAt:   review.CreatedAt,
	}
}
