package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/ports"
)

// ResolveLogger guarantees a non-nil logger for application/worker code paths.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// Service coordinates peer review rounds and decisions. MinReviewers is the
// policy consensus threshold used when callers do not override it.
type Service struct {
	Repo         ports.Repository
	Reviewers    ports.ReviewerDirectory
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	MinReviewers int
	Logger       *slog.Logger
}

// StartRound opens a review round with pending decision slots for every
// assigned reviewer. One open round per fact-check at a time.
func (s Service) StartRound(ctx context.Context, factCheckID string, submissionID string) (entities.ReviewRound, error) {
	logger := ResolveLogger(s.Logger)
	factCheckID = strings.TrimSpace(factCheckID)
	if factCheckID == "" {
		return entities.ReviewRound{}, domainerrors.ErrInvalidReviewInput
	}

	if _, open, err := s.Repo.GetOpenRound(ctx, factCheckID); err != nil {
		return entities.ReviewRound{}, err
	} else if open {
		return entities.ReviewRound{}, domainerrors.ErrRoundActive
	}

	reviewerIDs, err := s.Reviewers.ListAssignedReviewers(ctx, strings.TrimSpace(submissionID))
	if err != nil {
		return entities.ReviewRound{}, err
	}
	if len(reviewerIDs) == 0 {
		return entities.ReviewRound{}, domainerrors.ErrNoReviewers
	}

	previousRounds, err := s.Repo.CountRounds(ctx, factCheckID)
	if err != nil {
		return entities.ReviewRound{}, err
	}

	now := s.now()
	roundID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.ReviewRound{}, err
	}
	round := entities.ReviewRound{
		RoundID:     roundID,
		FactCheckID: factCheckID,
		RoundNumber: previousRounds + 1,
		Status:      entities.RoundOpen,
		CreatedAt:   now,
	}

	seen := make(map[string]bool, len(reviewerIDs))
	reviews := make([]entities.PeerReview, 0, len(reviewerIDs))
	for _, reviewerID := range reviewerIDs {
		reviewerID = strings.TrimSpace(reviewerID)
		if reviewerID == "" || seen[reviewerID] {
			continue
		}
		seen[reviewerID] = true
		reviewID, err := s.IDGen.NewID(ctx)
		if err != nil {
			return entities.ReviewRound{}, err
		}
		reviews = append(reviews, entities.PeerReview{
			ReviewID:    reviewID,
			RoundID:     roundID,
			FactCheckID: factCheckID,
			ReviewerID:  reviewerID,
			Status:      entities.DecisionPending,
			RowVersion:  1,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if len(reviews) == 0 {
		return entities.ReviewRound{}, domainerrors.ErrNoReviewers
	}
	if err := s.Repo.CreateRound(ctx, round, reviews); err != nil {
		return entities.ReviewRound{}, err
	}

	logger.Info("peer review round started",
		"event", "peer_review_round_started",
		"module", "editorial-core/peer-review",
		"layer", "application",
		"fact_check_id", factCheckID,
		"round_id", round.RoundID,
		"round_number", round.RoundNumber,
		"reviewer_count", len(reviews),
	)
	return round, nil
}

// CloseRound marks the open round closed. Pending slots stay pending; a new
// round is required for further decisions.
func (s Service) CloseRound(ctx context.Context, factCheckID string) error {
	round, open, err := s.Repo.GetOpenRound(ctx, strings.TrimSpace(factCheckID))
	if err != nil {
		return err
	}
	if !open {
		return nil
	}
	return s.Repo.CloseRound(ctx, round.RoundID, s.now())
}

// SubmitDecision records a reviewer's verdict. A decision is final for the
// round: re-submission, even of the identical verdict, is a hard conflict.
func (s Service) SubmitDecision(
	ctx context.Context,
	factCheckID string,
	reviewerID string,
	approved bool,
	comments string,
) (entities.PeerReview, error) {
	logger := ResolveLogger(s.Logger)
	factCheckID = strings.TrimSpace(factCheckID)
	reviewerID = strings.TrimSpace(reviewerID)
	if factCheckID == "" || reviewerID == "" {
		return entities.PeerReview{}, domainerrors.ErrInvalidReviewInput
	}

	round, open, err := s.Repo.GetOpenRound(ctx, factCheckID)
	if err != nil {
		return entities.PeerReview{}, err
	}
	if !open {
		return entities.PeerReview{}, domainerrors.ErrNoActiveRound
	}

	review, member, err := s.Repo.GetReview(ctx, round.RoundID, reviewerID)
	if err != nil {
		return entities.PeerReview{}, err
	}
	if !member {
		logger.Warn("decision from non-member rejected",
			"event", "peer_review_decision_not_a_reviewer",
			"module", "editorial-core/peer-review",
			"layer", "application",
			"fact_check_id", factCheckID,
			"round_id", round.RoundID,
			"reviewer_id", reviewerID,
		)
		return entities.PeerReview{}, domainerrors.ErrNotAReviewer
	}
	if review.Status != entities.DecisionPending {
		return entities.PeerReview{}, domainerrors.ErrAlreadyDecided
	}

	now := s.now()
	expectedVersion := review.RowVersion
	review.Status = entities.DecisionRejected
	if approved {
		review.Status = entities.DecisionApproved
	}
	review.Comments = strings.TrimSpace(comments)
	review.DecidedAt = &now
	review.UpdatedAt = now
	review.RowVersion = expectedVersion + 1
	if err := s.Repo.UpdateDecision(ctx, review, expectedVersion); err != nil {
		return entities.PeerReview{}, err
	}

	logger.Info("peer review decision recorded",
		"event", "peer_review_decision_recorded",
		"module", "editorial-core/peer-review",
		"layer", "application",
		"fact_check_id", factCheckID,
		"round_id", round.RoundID,
		"reviewer_id", reviewerID,
		"status", string(review.Status),
	)
	return review, nil
}

// ComputeStatus tallies the open round. Pure read, re-evaluated per call.
// Any rejection reaches consensus as not approved regardless of pending
// reviewers (single-veto, fail fast). Approval consensus needs every slot
// decided, zero rejections, and at least minReviewers approvals.
func (s Service) ComputeStatus(ctx context.Context, factCheckID string, minReviewers int) (entities.ConsensusStatus, error) {
	if minReviewers <= 0 {
		minReviewers = s.MinReviewers
	}
	if minReviewers <= 0 {
		minReviewers = 1
	}

	round, open, err := s.Repo.GetOpenRound(ctx, strings.TrimSpace(factCheckID))
	if err != nil {
		return entities.ConsensusStatus{}, err
	}
	if !open {
		return entities.ConsensusStatus{}, domainerrors.ErrNoActiveRound
	}

	reviews, err := s.Repo.ListRoundReviews(ctx, round.RoundID)
	if err != nil {
		return entities.ConsensusStatus{}, err
	}

	status := entities.ConsensusStatus{
		FactCheckID:  round.FactCheckID,
		RoundID:      round.RoundID,
		RoundNumber:  round.RoundNumber,
		MinReviewers: minReviewers,
	}
	for _, review := range reviews {
		switch review.Status {
		case entities.DecisionApproved:
			status.ApprovedCount++
		case entities.DecisionRejected:
			status.RejectedCount++
		default:
			status.PendingCount++
		}
	}

	switch {
	case status.RejectedCount > 0:
		status.ConsensusReached = true
		status.Approved = false
	case status.PendingCount == 0 && status.ApprovedCount >= minReviewers:
		status.ConsensusReached = true
		status.Approved = true
	}
	return status, nil
}

// OpenRoundReviews returns the open round and its decision slots.
func (s Service) OpenRoundReviews(ctx context.Context, factCheckID string) (entities.ReviewRound, []entities.PeerReview, error) {
	round, open, err := s.Repo.GetOpenRound(ctx, strings.TrimSpace(factCheckID))
	if err != nil {
		return entities.ReviewRound{}, nil, err
	}
	if !open {
		return entities.ReviewRound{}, nil, domainerrors.ErrNoActiveRound
	}
	reviews, err := s.Repo.ListRoundReviews(ctx, round.RoundID)
	if err != nil {
		return entities.ReviewRound{}, nil, err
	}
	return round, reviews, nil
}

func (s Service) now() time.Time {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}
	return now
}
