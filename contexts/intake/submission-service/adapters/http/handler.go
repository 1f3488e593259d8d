package httpadapter

import (
	"context"
	"log/slog"

	"github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/application"
	"github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/domain/entities"
	httptransport "github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/transport/http"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

type Handler struct {
	Submissions application.Service
	Logger      *slog.Logger
}

func (h Handler) CreateSubmissionHandler(
	ctx context.Context,
	actor identity.Actor,
	req httptransport.CreateSubmissionRequest,
) (httptransport.SubmissionResponse, error) {
	submission, err := h.Submissions.CreateSubmission(ctx, entities.SubmissionKind(req.Kind), req.Content, actor.ID)
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return mapSubmission(submission), nil
}

func (h Handler) AssignReviewerHandler(
	ctx context.Context,
	submissionID string,
	actor identity.Actor,
	req httptransport.AssignReviewerRequest,
) (httptransport.SubmissionResponse, error) {
	submission, err := h.Submissions.AssignReviewer(ctx, submissionID, actor, req.ReviewerID)
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return mapSubmission(submission), nil
}

func (h Handler) UnassignReviewerHandler(
	ctx context.Context,
	submissionID string,
	actor identity.Actor,
	reviewerID string,
) (httptransport.SubmissionResponse, error) {
	submission, err := h.Submissions.UnassignReviewer(ctx, submissionID, actor, reviewerID)
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return mapSubmission(submission), nil
}

func (h Handler) GetSubmissionHandler(ctx context.Context, submissionID string) (httptransport.SubmissionResponse, error) {
	submission, err := h.Submissions.GetSubmission(ctx, submissionID)
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return mapSubmission(submission), nil
}

func mapSubmission(submission entities.Submission) httptransport.SubmissionResponse {
	reviewers := submission.Reviewers
	if reviewers == nil {
		reviewers = []string{}
	}
	return httptransport.SubmissionResponse{
		SubmissionID: submission.SubmissionID,
		Kind:         string(submission.Kind),
		Content:      submission.Content,
		SubmitterID:  submission.SubmitterID,
		Status:       string(submission.Status),
		Reviewers:    reviewers,
		CreatedAt:    submission.CreatedAt,
		UpdatedAt:    submission.UpdatedAt,
	}
}
