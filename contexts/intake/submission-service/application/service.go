package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/ports"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/events"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

// ResolveLogger guarantees a non-nil logger for application code paths.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

type Service struct {
	Repo   ports.Repository
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// CreateSubmission records an incoming claim. Submissions always enter as
// received and are never deleted afterwards.
func (s Service) CreateSubmission(
	ctx context.Context,
	kind entities.SubmissionKind,
	content string,
	submitterID string,
) (entities.Submission, error) {
	logger := ResolveLogger(s.Logger)
	content = strings.TrimSpace(content)
	submitterID = strings.TrimSpace(submitterID)
	if !kind.Valid() || content == "" || submitterID == "" {
		return entities.Submission{}, domainerrors.ErrInvalidSubmissionInput
	}

	now := s.now()
	submissionID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Submission{}, err
	}
	submission := entities.Submission{
		SubmissionID: submissionID,
		Kind:         kind,
		Content:      content,
		SubmitterID:  submitterID,
		Status:       entities.SubmissionReceived,
		Reviewers:    []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.CreateSubmission(ctx, submission); err != nil {
		return entities.Submission{}, err
	}
	if err := s.appendReceivedEvent(ctx, submission); err != nil {
		return entities.Submission{}, err
	}

	logger.Info("submission received",
		"event", "submission_received",
		"module", "intake/submission-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"kind", string(kind),
		"submitter_id", submitterID,
	)
	return submission, nil
}

// AssignReviewer adds a reviewer to the submission's set. Duplicate
// assignment is a hard failure so callers notice double-booking.
func (s Service) AssignReviewer(
	ctx context.Context,
	submissionID string,
	actor identity.Actor,
	reviewerID string,
) (entities.Submission, error) {
	logger := ResolveLogger(s.Logger)
	submissionID = strings.TrimSpace(submissionID)
	reviewerID = strings.TrimSpace(reviewerID)
	if submissionID == "" || reviewerID == "" {
		return entities.Submission{}, domainerrors.ErrInvalidSubmissionInput
	}
	if !actor.Role.AtLeast(identity.RoleAdmin) {
		return entities.Submission{}, domainerrors.ErrPermissionDenied
	}

	if err := s.Repo.AddReviewer(ctx, submissionID, reviewerID, s.now()); err != nil {
		return entities.Submission{}, err
	}

	logger.Info("reviewer assigned",
		"event", "submission_reviewer_assigned",
		"module", "intake/submission-service",
		"layer", "application",
		"submission_id", submissionID,
		"reviewer_id", reviewerID,
		"actor_id", actor.ID,
	)
	return s.Repo.GetSubmission(ctx, submissionID)
}

// UnassignReviewer removes a reviewer from the submission's set.
func (s Service) UnassignReviewer(
	ctx context.Context,
	submissionID string,
	actor identity.Actor,
	reviewerID string,
) (entities.Submission, error) {
	logger := ResolveLogger(s.Logger)
	submissionID = strings.TrimSpace(submissionID)
	reviewerID = strings.TrimSpace(reviewerID)
	if submissionID == "" || reviewerID == "" {
		return entities.Submission{}, domainerrors.ErrInvalidSubmissionInput
	}
	if !actor.Role.AtLeast(identity.RoleAdmin) {
		return entities.Submission{}, domainerrors.ErrPermissionDenied
	}

	if err := s.Repo.RemoveReviewer(ctx, submissionID, reviewerID); err != nil {
		return entities.Submission{}, err
	}

	logger.Info("reviewer unassigned",
		"event", "submission_reviewer_unassigned",
		"module", "intake/submission-service",
		"layer", "application",
		"submission_id", submissionID,
		"reviewer_id", reviewerID,
		"actor_id", actor.ID,
	)
	return s.Repo.GetSubmission(ctx, submissionID)
}

func (s Service) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return entities.Submission{}, domainerrors.ErrInvalidSubmissionInput
	}
	return s.Repo.GetSubmission(ctx, submissionID)
}

func (s Service) appendReceivedEvent(ctx context.Context, submission entities.Submission) error {
	if s.Outbox == nil {
		return nil
	}
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(map[string]any{
		"submission_id": submission.SubmissionID,
		"kind":          string(submission.Kind),
		"submitter_id":  submission.SubmitterID,
		"occurred_at":   submission.CreatedAt,
	})
	if err != nil {
		return err
	}
	return s.Outbox.AppendOutbox(ctx, events.Envelope{
		EventID:          eventID,
		EventType:        "submission.received",
		OccurredAt:       submission.CreatedAt,
		SourceService:    "submission-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "submission_id",
		PartitionKey:     submission.SubmissionID,
		Data:             payload,
	})
}

func (s Service) now() time.Time {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}
	return now
}
