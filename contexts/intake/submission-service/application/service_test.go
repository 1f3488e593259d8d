package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/adapters/memory"
	"github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newService(store *memory.Store) Service {
	return Service{
		Repo:   store,
		Outbox: store,
		Clock:  fixedClock{now: time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)},
		IDGen:  store,
	}
}

func admin() identity.Actor {
	return identity.Actor{ID: "adm-1", Role: identity.RoleAdmin}
}

func TestCreateSubmissionRecordsAndEmitsEvent(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	submission, err := service.CreateSubmission(context.Background(), entities.SubmissionURL, "https://example.org/claim", "user-1")
	if err != nil {
		t.Fatalf("CreateSubmission: %v", err)
	}
	if submission.Status != entities.SubmissionReceived {
		t.Fatalf("status = %s, want received", submission.Status)
	}
	if len(submission.Reviewers) != 0 {
		t.Fatalf("reviewers = %v, want empty", submission.Reviewers)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListPendingOutbox: %v", err)
	}
	if len(pending) != 1 || pending[0].EventType != "submission.received" {
		t.Fatalf("outbox = %+v, want one submission.received event", pending)
	}
}

func TestCreateSubmissionValidatesInput(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	if _, err := service.CreateSubmission(context.Background(), "audio", "some claim", "user-1"); !errors.Is(err, domainerrors.ErrInvalidSubmissionInput) {
		t.Fatalf("unknown kind error = %v, want ErrInvalidSubmissionInput", err)
	}
	if _, err := service.CreateSubmission(context.Background(), entities.SubmissionText, "   ", "user-1"); !errors.Is(err, domainerrors.ErrInvalidSubmissionInput) {
		t.Fatalf("blank content error = %v, want ErrInvalidSubmissionInput", err)
	}
}

func TestAssignReviewerRejectsDuplicates(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	submission, err := service.CreateSubmission(context.Background(), entities.SubmissionText, "claim text", "user-1")
	if err != nil {
		t.Fatalf("CreateSubmission: %v", err)
	}
	if _, err := service.AssignReviewer(context.Background(), submission.SubmissionID, admin(), "rev-a"); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if _, err := service.AssignReviewer(context.Background(), submission.SubmissionID, admin(), "rev-a"); !errors.Is(err, domainerrors.ErrReviewerAlreadyAssigned) {
		t.Fatalf("duplicate assign error = %v, want ErrReviewerAlreadyAssigned", err)
	}
}

func TestAssignReviewerRequiresAdmin(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	submission, err := service.CreateSubmission(context.Background(), entities.SubmissionText, "claim text", "user-1")
	if err != nil {
		t.Fatalf("CreateSubmission: %v", err)
	}
	actor := identity.Actor{ID: "rev-1", Role: identity.RoleReviewer}
	if _, err := service.AssignReviewer(context.Background(), submission.SubmissionID, actor, "rev-a"); !errors.Is(err, domainerrors.ErrPermissionDenied) {
		t.Fatalf("reviewer assign error = %v, want ErrPermissionDenied", err)
	}
}

func TestUnassignReviewer(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	submission, err := service.CreateSubmission(context.Background(), entities.SubmissionText, "claim text", "user-1")
	if err != nil {
		t.Fatalf("CreateSubmission: %v", err)
	}
	for _, reviewerID := range []string{"rev-a", "rev-b"} {
		if _, err := service.AssignReviewer(context.Background(), submission.SubmissionID, admin(), reviewerID); err != nil {
			t.Fatalf("assign %s: %v", reviewerID, err)
		}
	}

	updated, err := service.UnassignReviewer(context.Background(), submission.SubmissionID, admin(), "rev-a")
	if err != nil {
		t.Fatalf("UnassignReviewer: %v", err)
	}
	if len(updated.Reviewers) != 1 || updated.Reviewers[0] != "rev-b" {
		t.Fatalf("reviewers = %v, want [rev-b]", updated.Reviewers)
	}

	if _, err := service.UnassignReviewer(context.Background(), submission.SubmissionID, admin(), "rev-a"); !errors.Is(err, domainerrors.ErrReviewerNotAssigned) {
		t.Fatalf("repeat unassign error = %v, want ErrReviewerNotAssigned", err)
	}
}

func TestGetSubmissionIncludesReviewerSet(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	submission, err := service.CreateSubmission(context.Background(), entities.SubmissionImage, "image ref", "user-1")
	if err != nil {
		t.Fatalf("CreateSubmission: %v", err)
	}
	for _, reviewerID := range []string{"rev-b", "rev-a"} {
		if _, err := service.AssignReviewer(context.Background(), submission.SubmissionID, admin(), reviewerID); err != nil {
			t.Fatalf("assign %s: %v", reviewerID, err)
		}
	}

	got, err := service.GetSubmission(context.Background(), submission.SubmissionID)
	if err != nil {
		t.Fatalf("GetSubmission: %v", err)
	}
	if len(got.Reviewers) != 2 {
		t.Fatalf("reviewers = %v, want two entries", got.Reviewers)
	}

	if _, err := service.GetSubmission(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrSubmissionNotFound) {
		t.Fatalf("missing error = %v, want ErrSubmissionNotFound", err)
	}
}
