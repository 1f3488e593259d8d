package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/adapters/memory"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var testNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func newUseCase(store *memory.Store) CorrectionUseCase {
	return CorrectionUseCase{
		Repository: store,
		FactChecks: store,
		Clock:      fixedClock{now: testNow},
		IDGen:      store,
	}
}

func admin() identity.Actor {
	return identity.Actor{ID: "admin-1", Role: identity.RoleAdmin}
}

func submit(t *testing.T, uc CorrectionUseCase, factCheckID string, correctionType entities.CorrectionType) entities.Correction {
	t.Helper()
	correction, err := uc.SubmitCorrection(context.Background(), SubmitCorrectionCommand{
		FactCheckID: factCheckID,
		Type:        correctionType,
		Details:     "the cited statistic uses the wrong base year",
	})
	if err != nil {
		t.Fatalf("SubmitCorrection(%s): %v", correctionType, err)
	}
	return correction
}

func TestSubmitCorrectionSetsSLADeadlineByType(t *testing.T) {
	store := memory.NewStore()
	store.SetFactCheckState("fc-1", "published")
	uc := newUseCase(store)

	cases := []struct {
		correctionType entities.CorrectionType
		wantDays       int
	}{
		{entities.CorrectionSubstantial, 2},
		{entities.CorrectionUpdate, 7},
		{entities.CorrectionMinor, 14},
	}
	for _, tc := range cases {
		correction := submit(t, uc, "fc-1", tc.correctionType)
		want := testNow.Add(time.Duration(tc.wantDays) * 24 * time.Hour)
		if !correction.SLADeadline.Equal(want) {
			t.Fatalf("%s deadline = %v, want %v", tc.correctionType, correction.SLADeadline, want)
		}
		if correction.Status != entities.CorrectionPending {
			t.Fatalf("%s status = %s, want pending", tc.correctionType, correction.Status)
		}
	}
}

func TestSubmitCorrectionRequiresPublishedFactCheck(t *testing.T) {
	store := memory.NewStore()
	store.SetFactCheckState("fc-draft", "in_research")
	uc := newUseCase(store)

	cmd := SubmitCorrectionCommand{
		FactCheckID: "fc-draft",
		Type:        entities.CorrectionMinor,
		Details:     "the cited statistic uses the wrong base year",
	}
	if _, err := uc.SubmitCorrection(context.Background(), cmd); !errors.Is(err, domainerrors.ErrFactCheckNotPublished) {
		t.Fatalf("draft error = %v, want ErrFactCheckNotPublished", err)
	}

	cmd.FactCheckID = "fc-missing"
	if _, err := uc.SubmitCorrection(context.Background(), cmd); !errors.Is(err, domainerrors.ErrFactCheckNotPublished) {
		t.Fatalf("missing error = %v, want ErrFactCheckNotPublished", err)
	}
}

func TestSubmitCorrectionValidatesInput(t *testing.T) {
	store := memory.NewStore()
	store.SetFactCheckState("fc-1", "published")
	uc := newUseCase(store)

	if _, err := uc.SubmitCorrection(context.Background(), SubmitCorrectionCommand{
		FactCheckID: "fc-1",
		Type:        "urgent",
		Details:     "the cited statistic uses the wrong base year",
	}); !errors.Is(err, domainerrors.ErrInvalidCorrectionInput) {
		t.Fatalf("unknown type error = %v, want ErrInvalidCorrectionInput", err)
	}
	if _, err := uc.SubmitCorrection(context.Background(), SubmitCorrectionCommand{
		FactCheckID: "fc-1",
		Type:        entities.CorrectionMinor,
		Details:     "too short",
	}); !errors.Is(err, domainerrors.ErrInvalidCorrectionInput) {
		t.Fatalf("short details error = %v, want ErrInvalidCorrectionInput", err)
	}
}

func TestAcceptRequiresAdminAndPendingState(t *testing.T) {
	store := memory.NewStore()
	store.SetFactCheckState("fc-1", "published")
	uc := newUseCase(store)
	correction := submit(t, uc, "fc-1", entities.CorrectionUpdate)

	if _, err := uc.AcceptCorrection(context.Background(), ResolveCorrectionCommand{
		CorrectionID:    correction.CorrectionID,
		Actor:           identity.Actor{ID: "rev-1", Role: identity.RoleReviewer},
		ResolutionNotes: "confirmed against the primary source",
	}); !errors.Is(err, domainerrors.ErrPermissionDenied) {
		t.Fatalf("reviewer accept error = %v, want ErrPermissionDenied", err)
	}

	accepted, err := uc.AcceptCorrection(context.Background(), ResolveCorrectionCommand{
		CorrectionID:    correction.CorrectionID,
		Actor:           admin(),
		ResolutionNotes: "confirmed against the primary source",
	})
	if err != nil {
		t.Fatalf("AcceptCorrection: %v", err)
	}
	if accepted.Status != entities.CorrectionAccepted {
		t.Fatalf("status = %s, want accepted", accepted.Status)
	}

	// Accepted is no longer pending, resolving again is a state error.
	if _, err := uc.RejectCorrection(context.Background(), ResolveCorrectionCommand{
		CorrectionID:    correction.CorrectionID,
		Actor:           admin(),
		ResolutionNotes: "changed our minds on this one",
	}); !errors.Is(err, domainerrors.ErrInvalidCorrectionState) {
		t.Fatalf("resolve accepted error = %v, want ErrInvalidCorrectionState", err)
	}
}

func TestResolveRejectsShortNotes(t *testing.T) {
	store := memory.NewStore()
	store.SetFactCheckState("fc-1", "published")
	uc := newUseCase(store)
	correction := submit(t, uc, "fc-1", entities.CorrectionMinor)

	if _, err := uc.RejectCorrection(context.Background(), ResolveCorrectionCommand{
		CorrectionID:    correction.CorrectionID,
		Actor:           admin(),
		ResolutionNotes: "no",
	}); !errors.Is(err, domainerrors.ErrInvalidCorrectionInput) {
		t.Fatalf("short notes error = %v, want ErrInvalidCorrectionInput", err)
	}
}

func TestApplyAssignsGaplessVersionsAndUpdatesContent(t *testing.T) {
	store := memory.NewStore()
	store.SetFactCheckState("fc-1", "published")
	uc := newUseCase(store)

	for i, wantVersion := range []int{1, 2} {
		correction := submit(t, uc, "fc-1", entities.CorrectionSubstantial)
		if _, err := uc.AcceptCorrection(context.Background(), ResolveCorrectionCommand{
			CorrectionID:    correction.CorrectionID,
			Actor:           admin(),
			ResolutionNotes: "confirmed against the primary source",
		}); err != nil {
			t.Fatalf("accept %d: %v", i, err)
		}
		changes := "revised article body " + strings.Repeat("x", i+1)
		applied, err := uc.ApplyCorrection(context.Background(), ApplyCorrectionCommand{
			CorrectionID:   correction.CorrectionID,
			Actor:          admin(),
			Changes:        changes,
			ChangesSummary: "replaced the base-year statistic",
		})
		if err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
		if applied.Version != wantVersion {
			t.Fatalf("version = %d, want %d", applied.Version, wantVersion)
		}
		if got := store.PublishedContent("fc-1"); got != changes {
			t.Fatalf("published content = %q, want %q", got, changes)
		}
	}
}

func TestApplyIsTerminal(t *testing.T) {
	store := memory.NewStore()
	store.SetFactCheckState("fc-1", "published")
	uc := newUseCase(store)
	correction := submit(t, uc, "fc-1", entities.CorrectionUpdate)

	if _, err := uc.AcceptCorrection(context.Background(), ResolveCorrectionCommand{
		CorrectionID:    correction.CorrectionID,
		Actor:           admin(),
		ResolutionNotes: "confirmed against the primary source",
	}); err != nil {
		t.Fatalf("accept: %v", err)
	}
	cmd := ApplyCorrectionCommand{
		CorrectionID:   correction.CorrectionID,
		Actor:          admin(),
		Changes:        "revised article body",
		ChangesSummary: "replaced the base-year statistic",
	}
	if _, err := uc.ApplyCorrection(context.Background(), cmd); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if _, err := uc.ApplyCorrection(context.Background(), cmd); !errors.Is(err, domainerrors.ErrInvalidCorrectionState) {
		t.Fatalf("second apply error = %v, want ErrInvalidCorrectionState", err)
	}
}

// flakyApplyRepository fails the first atomic apply step, simulating a
// transaction rollback at the storage layer.
type flakyApplyRepository struct {
	*memory.Store
	failures int
}

func (r *flakyApplyRepository) ApplyCorrection(
	ctx context.Context,
	correction entities.Correction,
	expectedVersion int64,
	application entities.CorrectionApplication,
	publishedContent string,
) error {
	if r.failures > 0 {
		r.failures--
		return errors.New("storage unavailable")
	}
	return r.Store.ApplyCorrection(ctx, correction, expectedVersion, application, publishedContent)
}

func TestApplyFailureLeavesCorrectionRetryable(t *testing.T) {
	store := memory.NewStore()
	store.SetFactCheckState("fc-1", "published")
	repo := &flakyApplyRepository{Store: store, failures: 1}
	uc := newUseCase(store)
	uc.Repository = repo

	correction := submit(t, uc, "fc-1", entities.CorrectionSubstantial)
	if _, err := uc.AcceptCorrection(context.Background(), ResolveCorrectionCommand{
		CorrectionID:    correction.CorrectionID,
		Actor:           admin(),
		ResolutionNotes: "confirmed against the primary source",
	}); err != nil {
		t.Fatalf("accept: %v", err)
	}

	cmd := ApplyCorrectionCommand{
		CorrectionID:   correction.CorrectionID,
		Actor:          admin(),
		Changes:        "revised article body",
		ChangesSummary: "replaced the base-year statistic",
	}
	if _, err := uc.ApplyCorrection(context.Background(), cmd); err == nil {
		t.Fatal("first apply succeeded, want storage error")
	}

	// The failed apply must not leave a half-applied correction behind.
	after, err := uc.Repository.GetCorrection(context.Background(), correction.CorrectionID)
	if err != nil {
		t.Fatalf("GetCorrection after failure: %v", err)
	}
	if after.Status != entities.CorrectionAccepted {
		t.Fatalf("status after failed apply = %s, want accepted", after.Status)
	}
	if got := store.PublishedContent("fc-1"); got != "" {
		t.Fatalf("published content after failed apply = %q, want empty", got)
	}

	applied, err := uc.ApplyCorrection(context.Background(), cmd)
	if err != nil {
		t.Fatalf("retry apply: %v", err)
	}
	if applied.Version != 1 {
		t.Fatalf("retry version = %d, want 1", applied.Version)
	}
	if got := store.PublishedContent("fc-1"); got != cmd.Changes {
		t.Fatalf("published content after retry = %q, want %q", got, cmd.Changes)
	}
}

func TestApplyRequiresAcceptedState(t *testing.T) {
	store := memory.NewStore()
	store.SetFactCheckState("fc-1", "published")
	uc := newUseCase(store)
	correction := submit(t, uc, "fc-1", entities.CorrectionMinor)

	if _, err := uc.ApplyCorrection(context.Background(), ApplyCorrectionCommand{
		CorrectionID:   correction.CorrectionID,
		Actor:          admin(),
		Changes:        "revised article body",
		ChangesSummary: "replaced the base-year statistic",
	}); !errors.Is(err, domainerrors.ErrInvalidCorrectionState) {
		t.Fatalf("apply pending error = %v, want ErrInvalidCorrectionState", err)
	}
}

func TestSLADerivation(t *testing.T) {
	deadline := testNow.Add(2 * 24 * time.Hour)

	if got := entities.SLADaysRemaining(deadline, testNow); got != 2 {
		t.Fatalf("at submission = %d, want 2", got)
	}
	if got := entities.SLADaysRemaining(deadline, testNow.Add(36*time.Hour)); got != 1 {
		t.Fatalf("after 36h = %d, want 1 (partial days round up)", got)
	}
	if got := entities.SLADaysRemaining(deadline, deadline); got != 0 {
		t.Fatalf("at deadline = %d, want 0", got)
	}
	if got := entities.SLADaysRemaining(deadline, deadline.Add(24*time.Hour)); got != -1 {
		t.Fatalf("one day past = %d, want -1", got)
	}
	if entities.SLAOverdue(deadline, deadline) {
		t.Fatal("overdue at the deadline, want not overdue")
	}
	if !entities.SLAOverdue(deadline, deadline.Add(24*time.Hour)) {
		t.Fatal("not overdue one day past the deadline, want overdue")
	}
}
