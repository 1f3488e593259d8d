package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/adapters/memory"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/domain/entities"
	domainerrors "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/domain/errors"
	"github.com/Post-X-Society/ans-project-sub001/internal/shared/identity"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var justification = strings.Repeat("the primary source contradicts the claim ", 3)

func newService(store *memory.Store) Service {
	return Service{
		Repo:     store,
		Workflow: store,
		Clock:    fixedClock{now: time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)},
		IDGen:    store,
	}
}

func superAdmin() identity.Actor {
	return identity.Actor{ID: "sa-1", Role: identity.RoleSuperAdmin}
}

func TestAssignRatingBuildsGaplessChain(t *testing.T) {
	store := memory.NewStore()
	store.SetFactCheckState("fc-1", "final_approval")
	service := newService(store)

	first, err := service.AssignRating(context.Background(), "fc-1", superAdmin(), "false", justification)
	if err != nil {
		t.Fatalf("first AssignRating: %v", err)
	}
	if first.Version != 1 || !first.IsCurrent {
		t.Fatalf("first = v%d current %t, want v1 current", first.Version, first.IsCurrent)
	}

	second, err := service.AssignRating(context.Background(), "fc-1", superAdmin(), "misleading", justification)
	if err != nil {
		t.Fatalf("second AssignRating: %v", err)
	}
	if second.Version != 2 {
		t.Fatalf("second version = %d, want 2", second.Version)
	}

	history, err := service.RatingHistory(context.Background(), "fc-1")
	if err != nil {
		t.Fatalf("RatingHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	currentCount := 0
	for i, item := range history {
		if item.Version != i+1 {
			t.Fatalf("history[%d].Version = %d, want %d", i, item.Version, i+1)
		}
		if item.IsCurrent {
			currentCount++
		}
	}
	if currentCount != 1 {
		t.Fatalf("current rows = %d, want exactly 1", currentCount)
	}

	current, err := service.CurrentRating(context.Background(), "fc-1")
	if err != nil {
		t.Fatalf("CurrentRating: %v", err)
	}
	if current.Rating != "misleading" || current.Version != 2 {
		t.Fatalf("current = %s v%d, want misleading v2", current.Rating, current.Version)
	}
}

func TestAssignRatingRequiresSuperAdmin(t *testing.T) {
	store := memory.NewStore()
	store.SetFactCheckState("fc-1", "final_approval")
	service := newService(store)

	actor := identity.Actor{ID: "adm-1", Role: identity.RoleAdmin}
	if _, err := service.AssignRating(context.Background(), "fc-1", actor, "false", justification); !errors.Is(err, domainerrors.ErrPermissionDenied) {
		t.Fatalf("admin assign error = %v, want ErrPermissionDenied", err)
	}
}

func TestAssignRatingRequiresFinalApprovalState(t *testing.T) {
	store := memory.NewStore()
	store.SetFactCheckState("fc-draft", "peer_review")
	service := newService(store)

	// The state gate fires even for super admins.
	if _, err := service.AssignRating(context.Background(), "fc-draft", superAdmin(), "false", justification); !errors.Is(err, domainerrors.ErrInvalidWorkflowState) {
		t.Fatalf("draft assign error = %v, want ErrInvalidWorkflowState", err)
	}
	// And before the role gate for everyone else.
	actor := identity.Actor{ID: "sub-1", Role: identity.RoleSubmitter}
	if _, err := service.AssignRating(context.Background(), "fc-draft", actor, "false", justification); !errors.Is(err, domainerrors.ErrInvalidWorkflowState) {
		t.Fatalf("submitter assign error = %v, want ErrInvalidWorkflowState", err)
	}
	if _, err := service.AssignRating(context.Background(), "fc-missing", superAdmin(), "false", justification); !errors.Is(err, domainerrors.ErrInvalidWorkflowState) {
		t.Fatalf("missing assign error = %v, want ErrInvalidWorkflowState", err)
	}
}

func TestAssignRatingValidatesScaleAndJustification(t *testing.T) {
	store := memory.NewStore()
	store.SetFactCheckState("fc-1", "final_approval")
	service := newService(store)

	if _, err := service.AssignRating(context.Background(), "fc-1", superAdmin(), "pants_on_fire", justification); !errors.Is(err, domainerrors.ErrInvalidRatingInput) {
		t.Fatalf("off-scale error = %v, want ErrInvalidRatingInput", err)
	}
	if _, err := service.AssignRating(context.Background(), "fc-1", superAdmin(), "false", "too short"); !errors.Is(err, domainerrors.ErrInvalidRatingInput) {
		t.Fatalf("short justification error = %v, want ErrInvalidRatingInput", err)
	}
}

func TestAssignRatingHonorsConfiguredScale(t *testing.T) {
	store := memory.NewStore()
	store.SetFactCheckState("fc-1", "final_approval")
	service := newService(store)
	service.Scale = []string{"accurate", "inaccurate"}

	if _, err := service.AssignRating(context.Background(), "fc-1", superAdmin(), "false", justification); !errors.Is(err, domainerrors.ErrInvalidRatingInput) {
		t.Fatalf("default-scale value error = %v, want ErrInvalidRatingInput", err)
	}
	if _, err := service.AssignRating(context.Background(), "fc-1", superAdmin(), "inaccurate", justification); err != nil {
		t.Fatalf("configured-scale assign: %v", err)
	}
}

func TestAppendRatingConflictsOnStaleChainHead(t *testing.T) {
	store := memory.NewStore()
	store.SetFactCheckState("fc-1", "final_approval")
	service := newService(store)

	first, err := service.AssignRating(context.Background(), "fc-1", superAdmin(), "false", justification)
	if err != nil {
		t.Fatalf("AssignRating: %v", err)
	}

	// A writer that read the chain before the assignment sees an empty head.
	stale := entities.RatingVersion{
		RatingID:    "stale-id",
		FactCheckID: "fc-1",
		Rating:      "true",
		Version:     1,
		IsCurrent:   true,
		AssignedBy:  "sa-2",
	}
	if err := store.AppendRating(context.Background(), stale, ""); !errors.Is(err, domainerrors.ErrConflict) {
		t.Fatalf("stale append error = %v, want ErrConflict", err)
	}

	current, err := service.CurrentRating(context.Background(), "fc-1")
	if err != nil {
		t.Fatalf("CurrentRating: %v", err)
	}
	if current.RatingID != first.RatingID {
		t.Fatalf("current = %s, want %s untouched", current.RatingID, first.RatingID)
	}
}

func TestCurrentRatingNotFound(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	if _, err := service.CurrentRating(context.Background(), "fc-unrated"); !errors.Is(err, domainerrors.ErrRatingNotFound) {
		t.Fatalf("unrated error = %v, want ErrRatingNotFound", err)
	}
}
