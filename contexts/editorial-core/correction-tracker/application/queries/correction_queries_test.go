package queries

import (
	"context"
	"testing"
	"time"

	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/adapters/memory"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/domain/entities"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var testNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func seedCorrection(
	t *testing.T,
	store *memory.Store,
	id string,
	correctionType entities.CorrectionType,
	status entities.CorrectionStatus,
	createdAt time.Time,
	deadline time.Time,
) {
	t.Helper()
	err := store.CreateCorrection(context.Background(), entities.Correction{
		CorrectionID: id,
		FactCheckID:  "fc-1",
		Type:         correctionType,
		Status:       status,
		Details:      "the cited statistic uses the wrong base year",
		SLADeadline:  deadline,
		RowVersion:   1,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestTriageListOrdersBySeverityThenAge(t *testing.T) {
	store := memory.NewStore()
	q := CorrectionQueries{Repository: store, Clock: fixedClock{now: testNow}}

	deadline := testNow.Add(48 * time.Hour)
	seedCorrection(t, store, "minor-old", entities.CorrectionMinor, entities.CorrectionPending, testNow.Add(-72*time.Hour), deadline)
	seedCorrection(t, store, "update-new", entities.CorrectionUpdate, entities.CorrectionPending, testNow.Add(-1*time.Hour), deadline)
	seedCorrection(t, store, "substantial-new", entities.CorrectionSubstantial, entities.CorrectionPending, testNow.Add(-1*time.Hour), deadline)
	seedCorrection(t, store, "substantial-old", entities.CorrectionSubstantial, entities.CorrectionPending, testNow.Add(-48*time.Hour), deadline)
	seedCorrection(t, store, "rejected", entities.CorrectionSubstantial, entities.CorrectionRejected, testNow.Add(-96*time.Hour), deadline)

	items, err := q.TriageList(context.Background())
	if err != nil {
		t.Fatalf("TriageList: %v", err)
	}
	got := make([]string, 0, len(items))
	for _, item := range items {
		got = append(got, item.Correction.CorrectionID)
	}
	want := []string{"substantial-old", "substantial-new", "update-new", "minor-old"}
	if len(got) != len(want) {
		t.Fatalf("triage size = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("triage[%d] = %s, want %s (full order %v)", i, got[i], want[i], got)
		}
	}
}

func TestOverdueCountIgnoresResolvedCorrections(t *testing.T) {
	store := memory.NewStore()
	q := CorrectionQueries{Repository: store, Clock: fixedClock{now: testNow}}

	missed := testNow.Add(-48 * time.Hour)
	seedCorrection(t, store, "late-pending", entities.CorrectionSubstantial, entities.CorrectionPending, missed, missed)
	seedCorrection(t, store, "late-applied", entities.CorrectionSubstantial, entities.CorrectionApplied, missed, missed)
	seedCorrection(t, store, "on-track", entities.CorrectionMinor, entities.CorrectionPending, testNow, testNow.Add(72*time.Hour))

	count, err := q.OverdueCount(context.Background())
	if err != nil {
		t.Fatalf("OverdueCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("overdue count = %d, want 1", count)
	}
}
