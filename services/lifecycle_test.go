package services

import (
	"testing"
	"time"

	"campus-compliance-api/models"
	"campus-compliance-api/store"
)

func newTestTracker(t *testing.T) (*LifecycleTracker, *store.MemStore, time.Time) {
	t.Helper()
	mem := store.NewMemStore()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	tracker := NewLifecycleTracker(mem)
	tracker.Now = func() time.Time { return now }
	return tracker, mem, now
}

func seedGrievance(t *testing.T, mem *store.MemStore, g models.Grievance) {
	t.Helper()
	if err := mem.Insert(g.TableName(), &g); err != nil {
		t.Fatalf("seed grievance: %v", err)
	}
}

func TestNextFacultyIDSeedsFromEmptyCollection(t *testing.T) {
	tracker, _, _ := newTestTracker(t)

	id, err := tracker.NextFacultyID()
	if err != nil {
		t.Fatalf("NextFacultyID: %v", err)
	}
	if id != "F0001" {
		t.Errorf("NextFacultyID = %q, want F0001", id)
	}
}

func TestNextFacultyIDIncrementsHighestCode(t *testing.T) {
	tracker, mem, _ := newTestTracker(t)
	for _, code := range []string{"F0007", "F0042", "F0013"} {
		rec := models.FacultyPerformance{PerformanceID: code + "-row", FacultyID: code, Department: "CSE"}
		if err := mem.Insert(rec.TableName(), &rec); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	id, err := tracker.NextFacultyID()
	if err != nil {
		t.Fatalf("NextFacultyID: %v", err)
	}
	if id != "F0043" {
		t.Errorf("NextFacultyID = %q, want F0043", id)
	}
}

func TestApplyResolutionFieldsStampsAndComputes(t *testing.T) {
	tracker, mem, now := newTestTracker(t)
	seedGrievance(t, mem, models.Grievance{
		GrievanceID:   "g1",
		Status:        models.GrievanceStatusInProgress,
		SubmittedDate: now.Add(-47*time.Hour - 30*time.Minute),
	})

	patch := map[string]interface{}{"status": models.GrievanceStatusResolved}
	tracker.ApplyResolutionFields("g1", patch)

	resolvedAt, ok := patch["resolved_date"].(time.Time)
	if !ok || !resolvedAt.Equal(now) {
		t.Fatalf("resolved_date = %v, want %v", patch["resolved_date"], now)
	}
	if hours, ok := patch["resolution_time_hours"].(int); !ok || hours != 48 {
		t.Errorf("resolution_time_hours = %v, want 48 (47.5h rounded)", patch["resolution_time_hours"])
	}
}

func TestApplyResolutionFieldsTrustsCallerDate(t *testing.T) {
	tracker, mem, now := newTestTracker(t)
	submitted := now.Add(-100 * time.Hour)
	seedGrievance(t, mem, models.Grievance{
		GrievanceID:   "g2",
		Status:        models.GrievanceStatusInProgress,
		SubmittedDate: submitted,
	})

	callerDate := submitted.Add(10 * time.Hour)
	patch := map[string]interface{}{
		"status":        models.GrievanceStatusResolved,
		"resolved_date": callerDate,
	}
	tracker.ApplyResolutionFields("g2", patch)

	if got := patch["resolved_date"].(time.Time); !got.Equal(callerDate) {
		t.Errorf("resolved_date was moved to %v, want caller's %v", got, callerDate)
	}
	if hours, ok := patch["resolution_time_hours"].(int); !ok || hours != 10 {
		t.Errorf("resolution_time_hours = %v, want 10", patch["resolution_time_hours"])
	}
}

func TestApplyResolutionFieldsMissingRecordIsNonFatal(t *testing.T) {
	tracker, _, now := newTestTracker(t)

	patch := map[string]interface{}{"status": models.GrievanceStatusResolved}
	tracker.ApplyResolutionFields("absent", patch)

	if got, ok := patch["resolved_date"].(time.Time); !ok || !got.Equal(now) {
		t.Errorf("resolved_date = %v, want stamp %v", patch["resolved_date"], now)
	}
	if _, present := patch["resolution_time_hours"]; present {
		t.Error("resolution_time_hours computed without a submitted_date to compute from")
	}
}

func TestApplyResolutionFieldsDoesNotRestampResolvedRecord(t *testing.T) {
	tracker, mem, now := newTestTracker(t)
	resolvedAt := now.Add(-24 * time.Hour)
	hours := 72
	seedGrievance(t, mem, models.Grievance{
		GrievanceID:         "g3",
		Status:              models.GrievanceStatusResolved,
		SubmittedDate:       now.Add(-96 * time.Hour),
		ResolvedDate:        &resolvedAt,
		ResolutionTimeHours: &hours,
	})

	patch := map[string]interface{}{"status": models.GrievanceStatusResolved}
	tracker.ApplyResolutionFields("g3", patch)

	if _, present := patch["resolved_date"]; present {
		t.Error("re-applying resolve restamped resolved_date")
	}
	if _, present := patch["resolution_time_hours"]; present {
		t.Error("re-applying resolve recomputed resolution_time_hours")
	}
}

func TestApplyResolutionFieldsIgnoresOtherStatuses(t *testing.T) {
	tracker, mem, _ := newTestTracker(t)
	seedGrievance(t, mem, models.Grievance{GrievanceID: "g4", Status: models.GrievanceStatusPending})

	patch := map[string]interface{}{"status": models.GrievanceStatusInProgress, "assigned_to": 7}
	tracker.ApplyResolutionFields("g4", patch)

	if len(patch) != 2 {
		t.Errorf("patch mutated for non-resolved status: %v", patch)
	}
}
