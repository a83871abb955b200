package services

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"campus-compliance-api/models"
	"campus-compliance-api/store"
)

// LifecycleTracker computes the derived temporal fields written alongside
// record updates: the sequential faculty code on create and the grievance
// resolution timestamps on the transition into resolved. It never issues
// writes itself; derived fields are folded into the caller's patch so they
// commit in the same store write as the rest of the payload.
type LifecycleTracker struct {
	Store store.Store
	Now   func() time.Time
}

func NewLifecycleTracker(s store.Store) *LifecycleTracker {
	return &LifecycleTracker{Store: s, Now: time.Now}
}

// NextFacultyID returns the next sequential faculty code (F0001, F0002, ...).
//
// This is a non-atomic read-then-write: two concurrent creates can race to
// the same code. The unique index on faculty_id turns that race into a failed
// insert rather than a silent duplicate; there is no retry.
func (t *LifecycleTracker) NextFacultyID() (string, error) {
	var rows []models.FacultyPerformance
	_, err := t.Store.Find(store.Query{
		Table: models.FacultyPerformance{}.TableName(),
		Order: []store.Order{{Field: "faculty_id", Desc: true}},
		Range: &store.Range{From: 0, To: 0},
	}, &rows)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "F0001", nil
	}

	last := rows[0].FacultyID
	n, err := strconv.Atoi(strings.TrimPrefix(last, "F"))
	if err != nil {
		return "", fmt.Errorf("malformed faculty code %q: %w", last, err)
	}
	return fmt.Sprintf("F%04d", n+1), nil
}

// ApplyResolutionFields inspects a grievance update patch and, when it moves
// the record into resolved, folds the derived resolution fields into the same
// patch:
//
//   - no resolved_date in the patch: the stored record is read; if it is not
//     yet resolved, resolved_date is stamped with the current time and
//     resolution_time_hours is computed from submitted_date. A record that
//     already carries a resolved_date keeps both fields untouched.
//   - resolved_date supplied by the caller: trusted as-is, and
//     resolution_time_hours is recomputed from it only when the
//     submitted_date lookup succeeds.
//
// A failed lookup is non-fatal either way; the update proceeds without the
// derived duration.
func (t *LifecycleTracker) ApplyResolutionFields(grievanceID string, patch map[string]interface{}) {
	status, ok := patch["status"].(string)
	if !ok || status != models.GrievanceStatusResolved {
		return
	}

	existing, found := t.lookupGrievance(grievanceID)

	if supplied, has := patch["resolved_date"]; has {
		resolvedAt, ok := supplied.(time.Time)
		if ok && found {
			patch["resolution_time_hours"] = roundHours(resolvedAt.Sub(existing.SubmittedDate))
		}
		return
	}

	if found && existing.ResolvedDate != nil {
		// Already resolved; re-applying the transition must not move the
		// timestamp or the computed duration.
		delete(patch, "resolved_date")
		return
	}

	now := t.Now()
	patch["resolved_date"] = now
	if found {
		patch["resolution_time_hours"] = roundHours(now.Sub(existing.SubmittedDate))
	}
}

func (t *LifecycleTracker) lookupGrievance(id string) (*models.Grievance, bool) {
	var rows []models.Grievance
	_, err := t.Store.Find(store.Query{
		Table:   models.Grievance{}.TableName(),
		Filters: []store.Filter{store.Eq("grievance_id", id)},
		Range:   &store.Range{From: 0, To: 0},
	}, &rows)
	if err != nil {
		log.Printf("resolution lookup for grievance %s failed: %v", id, err)
		return nil, false
	}
	if len(rows) == 0 {
		return nil, false
	}
	return &rows[0], true
}

func roundHours(d time.Duration) int {
	return int(math.Round(d.Hours()))
}
