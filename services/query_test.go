package services

import (
	"math"
	"testing"
	"time"

	"campus-compliance-api/models"
	"campus-compliance-api/store"
)

func TestTotalPagesMatchesCeil(t *testing.T) {
	for total := int64(0); total <= 10000; total++ {
		for limit := 1; limit <= 100; limit++ {
			want := int(math.Ceil(float64(total) / float64(limit)))
			if got := TotalPages(total, limit); got != want {
				t.Fatalf("TotalPages(%d, %d) = %d, want %d", total, limit, got, want)
			}
		}
	}
}

func newTestQueryService(t *testing.T) (*QueryService, *store.MemStore, time.Time) {
	t.Helper()
	mem := store.NewMemStore()
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	qs := NewQueryService(mem)
	qs.Now = func() time.Time { return now }
	return qs, mem, now
}

func seedAudit(t *testing.T, mem *store.MemStore, a models.Audit) {
	t.Helper()
	if err := mem.Insert(a.TableName(), &a); err != nil {
		t.Fatalf("seed audit: %v", err)
	}
}

func TestListAuditsPaginationAndDefaults(t *testing.T) {
	qs, mem, now := newTestQueryService(t)
	for i := 0; i < 25; i++ {
		seedAudit(t, mem, models.Audit{
			AuditID:    string(rune('a' + i)),
			Department: "CSE",
			Status:     models.AuditStatusPending,
			AuditDate:  now.AddDate(0, 0, -i),
		})
	}

	// Invalid page/limit fall back to 1/10.
	audits, p, err := qs.ListAudits(AuditListOptions{Page: 0, Limit: -5})
	if err != nil {
		t.Fatalf("ListAudits: %v", err)
	}
	if p.Page != 1 || p.Limit != 10 {
		t.Errorf("defaulted pagination = page %d limit %d, want 1/10", p.Page, p.Limit)
	}
	if len(audits) != 10 || p.Total != 25 || p.TotalPages != 3 {
		t.Errorf("got %d rows, total %d, totalPages %d; want 10/25/3", len(audits), p.Total, p.TotalPages)
	}

	// Last page holds the remainder.
	audits, p, err = qs.ListAudits(AuditListOptions{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("ListAudits page 3: %v", err)
	}
	if len(audits) != 5 {
		t.Errorf("page 3 rows = %d, want 5", len(audits))
	}
}

func TestListAuditsDepartmentSentinel(t *testing.T) {
	qs, mem, now := newTestQueryService(t)
	seedAudit(t, mem, models.Audit{AuditID: "a1", Department: "CSE", Status: models.AuditStatusPending, AuditDate: now})
	seedAudit(t, mem, models.Audit{AuditID: "a2", Department: "ECE", Status: models.AuditStatusPending, AuditDate: now})

	_, p, err := qs.ListAudits(AuditListOptions{Department: AllDepartments})
	if err != nil {
		t.Fatalf("ListAudits: %v", err)
	}
	if p.Total != 2 {
		t.Errorf("sentinel department filtered: total = %d, want 2", p.Total)
	}

	_, p, err = qs.ListAudits(AuditListOptions{Department: "ECE"})
	if err != nil {
		t.Fatalf("ListAudits: %v", err)
	}
	if p.Total != 1 {
		t.Errorf("department filter: total = %d, want 1", p.Total)
	}
}

func TestListGrievancesSearchIsCaseInsensitiveOverTitleAndDescription(t *testing.T) {
	qs, mem, now := newTestQueryService(t)
	rows := []models.Grievance{
		{GrievanceID: "g1", Title: "Hostel Mess food", Description: "stale", SubmittedDate: now},
		{GrievanceID: "g2", Title: "Library hours", Description: "closes before the MESS does", SubmittedDate: now},
		{GrievanceID: "g3", Title: "Parking", Description: "no space", SubmittedDate: now},
	}
	for _, g := range rows {
		g := g
		if err := mem.Insert(g.TableName(), &g); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	grievances, p, err := qs.ListGrievances(GrievanceListOptions{Search: "mess"})
	if err != nil {
		t.Fatalf("ListGrievances: %v", err)
	}
	if p.Total != 2 || len(grievances) != 2 {
		t.Errorf("search matched %d rows (total %d), want 2", len(grievances), p.Total)
	}
}

func TestOverdueAuditsBoundary(t *testing.T) {
	qs, mem, now := newTestQueryService(t)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	seedAudit(t, mem, models.Audit{AuditID: "past-pending", Status: models.AuditStatusPending, AuditDate: today.AddDate(0, 0, -1)})
	seedAudit(t, mem, models.Audit{AuditID: "past-progress", Status: models.AuditStatusInProgress, AuditDate: today.AddDate(0, 0, -3)})
	seedAudit(t, mem, models.Audit{AuditID: "today-pending", Status: models.AuditStatusPending, AuditDate: today})
	seedAudit(t, mem, models.Audit{AuditID: "past-completed", Status: models.AuditStatusCompleted, AuditDate: today.AddDate(0, 0, -5)})

	audits, err := qs.OverdueAudits()
	if err != nil {
		t.Fatalf("OverdueAudits: %v", err)
	}
	if len(audits) != 2 {
		t.Fatalf("overdue count = %d, want 2", len(audits))
	}
	// Ascending by date: the 3-day-old one first.
	if audits[0].AuditID != "past-progress" || audits[1].AuditID != "past-pending" {
		t.Errorf("order = [%s %s], want [past-progress past-pending]", audits[0].AuditID, audits[1].AuditID)
	}
}

func TestPoliciesDueForReviewBoundary(t *testing.T) {
	qs, mem, now := newTestQueryService(t)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	for id, due := range map[string]*time.Time{
		"p-overdue":  &yesterday,
		"p-today":    &today,
		"p-tomorrow": &tomorrow,
		"p-none":     nil,
	} {
		p := models.Policy{PolicyID: id, ComplianceStatus: models.ComplianceStatusCompliant, NextDueDate: due}
		if err := mem.Insert(p.TableName(), &p); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	policies, err := qs.PoliciesDueForReview()
	if err != nil {
		t.Fatalf("PoliciesDueForReview: %v", err)
	}
	if len(policies) != 2 {
		t.Fatalf("due count = %d, want 2 (yesterday and today)", len(policies))
	}
	if policies[0].PolicyID != "p-overdue" || policies[1].PolicyID != "p-today" {
		t.Errorf("order = [%s %s], want [p-overdue p-today]", policies[0].PolicyID, policies[1].PolicyID)
	}
}
