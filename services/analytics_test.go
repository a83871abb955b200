package services

import (
	"testing"
	"time"

	"campus-compliance-api/models"
	"campus-compliance-api/store"
)

func newTestAnalytics(t *testing.T) (*AnalyticsService, *store.MemStore, time.Time) {
	t.Helper()
	mem := store.NewMemStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	as := NewAnalyticsService(mem)
	as.Now = func() time.Time { return now }
	return as, mem, now
}

func score(v float64) *float64 { return &v }

// A department whose only audits carry no score still appears, with score 0:
// the missing score defaults to 0 inside its own average.
func TestDepartmentComplianceScoresNullDefaultsToZero(t *testing.T) {
	as, mem, now := newTestAnalytics(t)
	audits := []models.Audit{
		{AuditID: "a1", Department: "CSE", Status: models.AuditStatusCompleted, AuditDate: now, ComplianceScore: score(80)},
		{AuditID: "a2", Department: "CSE", Status: models.AuditStatusCompleted, AuditDate: now, ComplianceScore: score(90)},
		{AuditID: "a3", Department: "ECE", Status: models.AuditStatusPending, AuditDate: now},
	}
	for _, a := range audits {
		a := a
		if err := mem.Insert(a.TableName(), &a); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	scores, err := as.DepartmentComplianceScores()
	if err != nil {
		t.Fatalf("DepartmentComplianceScores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("got %d departments, want 2", len(scores))
	}
	if scores[0].Department != "CSE" || scores[0].Score != 85 || scores[0].AuditCount != 2 {
		t.Errorf("CSE = %+v, want score 85 over 2 audits", scores[0])
	}
	if scores[1].Department != "ECE" || scores[1].Score != 0 || scores[1].AuditCount != 1 {
		t.Errorf("ECE = %+v, want score 0 over 1 audit", scores[1])
	}
}

func TestDepartmentComplianceScoresRoundsMean(t *testing.T) {
	as, mem, now := newTestAnalytics(t)
	for i, v := range []float64{70, 71} {
		a := models.Audit{AuditID: string(rune('x' + i)), Department: "LAW", AuditDate: now, ComplianceScore: score(v)}
		if err := mem.Insert(a.TableName(), &a); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	scores, err := as.DepartmentComplianceScores()
	if err != nil {
		t.Fatalf("DepartmentComplianceScores: %v", err)
	}
	if scores[0].Score != 71 { // 70.5 rounds half away from zero
		t.Errorf("LAW score = %d, want 71", scores[0].Score)
	}
}

func TestStatusDistributionsOmitEmptyGroups(t *testing.T) {
	as, mem, now := newTestAnalytics(t)
	grievances := []models.Grievance{
		{GrievanceID: "g1", Status: models.GrievanceStatusPending, Category: models.CategoryGeneral, SubmittedDate: now},
		{GrievanceID: "g2", Status: models.GrievanceStatusPending, Category: models.CategoryAcademic, SubmittedDate: now},
		{GrievanceID: "g3", Status: models.GrievanceStatusResolved, Category: models.CategoryAcademic, SubmittedDate: now},
	}
	for _, g := range grievances {
		g := g
		if err := mem.Insert(g.TableName(), &g); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	statuses, err := as.GrievanceStatusDistribution()
	if err != nil {
		t.Fatalf("GrievanceStatusDistribution: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("distribution has %d statuses, want 2 (in_progress omitted, not zero-filled)", len(statuses))
	}
	if statuses[0].Status != models.GrievanceStatusPending || statuses[0].Count != 2 {
		t.Errorf("pending = %+v, want count 2", statuses[0])
	}
	if statuses[1].Status != models.GrievanceStatusResolved || statuses[1].Count != 1 {
		t.Errorf("resolved = %+v, want count 1", statuses[1])
	}

	categories, err := as.GrievanceCategoryDistribution()
	if err != nil {
		t.Fatalf("GrievanceCategoryDistribution: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("category distribution has %d groups, want 2", len(categories))
	}
}

func TestResolutionTimeByCategorySkipsNullDurations(t *testing.T) {
	as, mem, now := newTestAnalytics(t)
	h24, h49 := 24, 49
	grievances := []models.Grievance{
		{GrievanceID: "g1", Category: models.CategoryAcademic, Status: models.GrievanceStatusResolved, SubmittedDate: now, ResolutionTimeHours: &h24},
		{GrievanceID: "g2", Category: models.CategoryAcademic, Status: models.GrievanceStatusResolved, SubmittedDate: now, ResolutionTimeHours: &h49},
		{GrievanceID: "g3", Category: models.CategoryAcademic, Status: models.GrievanceStatusPending, SubmittedDate: now},
		{GrievanceID: "g4", Category: models.CategoryFinancial, Status: models.GrievanceStatusPending, SubmittedDate: now},
	}
	for _, g := range grievances {
		g := g
		if err := mem.Insert(g.TableName(), &g); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	times, err := as.ResolutionTimeByCategory()
	if err != nil {
		t.Fatalf("ResolutionTimeByCategory: %v", err)
	}
	if len(times) != 1 {
		t.Fatalf("got %d categories, want 1 (Financial has no computed durations)", len(times))
	}
	got := times[0]
	if got.Category != models.CategoryAcademic || got.AvgHours != 37 || got.Resolved != 2 {
		t.Errorf("Academic = %+v, want avg 37 (36.5 rounded) over 2", got)
	}
}

func TestUpcomingPolicyDeadlinesWindowAndDaysLeft(t *testing.T) {
	as, mem, now := newTestAnalytics(t)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	dates := map[string]time.Time{
		"p-today":  today,
		"p-in10":   today.AddDate(0, 0, 10),
		"p-edge30": today.AddDate(0, 0, 30),
		"p-past":   today.AddDate(0, 0, -1),
		"p-beyond": today.AddDate(0, 0, 31),
	}
	for id, due := range dates {
		due := due
		p := models.Policy{PolicyID: id, NextDueDate: &due, ComplianceStatus: models.ComplianceStatusCompliant}
		if err := mem.Insert(p.TableName(), &p); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	deadlines, err := as.UpcomingPolicyDeadlines(30)
	if err != nil {
		t.Fatalf("UpcomingPolicyDeadlines: %v", err)
	}
	if len(deadlines) != 3 {
		t.Fatalf("window holds %d policies, want 3 (today, +10, +30)", len(deadlines))
	}

	daysLeft := make(map[string]int)
	for _, d := range deadlines {
		daysLeft[d.PolicyID] = d.DaysLeft
	}
	if daysLeft["p-today"] != 0 {
		t.Errorf("p-today days_left = %d, want 0", daysLeft["p-today"])
	}
	if daysLeft["p-in10"] != 10 {
		t.Errorf("p-in10 days_left = %d, want 10", daysLeft["p-in10"])
	}
	if daysLeft["p-edge30"] != 30 {
		t.Errorf("p-edge30 days_left = %d, want 30", daysLeft["p-edge30"])
	}
}

func TestDashboardStatsRollup(t *testing.T) {
	as, mem, now := newTestAnalytics(t)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	seed := []interface{}{
		&models.Audit{AuditID: "a1", Status: models.AuditStatusCompleted, AuditDate: today.AddDate(0, 0, -10)},
		&models.Audit{AuditID: "a2", Status: models.AuditStatusPending, AuditDate: today.AddDate(0, 0, -2)},
		&models.Grievance{GrievanceID: "g1", Status: models.GrievanceStatusPending, SubmittedDate: now},
		&models.Policy{PolicyID: "p1", ComplianceStatus: models.ComplianceStatusNonCompliant},
	}
	tables := []string{"audits", "audits", "grievances", "policies"}
	for i, row := range seed {
		if err := mem.Insert(tables[i], row); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	stats, err := as.DashboardStats()
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	checks := map[string]int{
		"total_audits":           2,
		"completed_audits":       1,
		"overdue_audits":         1,
		"total_grievances":       1,
		"pending_grievances":     1,
		"resolved_grievances":    0,
		"total_policies":         1,
		"non_compliant_policies": 1,
	}
	for key, want := range checks {
		if got, _ := stats[key].(int); got != want {
			t.Errorf("stats[%q] = %v, want %d", key, stats[key], want)
		}
	}
}
