package services

import (
	"math"
	"sort"
	"time"

	"campus-compliance-api/models"
	"campus-compliance-api/store"
)

// AnalyticsService produces the aggregate views shown on the compliance
// dashboard. It is read-only and always re-derives from the full collections;
// nothing is cached or incrementally maintained.
//
// Null handling is deliberately uneven, matching the upstream call sites:
// department scores default a missing compliance_score to 0, the
// distributions omit empty groups, and resolution-time averages skip records
// without a computed duration.
type AnalyticsService struct {
	Store  store.Store
	Now    func() time.Time
	Trends TrendProvider
}

func NewAnalyticsService(s store.Store) *AnalyticsService {
	return &AnalyticsService{Store: s, Now: time.Now, Trends: IllustrativeTrends{}}
}

// DepartmentScore is one row of the per-department compliance rollup.
type DepartmentScore struct {
	Department string `json:"department"`
	Score      int    `json:"score"`
	AuditCount int    `json:"audit_count"`
}

// StatusCount is one row of a status distribution.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// CategoryCount is one row of a category distribution.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryResolutionTime is the average wall-clock resolution time for one
// grievance category.
type CategoryResolutionTime struct {
	Category string `json:"category"`
	AvgHours int    `json:"avg_hours"`
	Resolved int    `json:"resolved"`
}

// PolicyDeadline is a policy whose next review falls inside the upcoming
// window.
type PolicyDeadline struct {
	models.Policy
	DaysLeft int `json:"days_left"`
}

// DepartmentComplianceScores groups all audits by department and emits the
// rounded mean compliance score. A missing score counts as 0 toward its
// department's average, so a department whose only audits are unscored still
// appears, with score 0.
func (s *AnalyticsService) DepartmentComplianceScores() ([]DepartmentScore, error) {
	var audits []models.Audit
	if _, err := s.Store.Find(store.Query{Table: models.Audit{}.TableName()}, &audits); err != nil {
		return nil, err
	}

	type acc struct {
		sum   float64
		count int
	}
	byDept := make(map[string]*acc)
	for _, a := range audits {
		entry := byDept[a.Department]
		if entry == nil {
			entry = &acc{}
			byDept[a.Department] = entry
		}
		if a.ComplianceScore != nil {
			entry.sum += *a.ComplianceScore
		}
		entry.count++
	}

	scores := make([]DepartmentScore, 0, len(byDept))
	for dept, entry := range byDept {
		scores = append(scores, DepartmentScore{
			Department: dept,
			Score:      int(math.Round(entry.sum / float64(entry.count))),
			AuditCount: entry.count,
		})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].Department < scores[j].Department })
	return scores, nil
}

// AuditStatusDistribution counts audits per status. Statuses with no records
// are omitted, not zero-filled.
func (s *AnalyticsService) AuditStatusDistribution() ([]StatusCount, error) {
	var audits []models.Audit
	if _, err := s.Store.Find(store.Query{Table: models.Audit{}.TableName()}, &audits); err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, a := range audits {
		counts[a.Status]++
	}
	return statusCounts(counts), nil
}

// GrievanceStatusDistribution counts grievances per status; empty statuses
// are omitted.
func (s *AnalyticsService) GrievanceStatusDistribution() ([]StatusCount, error) {
	var grievances []models.Grievance
	if _, err := s.Store.Find(store.Query{Table: models.Grievance{}.TableName()}, &grievances); err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, g := range grievances {
		counts[g.Status]++
	}
	return statusCounts(counts), nil
}

// GrievanceCategoryDistribution counts grievances per (human-editable)
// category; empty categories are omitted.
func (s *AnalyticsService) GrievanceCategoryDistribution() ([]CategoryCount, error) {
	var grievances []models.Grievance
	if _, err := s.Store.Find(store.Query{Table: models.Grievance{}.TableName()}, &grievances); err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, g := range grievances {
		counts[g.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for category, count := range counts {
		out = append(out, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

// ResolutionTimeByCategory averages resolution_time_hours per category over
// resolved grievances only; records without a computed duration are skipped.
func (s *AnalyticsService) ResolutionTimeByCategory() ([]CategoryResolutionTime, error) {
	var grievances []models.Grievance
	if _, err := s.Store.Find(store.Query{Table: models.Grievance{}.TableName()}, &grievances); err != nil {
		return nil, err
	}

	type acc struct {
		sum   int
		count int
	}
	byCategory := make(map[string]*acc)
	for _, g := range grievances {
		if g.ResolutionTimeHours == nil {
			continue
		}
		entry := byCategory[g.Category]
		if entry == nil {
			entry = &acc{}
			byCategory[g.Category] = entry
		}
		entry.sum += *g.ResolutionTimeHours
		entry.count++
	}

	out := make([]CategoryResolutionTime, 0, len(byCategory))
	for category, entry := range byCategory {
		out = append(out, CategoryResolutionTime{
			Category: category,
			AvgHours: int(math.Round(float64(entry.sum) / float64(entry.count))),
			Resolved: entry.count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

// UpcomingPolicyDeadlines returns policies whose next review falls within
// [today, today+windowDays], with days_left rounded up. windowDays <= 0
// falls back to 30.
func (s *AnalyticsService) UpcomingPolicyDeadlines(windowDays int) ([]PolicyDeadline, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	today := startOfDay(s.Now())
	horizon := today.AddDate(0, 0, windowDays)

	var policies []models.Policy
	_, err := s.Store.Find(store.Query{
		Table: models.Policy{}.TableName(),
		Filters: []store.Filter{
			store.Gte("next_due_date", today),
			store.Lte("next_due_date", horizon),
		},
		Order: []store.Order{{Field: "next_due_date"}},
	}, &policies)
	if err != nil {
		return nil, err
	}

	deadlines := make([]PolicyDeadline, 0, len(policies))
	for _, p := range policies {
		daysLeft := 0
		if p.NextDueDate != nil {
			daysLeft = int(math.Ceil(p.NextDueDate.Sub(today).Hours() / 24))
		}
		deadlines = append(deadlines, PolicyDeadline{Policy: p, DaysLeft: daysLeft})
	}
	return deadlines, nil
}

// DashboardStats is the headline rollup for the compliance dashboard.
func (s *AnalyticsService) DashboardStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})
	today := startOfDay(s.Now())

	var audits []models.Audit
	if _, err := s.Store.Find(store.Query{Table: models.Audit{}.TableName()}, &audits); err != nil {
		return nil, err
	}
	overdue := 0
	completed := 0
	for _, a := range audits {
		if a.Status == models.AuditStatusCompleted {
			completed++
		}
		if (a.Status == models.AuditStatusPending || a.Status == models.AuditStatusInProgress) &&
			a.AuditDate.Before(today) {
			overdue++
		}
	}
	stats["total_audits"] = len(audits)
	stats["completed_audits"] = completed
	stats["overdue_audits"] = overdue

	var grievances []models.Grievance
	if _, err := s.Store.Find(store.Query{Table: models.Grievance{}.TableName()}, &grievances); err != nil {
		return nil, err
	}
	pending := 0
	resolved := 0
	for _, g := range grievances {
		switch g.Status {
		case models.GrievanceStatusPending:
			pending++
		case models.GrievanceStatusResolved:
			resolved++
		}
	}
	stats["total_grievances"] = len(grievances)
	stats["pending_grievances"] = pending
	stats["resolved_grievances"] = resolved

	var policies []models.Policy
	if _, err := s.Store.Find(store.Query{Table: models.Policy{}.TableName()}, &policies); err != nil {
		return nil, err
	}
	nonCompliant := 0
	for _, p := range policies {
		if p.ComplianceStatus == models.ComplianceStatusNonCompliant {
			nonCompliant++
		}
	}
	stats["total_policies"] = len(policies)
	stats["non_compliant_policies"] = nonCompliant

	stats["current_date"] = today.Format("2006-01-02")
	return stats, nil
}

func statusCounts(counts map[string]int) []StatusCount {
	out := make([]StatusCount, 0, len(counts))
	for status, count := range counts {
		out = append(out, StatusCount{Status: status, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}
