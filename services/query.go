package services

import (
	"time"

	"campus-compliance-api/models"
	"campus-compliance-api/store"
)

// AllDepartments is the client-side sentinel meaning "do not filter by
// department".
const AllDepartments = "All Departments"

// Default page geometry for list endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Pagination is the envelope block accompanying every list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// TotalPages computes ceil(total/limit) in integer math.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// QueryService builds the filtered, paginated views over the compliance
// collections. All filters combine conjunctively; free-text search matches
// case-insensitively across the entity's text columns.
type QueryService struct {
	Store store.Store
	Now   func() time.Time
}

func NewQueryService(s store.Store) *QueryService {
	return &QueryService{Store: s, Now: time.Now}
}

// list runs one paginated Find. Page and limit fall back to the defaults
// when non-positive; the store range is inclusive: [from, from+limit-1].
func (s *QueryService) list(table string, filters []store.Filter, order []store.Order, page, limit int, dest interface{}) (Pagination, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	from := (page - 1) * limit
	to := from + limit - 1

	total, err := s.Store.Find(store.Query{
		Table:   table,
		Filters: filters,
		Order:   order,
		Range:   &store.Range{From: from, To: to},
	}, dest)
	if err != nil {
		return Pagination{}, err
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: TotalPages(total, limit)}, nil
}

// AuditListOptions are the supported audit list filters.
type AuditListOptions struct {
	Department string
	Status     string
	AuditType  string
	Search     string
	Page       int
	Limit      int
}

func (s *QueryService) ListAudits(opts AuditListOptions) ([]models.Audit, Pagination, error) {
	var filters []store.Filter
	if opts.Department != "" && opts.Department != AllDepartments {
		filters = append(filters, store.Eq("department", opts.Department))
	}
	if opts.Status != "" {
		filters = append(filters, store.Eq("status", opts.Status))
	}
	if opts.AuditType != "" {
		filters = append(filters, store.Eq("audit_type", opts.AuditType))
	}
	if opts.Search != "" {
		filters = append(filters, store.Search(opts.Search, "department", "auditor", "findings"))
	}

	var audits []models.Audit
	p, err := s.list(models.Audit{}.TableName(), filters,
		[]store.Order{{Field: "audit_date", Desc: true}}, opts.Page, opts.Limit, &audits)
	return audits, p, err
}

// GrievanceListOptions are the supported grievance list filters.
type GrievanceListOptions struct {
	Status   string
	Category string
	Priority string
	UserType string
	Search   string
	Page     int
	Limit    int
}

func (s *QueryService) ListGrievances(opts GrievanceListOptions) ([]models.Grievance, Pagination, error) {
	var filters []store.Filter
	if opts.Status != "" {
		filters = append(filters, store.Eq("status", opts.Status))
	}
	if opts.Category != "" {
		filters = append(filters, store.Eq("category", opts.Category))
	}
	if opts.Priority != "" {
		filters = append(filters, store.Eq("priority", opts.Priority))
	}
	if opts.UserType != "" {
		filters = append(filters, store.Eq("user_type", opts.UserType))
	}
	if opts.Search != "" {
		filters = append(filters, store.Search(opts.Search, "title", "description"))
	}

	var grievances []models.Grievance
	p, err := s.list(models.Grievance{}.TableName(), filters,
		[]store.Order{{Field: "submitted_date", Desc: true}}, opts.Page, opts.Limit, &grievances)
	return grievances, p, err
}

// PolicyListOptions are the supported policy list filters.
type PolicyListOptions struct {
	Department       string
	ComplianceStatus string
	Category         string
	Search           string
	Page             int
	Limit            int
}

func (s *QueryService) ListPolicies(opts PolicyListOptions) ([]models.Policy, Pagination, error) {
	var filters []store.Filter
	if opts.Department != "" && opts.Department != AllDepartments {
		filters = append(filters, store.Eq("department", opts.Department))
	}
	if opts.ComplianceStatus != "" {
		filters = append(filters, store.Eq("compliance_status", opts.ComplianceStatus))
	}
	if opts.Category != "" {
		filters = append(filters, store.Eq("category", opts.Category))
	}
	if opts.Search != "" {
		filters = append(filters, store.Search(opts.Search, "title", "description"))
	}

	var policies []models.Policy
	p, err := s.list(models.Policy{}.TableName(), filters,
		[]store.Order{{Field: "create_at", Desc: true}}, opts.Page, opts.Limit, &policies)
	return policies, p, err
}

// FacultyListOptions are the supported faculty-performance list filters.
type FacultyListOptions struct {
	Department string
	Search     string
	Page       int
	Limit      int
}

func (s *QueryService) ListFacultyPerformance(opts FacultyListOptions) ([]models.FacultyPerformance, Pagination, error) {
	var filters []store.Filter
	if opts.Department != "" && opts.Department != AllDepartments {
		filters = append(filters, store.Eq("department", opts.Department))
	}
	if opts.Search != "" {
		filters = append(filters, store.Search(opts.Search, "faculty_id", "department"))
	}

	var records []models.FacultyPerformance
	p, err := s.list(models.FacultyPerformance{}.TableName(), filters,
		[]store.Order{{Field: "faculty_id", Desc: false}}, opts.Page, opts.Limit, &records)
	return records, p, err
}

// OverdueAudits returns audits still pending or in progress whose scheduled
// date has passed, oldest first. Unpaginated: the result feeds dashboards.
func (s *QueryService) OverdueAudits() ([]models.Audit, error) {
	today := startOfDay(s.Now())
	var audits []models.Audit
	_, err := s.Store.Find(store.Query{
		Table: models.Audit{}.TableName(),
		Filters: []store.Filter{
			store.In("status", []string{models.AuditStatusPending, models.AuditStatusInProgress}),
			store.Lt("audit_date", today),
		},
		Order: []store.Order{{Field: "audit_date"}},
	}, &audits)
	return audits, err
}

// PoliciesDueForReview returns policies whose next review date is today or
// earlier, soonest first.
func (s *QueryService) PoliciesDueForReview() ([]models.Policy, error) {
	today := startOfDay(s.Now())
	var policies []models.Policy
	_, err := s.Store.Find(store.Query{
		Table: models.Policy{}.TableName(),
		Filters: []store.Filter{
			store.Lte("next_due_date", today),
		},
		Order: []store.Order{{Field: "next_due_date"}},
	}, &policies)
	return policies, err
}

// NonCompliantPolicies returns the plain non_compliant list, soonest review
// first.
func (s *QueryService) NonCompliantPolicies() ([]models.Policy, error) {
	var policies []models.Policy
	_, err := s.Store.Find(store.Query{
		Table: models.Policy{}.TableName(),
		Filters: []store.Filter{
			store.Eq("compliance_status", models.ComplianceStatusNonCompliant),
		},
		Order: []store.Order{{Field: "next_due_date"}},
	}, &policies)
	return policies, err
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
