package models

import "time"

// Grievance categories (fixed taxonomy, see services.ClassifyGrievance)
const (
	CategoryAcademic       = "Academic"
	CategoryInfrastructure = "Infrastructure"
	CategoryFinancial      = "Financial"
	CategoryConduct        = "Conduct"
	CategoryAdministrative = "Administrative"
	CategoryGeneral        = "General"
)

// Grievance priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Grievance statuses. The only enforced lifecycle in the system:
// pending -> in_progress -> resolved, no way back from resolved.
const (
	GrievanceStatusPending    = "pending"
	GrievanceStatusInProgress = "in_progress"
	GrievanceStatusResolved   = "resolved"
)

// Submitter types
const (
	UserTypeStudent = "student"
	UserTypeFaculty = "faculty"
	UserTypeStaff   = "staff"
)

// Grievance represents the grievances table
type Grievance struct {
	GrievanceID         string     `gorm:"primaryKey;column:grievance_id" json:"grievance_id"`
	Title               string     `gorm:"column:title" json:"title"`
	Description         string     `gorm:"column:description" json:"description"`
	Category            string     `gorm:"column:category" json:"category"`
	Priority            string     `gorm:"column:priority" json:"priority"`
	Status              string     `gorm:"column:status" json:"status"`
	UserType            string     `gorm:"column:user_type" json:"user_type"`
	SubmittedBy         int        `gorm:"column:submitted_by" json:"submitted_by"`
	AssignedTo          *int       `gorm:"column:assigned_to" json:"assigned_to,omitempty"`
	SubmittedDate       time.Time  `gorm:"column:submitted_date" json:"submitted_date"`
	ResolvedDate        *time.Time `gorm:"column:resolved_date" json:"resolved_date,omitempty"`
	ResolutionTimeHours *int       `gorm:"column:resolution_time_hours" json:"resolution_time_hours,omitempty"`
	AIClassification    string     `gorm:"column:ai_classification" json:"ai_classification"`
	CreateAt            time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt            time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt            *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Grievance) TableName() string {
	return "grievances"
}

// ValidGrievanceCategory reports whether c is part of the fixed taxonomy.
func ValidGrievanceCategory(c string) bool {
	switch c {
	case CategoryAcademic, CategoryInfrastructure, CategoryFinancial,
		CategoryConduct, CategoryAdministrative, CategoryGeneral:
		return true
	}
	return false
}

// ValidGrievancePriority reports whether p is a known priority.
func ValidGrievancePriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ValidGrievanceStatus reports whether s is a known grievance status.
func ValidGrievanceStatus(s string) bool {
	return s == GrievanceStatusPending || s == GrievanceStatusInProgress || s == GrievanceStatusResolved
}

// ValidUserType reports whether t is a known submitter type.
func ValidUserType(t string) bool {
	return t == UserTypeStudent || t == UserTypeFaculty || t == UserTypeStaff
}

// GrievanceCreateRequest is the payload for submitting a grievance
type GrievanceCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority"`
	UserType    string `json:"user_type" binding:"required"`
}

// GrievanceUpdateRequest is the payload for updating a grievance.
// Pointer fields are only applied when supplied; staff may correct the
// category assigned at submission, ai_classification is never touched.
type GrievanceUpdateRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	Priority     *string `json:"priority"`
	Status       *string `json:"status"`
	AssignedTo   *int    `json:"assigned_to"`
	ResolvedDate *string `json:"resolved_date"` // RFC3339, trusted as-is when supplied
}
