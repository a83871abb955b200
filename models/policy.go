package models

import (
	"time"

	"gorm.io/datatypes"
)

// Policy compliance statuses
const (
	ComplianceStatusCompliant     = "compliant"
	ComplianceStatusNonCompliant  = "non_compliant"
	ComplianceStatusPendingReview = "pending_review"
)

// Policy represents the policies table.
//
// next_due_date is written by the reviewer on each review cycle; the system
// does not auto-schedule reviews.
type Policy struct {
	PolicyID          string         `gorm:"primaryKey;column:policy_id" json:"policy_id"`
	Title             string         `gorm:"column:title" json:"title"`
	Description       string         `gorm:"column:description" json:"description"`
	Category          string         `gorm:"column:category" json:"category"`
	Department        string         `gorm:"column:department" json:"department"`
	ComplianceStatus  string         `gorm:"column:compliance_status" json:"compliance_status"`
	DueDate           *time.Time     `gorm:"column:due_date" json:"due_date,omitempty"`
	LastReviewed      *time.Time     `gorm:"column:last_reviewed" json:"last_reviewed,omitempty"`
	NextDueDate       *time.Time     `gorm:"column:next_due_date" json:"next_due_date,omitempty"`
	ResponsiblePerson string         `gorm:"column:responsible_person" json:"responsible_person"`
	ComplianceScore   *float64       `gorm:"column:compliance_score" json:"compliance_score,omitempty"`
	Documents         datatypes.JSON `gorm:"column:documents" json:"documents,omitempty"`
	CreateAt          time.Time      `gorm:"column:create_at" json:"create_at"`
	UpdateAt          time.Time      `gorm:"column:update_at" json:"update_at"`
	DeleteAt          *time.Time     `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Policy) TableName() string {
	return "policies"
}

// ValidComplianceStatus reports whether s is a known compliance status.
func ValidComplianceStatus(s string) bool {
	switch s {
	case ComplianceStatusCompliant, ComplianceStatusNonCompliant, ComplianceStatusPendingReview:
		return true
	}
	return false
}

// PolicyCreateRequest is the payload for registering a policy instrument
type PolicyCreateRequest struct {
	Title             string   `json:"title" binding:"required"`
	Description       string   `json:"description"`
	Category          string   `json:"category" binding:"required"`
	Department        string   `json:"department" binding:"required"`
	ComplianceStatus  string   `json:"compliance_status"`
	DueDate           *string  `json:"due_date"`
	NextDueDate       *string  `json:"next_due_date"`
	ResponsiblePerson string   `json:"responsible_person"`
	ComplianceScore   *float64 `json:"compliance_score"`
	Documents         []string `json:"documents"`
}

// PolicyUpdateRequest is the payload for a review-cycle update.
// Pointer fields are only applied when supplied.
type PolicyUpdateRequest struct {
	Title             *string  `json:"title"`
	Description       *string  `json:"description"`
	Category          *string  `json:"category"`
	Department        *string  `json:"department"`
	ComplianceStatus  *string  `json:"compliance_status"`
	DueDate           *string  `json:"due_date"`
	LastReviewed      *string  `json:"last_reviewed"`
	NextDueDate       *string  `json:"next_due_date"`
	ResponsiblePerson *string  `json:"responsible_person"`
	ComplianceScore   *float64 `json:"compliance_score"`
	Documents         []string `json:"documents"`
}
