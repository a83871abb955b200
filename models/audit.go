package models

import "time"

// Audit statuses
const (
	AuditStatusPending    = "pending"
	AuditStatusInProgress = "in_progress"
	AuditStatusCompleted  = "completed"
	AuditStatusOverdue    = "overdue"
)

// Audit types
const (
	AuditTypeInternal = "internal"
	AuditTypeExternal = "external"
)

// Audit represents the audits table
type Audit struct {
	AuditID         string     `gorm:"primaryKey;column:audit_id" json:"audit_id"`
	Department      string     `gorm:"column:department" json:"department"`
	AuditType       string     `gorm:"column:audit_type" json:"audit_type"`
	Status          string     `gorm:"column:status" json:"status"`
	AuditDate       time.Time  `gorm:"column:audit_date" json:"audit_date"`
	CompletedDate   *time.Time `gorm:"column:completed_date" json:"completed_date,omitempty"`
	ComplianceScore *float64   `gorm:"column:compliance_score" json:"compliance_score,omitempty"`
	Auditor         string     `gorm:"column:auditor" json:"auditor"`
	Findings        string     `gorm:"column:findings" json:"findings"`
	Recommendations string     `gorm:"column:recommendations" json:"recommendations"`
	CreateAt        time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt        time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt        *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Audit) TableName() string {
	return "audits"
}

// ValidAuditStatus reports whether s is a known audit status.
func ValidAuditStatus(s string) bool {
	switch s {
	case AuditStatusPending, AuditStatusInProgress, AuditStatusCompleted, AuditStatusOverdue:
		return true
	}
	return false
}

// ValidAuditType reports whether t is a known audit type.
func ValidAuditType(t string) bool {
	return t == AuditTypeInternal || t == AuditTypeExternal
}

// AuditCreateRequest is the payload for creating an audit
type AuditCreateRequest struct {
	Department      string   `json:"department" binding:"required"`
	AuditType       string   `json:"audit_type" binding:"required"`
	AuditDate       string   `json:"audit_date" binding:"required"` // YYYY-MM-DD
	Auditor         string   `json:"auditor" binding:"required"`
	Findings        string   `json:"findings"`
	Recommendations string   `json:"recommendations"`
	ComplianceScore *float64 `json:"compliance_score"`
}

// AuditUpdateRequest is the payload for updating an audit.
// Pointer fields are only applied when supplied.
type AuditUpdateRequest struct {
	Department      *string  `json:"department"`
	AuditType       *string  `json:"audit_type"`
	Status          *string  `json:"status"`
	AuditDate       *string  `json:"audit_date"`
	CompletedDate   *string  `json:"completed_date"`
	ComplianceScore *float64 `json:"compliance_score"`
	Auditor         *string  `json:"auditor"`
	Findings        *string  `json:"findings"`
	Recommendations *string  `json:"recommendations"`
}
