package controllers

import (
	"net/http"
	"time"

	"campus-compliance-api/models"
	"campus-compliance-api/services"
	"campus-compliance-api/store"
	"campus-compliance-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetAudits lists audits with the standard filter and pagination parameters
func GetAudits(c *gin.Context) {
	opts := services.AuditListOptions{
		Department: c.Query("department"),
		Status:     c.Query("status"),
		AuditType:  c.Query("audit_type"),
		Search:     utils.SanitizeInput(c.Query("search")),
		Page:       utils.ParsePage(c.Query("page")),
		Limit:      utils.ParseLimit(c.Query("limit")),
	}

	audits, pagination, err := queryService.ListAudits(opts)
	if err != nil {
		storeFailure(c, "Failed to fetch audits", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       audits,
		"pagination": pagination,
	})
}

// GetAudit returns a single audit by id
func GetAudit(c *gin.Context) {
	audit, ok := findAudit(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": audit})
}

// CreateAudit schedules a new audit (admin only, enforced in routes)
func CreateAudit(c *gin.Context) {
	var req models.AuditCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !models.ValidAuditType(req.AuditType) {
		badRequest(c, "audit_type must be internal or external")
		return
	}
	auditDate, err := parseDate(req.AuditDate)
	if err != nil {
		badRequest(c, "audit_date must be YYYY-MM-DD")
		return
	}

	now := time.Now()
	audit := models.Audit{
		AuditID:         uuid.NewString(),
		Department:      req.Department,
		AuditType:       req.AuditType,
		Status:          models.AuditStatusPending,
		AuditDate:       auditDate,
		ComplianceScore: req.ComplianceScore,
		Auditor:         req.Auditor,
		Findings:        utils.SanitizeInput(req.Findings),
		Recommendations: utils.SanitizeInput(req.Recommendations),
		CreateAt:        now,
		UpdateAt:        now,
	}

	if err := recordStore.Insert(audit.TableName(), &audit); err != nil {
		storeFailure(c, "Failed to create audit", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Audit created successfully",
		"data":    audit,
	})
}

// UpdateAudit applies a status transition or detail change
func UpdateAudit(c *gin.Context) {
	id := c.Param("id")

	var req models.AuditUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	patch := make(map[string]interface{})
	if req.Department != nil {
		patch["department"] = *req.Department
	}
	if req.AuditType != nil {
		if !models.ValidAuditType(*req.AuditType) {
			badRequest(c, "audit_type must be internal or external")
			return
		}
		patch["audit_type"] = *req.AuditType
	}
	if req.Status != nil {
		if !models.ValidAuditStatus(*req.Status) {
			badRequest(c, "unknown audit status")
			return
		}
		patch["status"] = *req.Status
	}
	if req.AuditDate != nil {
		t, err := parseDate(*req.AuditDate)
		if err != nil {
			badRequest(c, "audit_date must be YYYY-MM-DD")
			return
		}
		patch["audit_date"] = t
	}
	if req.CompletedDate != nil {
		t, err := parseDate(*req.CompletedDate)
		if err != nil {
			badRequest(c, "completed_date must be YYYY-MM-DD")
			return
		}
		patch["completed_date"] = t
	}
	if req.ComplianceScore != nil {
		if *req.ComplianceScore < 0 || *req.ComplianceScore > 100 {
			badRequest(c, "compliance_score must be between 0 and 100")
			return
		}
		patch["compliance_score"] = *req.ComplianceScore
	}
	if req.Auditor != nil {
		patch["auditor"] = *req.Auditor
	}
	if req.Findings != nil {
		patch["findings"] = utils.SanitizeInput(*req.Findings)
	}
	if req.Recommendations != nil {
		patch["recommendations"] = utils.SanitizeInput(*req.Recommendations)
	}
	if len(patch) == 0 {
		badRequest(c, "nothing to update")
		return
	}
	patch["update_at"] = time.Now()

	if err := recordStore.Update(models.Audit{}.TableName(), "audit_id", id, patch); err != nil {
		if err == store.ErrNotFound {
			notFound(c, "Audit")
			return
		}
		storeFailure(c, "Failed to update audit", err)
		return
	}

	audit, ok := findAudit(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Audit updated successfully",
		"data":    audit,
	})
}

// DeleteAudit removes an audit. Destructive admin action, not a transition.
func DeleteAudit(c *gin.Context) {
	if err := recordStore.Delete(models.Audit{}.TableName(), "audit_id", c.Param("id")); err != nil {
		if err == store.ErrNotFound {
			notFound(c, "Audit")
			return
		}
		storeFailure(c, "Failed to delete audit", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Audit deleted successfully"})
}

// GetOverdueAudits lists pending or in-progress audits past their scheduled
// date, oldest first
func GetOverdueAudits(c *gin.Context) {
	audits, err := queryService.OverdueAudits()
	if err != nil {
		storeFailure(c, "Failed to fetch overdue audits", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    audits,
		"count":   len(audits),
	})
}

func findAudit(c *gin.Context, id string) (*models.Audit, bool) {
	var audits []models.Audit
	_, err := recordStore.Find(store.Query{
		Table:   models.Audit{}.TableName(),
		Filters: []store.Filter{store.Eq("audit_id", id)},
		Range:   &store.Range{From: 0, To: 0},
	}, &audits)
	if err != nil {
		storeFailure(c, "Failed to fetch audit", err)
		return nil, false
	}
	if len(audits) == 0 {
		notFound(c, "Audit")
		return nil, false
	}
	return &audits[0], true
}
