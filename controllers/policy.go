package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"campus-compliance-api/models"
	"campus-compliance-api/services"
	"campus-compliance-api/store"
	"campus-compliance-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GetPolicies lists policy instruments with the standard filter and
// pagination parameters
func GetPolicies(c *gin.Context) {
	opts := services.PolicyListOptions{
		Department:       c.Query("department"),
		ComplianceStatus: c.Query("compliance_status"),
		Category:         c.Query("category"),
		Search:           utils.SanitizeInput(c.Query("search")),
		Page:             utils.ParsePage(c.Query("page")),
		Limit:            utils.ParseLimit(c.Query("limit")),
	}

	policies, pagination, err := queryService.ListPolicies(opts)
	if err != nil {
		storeFailure(c, "Failed to fetch policies", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       policies,
		"pagination": pagination,
	})
}

// GetPolicy returns a single policy by id
func GetPolicy(c *gin.Context) {
	policy, ok := findPolicy(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": policy})
}

// CreatePolicy registers a policy instrument (admin only, enforced in routes)
func CreatePolicy(c *gin.Context) {
	var req models.PolicyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	complianceStatus := req.ComplianceStatus
	if complianceStatus == "" {
		complianceStatus = models.ComplianceStatusPendingReview
	}
	if !models.ValidComplianceStatus(complianceStatus) {
		badRequest(c, "unknown compliance status")
		return
	}

	now := time.Now()
	policy := models.Policy{
		PolicyID:          uuid.NewString(),
		Title:             utils.SanitizeInput(req.Title),
		Description:       utils.SanitizeInput(req.Description),
		Category:          req.Category,
		Department:        req.Department,
		ComplianceStatus:  complianceStatus,
		ResponsiblePerson: req.ResponsiblePerson,
		ComplianceScore:   req.ComplianceScore,
		CreateAt:          now,
		UpdateAt:          now,
	}

	if req.DueDate != nil {
		t, err := parseDate(*req.DueDate)
		if err != nil {
			badRequest(c, "due_date must be YYYY-MM-DD")
			return
		}
		policy.DueDate = &t
	}
	if req.NextDueDate != nil {
		t, err := parseDate(*req.NextDueDate)
		if err != nil {
			badRequest(c, "next_due_date must be YYYY-MM-DD")
			return
		}
		policy.NextDueDate = &t
	}
	if len(req.Documents) > 0 {
		docs, err := json.Marshal(req.Documents)
		if err != nil {
			badRequest(c, "invalid documents list")
			return
		}
		policy.Documents = datatypes.JSON(docs)
	}

	if err := recordStore.Insert(policy.TableName(), &policy); err != nil {
		storeFailure(c, "Failed to create policy", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Policy created successfully",
		"data":    policy,
	})
}

// UpdatePolicy applies a review-cycle update. next_due_date comes from the
// reviewer; there is no auto-scheduling.
func UpdatePolicy(c *gin.Context) {
	id := c.Param("id")

	var req models.PolicyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	patch := make(map[string]interface{})
	if req.Title != nil {
		patch["title"] = utils.SanitizeInput(*req.Title)
	}
	if req.Description != nil {
		patch["description"] = utils.SanitizeInput(*req.Description)
	}
	if req.Category != nil {
		patch["category"] = *req.Category
	}
	if req.Department != nil {
		patch["department"] = *req.Department
	}
	if req.ComplianceStatus != nil {
		if !models.ValidComplianceStatus(*req.ComplianceStatus) {
			badRequest(c, "unknown compliance status")
			return
		}
		patch["compliance_status"] = *req.ComplianceStatus
	}
	for field, value := range map[string]*string{
		"due_date":      req.DueDate,
		"last_reviewed": req.LastReviewed,
		"next_due_date": req.NextDueDate,
	} {
		if value == nil {
			continue
		}
		t, err := parseDate(*value)
		if err != nil {
			badRequest(c, field+" must be YYYY-MM-DD")
			return
		}
		patch[field] = t
	}
	if req.ResponsiblePerson != nil {
		patch["responsible_person"] = *req.ResponsiblePerson
	}
	if req.ComplianceScore != nil {
		if *req.ComplianceScore < 0 || *req.ComplianceScore > 100 {
			badRequest(c, "compliance_score must be between 0 and 100")
			return
		}
		patch["compliance_score"] = *req.ComplianceScore
	}
	if req.Documents != nil {
		docs, err := json.Marshal(req.Documents)
		if err != nil {
			badRequest(c, "invalid documents list")
			return
		}
		patch["documents"] = datatypes.JSON(docs)
	}
	if len(patch) == 0 {
		badRequest(c, "nothing to update")
		return
	}
	patch["update_at"] = time.Now()

	if err := recordStore.Update(models.Policy{}.TableName(), "policy_id", id, patch); err != nil {
		if err == store.ErrNotFound {
			notFound(c, "Policy")
			return
		}
		storeFailure(c, "Failed to update policy", err)
		return
	}

	policy, ok := findPolicy(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Policy updated successfully",
		"data":    policy,
	})
}

// DeletePolicy removes a policy instrument
func DeletePolicy(c *gin.Context) {
	if err := recordStore.Delete(models.Policy{}.TableName(), "policy_id", c.Param("id")); err != nil {
		if err == store.ErrNotFound {
			notFound(c, "Policy")
			return
		}
		storeFailure(c, "Failed to delete policy", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Policy deleted successfully"})
}

// GetPoliciesDueForReview lists policies whose next review date is today or
// earlier
func GetPoliciesDueForReview(c *gin.Context) {
	policies, err := queryService.PoliciesDueForReview()
	if err != nil {
		storeFailure(c, "Failed to fetch policies due for review", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    policies,
		"count":   len(policies),
	})
}

// GetNonCompliantPolicies lists the plain non_compliant set
func GetNonCompliantPolicies(c *gin.Context) {
	policies, err := queryService.NonCompliantPolicies()
	if err != nil {
		storeFailure(c, "Failed to fetch non-compliant policies", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    policies,
		"count":   len(policies),
	})
}

func findPolicy(c *gin.Context, id string) (*models.Policy, bool) {
	var policies []models.Policy
	_, err := recordStore.Find(store.Query{
		Table:   models.Policy{}.TableName(),
		Filters: []store.Filter{store.Eq("policy_id", id)},
		Range:   &store.Range{From: 0, To: 0},
	}, &policies)
	if err != nil {
		storeFailure(c, "Failed to fetch policy", err)
		return nil, false
	}
	if len(policies) == 0 {
		notFound(c, "Policy")
		return nil, false
	}
	return &policies[0], true
}
