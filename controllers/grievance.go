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

// GetGrievances lists grievances with the standard filter and pagination
// parameters
func GetGrievances(c *gin.Context) {
	opts := services.GrievanceListOptions{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Priority: c.Query("priority"),
		UserType: c.Query("user_type"),
		Search:   utils.SanitizeInput(c.Query("search")),
		Page:     utils.ParsePage(c.Query("page")),
		Limit:    utils.ParseLimit(c.Query("limit")),
	}

	grievances, pagination, err := queryService.ListGrievances(opts)
	if err != nil {
		storeFailure(c, "Failed to fetch grievances", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       grievances,
		"pagination": pagination,
	})
}

// GetGrievance returns a single grievance by id
func GetGrievance(c *gin.Context) {
	grievance, ok := findGrievance(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": grievance})
}

// CreateGrievance submits a new grievance. The classifier seeds both
// ai_classification and the working category; staff may correct the latter
// afterwards, the former keeps the original output.
func CreateGrievance(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication context missing"})
		return
	}

	var req models.GrievanceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !models.ValidUserType(req.UserType) {
		badRequest(c, "user_type must be student, faculty or staff")
		return
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidGrievancePriority(priority) {
		badRequest(c, "priority must be low, medium or high")
		return
	}

	title := utils.SanitizeInput(req.Title)
	description := utils.SanitizeInput(req.Description)
	category := services.ClassifyGrievance(title, description)

	now := time.Now()
	grievance := models.Grievance{
		GrievanceID:      uuid.NewString(),
		Title:            title,
		Description:      description,
		Category:         category,
		Priority:         priority,
		Status:           models.GrievanceStatusPending,
		UserType:         req.UserType,
		SubmittedBy:      userID.(int),
		SubmittedDate:    now,
		AIClassification: category,
		CreateAt:         now,
		UpdateAt:         now,
	}

	if err := recordStore.Insert(grievance.TableName(), &grievance); err != nil {
		storeFailure(c, "Failed to create grievance", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Grievance submitted successfully",
		"data":    grievance,
	})
}

// UpdateGrievance applies assignment, category corrections and status
// transitions. The lifecycle tracker folds resolution timestamps into the
// same patch so derived fields and caller fields commit in one write.
func UpdateGrievance(c *gin.Context) {
	id := c.Param("id")

	var req models.GrievanceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	existing, ok := findGrievance(c, id)
	if !ok {
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
		if !models.ValidGrievanceCategory(*req.Category) {
			badRequest(c, "unknown grievance category")
			return
		}
		patch["category"] = *req.Category
	}
	if req.Priority != nil {
		if !models.ValidGrievancePriority(*req.Priority) {
			badRequest(c, "priority must be low, medium or high")
			return
		}
		patch["priority"] = *req.Priority
	}
	if req.Status != nil {
		if !models.ValidGrievanceStatus(*req.Status) {
			badRequest(c, "unknown grievance status")
			return
		}
		if existing.Status == models.GrievanceStatusResolved && *req.Status != models.GrievanceStatusResolved {
			badRequest(c, "a resolved grievance cannot be reopened")
			return
		}
		patch["status"] = *req.Status
	}
	if req.AssignedTo != nil {
		patch["assigned_to"] = *req.AssignedTo
	}
	if req.ResolvedDate != nil {
		t, err := parseDate(*req.ResolvedDate)
		if err != nil {
			badRequest(c, "resolved_date must be an RFC3339 timestamp")
			return
		}
		patch["resolved_date"] = t
	}
	if len(patch) == 0 {
		badRequest(c, "nothing to update")
		return
	}

	lifecycle.ApplyResolutionFields(id, patch)
	patch["update_at"] = time.Now()

	if err := recordStore.Update(models.Grievance{}.TableName(), "grievance_id", id, patch); err != nil {
		if err == store.ErrNotFound {
			notFound(c, "Grievance")
			return
		}
		storeFailure(c, "Failed to update grievance", err)
		return
	}

	updated, ok := findGrievance(c, id)
	if !ok {
		return
	}

	if req.AssignedTo != nil {
		notifier.GrievanceAssigned(*updated, *req.AssignedTo)
	}
	if req.Status != nil && *req.Status == models.GrievanceStatusResolved &&
		existing.Status != models.GrievanceStatusResolved {
		notifier.GrievanceResolved(*updated)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Grievance updated successfully",
		"data":    updated,
	})
}

// DeleteGrievance removes a grievance. Allowed from any state; this is an
// administrative action, not part of the lifecycle.
func DeleteGrievance(c *gin.Context) {
	if err := recordStore.Delete(models.Grievance{}.TableName(), "grievance_id", c.Param("id")); err != nil {
		if err == store.ErrNotFound {
			notFound(c, "Grievance")
			return
		}
		storeFailure(c, "Failed to delete grievance", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Grievance deleted successfully"})
}

func findGrievance(c *gin.Context, id string) (*models.Grievance, bool) {
	var grievances []models.Grievance
	_, err := recordStore.Find(store.Query{
		Table:   models.Grievance{}.TableName(),
		Filters: []store.Filter{store.Eq("grievance_id", id)},
		Range:   &store.Range{From: 0, To: 0},
	}, &grievances)
	if err != nil {
		storeFailure(c, "Failed to fetch grievance", err)
		return nil, false
	}
	if len(grievances) == 0 {
		notFound(c, "Grievance")
		return nil, false
	}
	return &grievances[0], true
}
