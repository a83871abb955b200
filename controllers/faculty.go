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

// GetFacultyPerformance lists faculty performance records
func GetFacultyPerformance(c *gin.Context) {
	opts := services.FacultyListOptions{
		Department: c.Query("department"),
		Search:     utils.SanitizeInput(c.Query("search")),
		Page:       utils.ParsePage(c.Query("page")),
		Limit:      utils.ParseLimit(c.Query("limit")),
	}

	records, pagination, err := queryService.ListFacultyPerformance(opts)
	if err != nil {
		storeFailure(c, "Failed to fetch faculty performance records", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       records,
		"pagination": pagination,
	})
}

// GetFacultyPerformanceRecord returns a single record by id
func GetFacultyPerformanceRecord(c *gin.Context) {
	record, ok := findFacultyRecord(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

// CreateFacultyPerformance registers a record via administrative entry. When
// no faculty_id is supplied the lifecycle tracker generates the next
// sequential code; the generation is a read-then-write, so concurrent
// creates may collide and fail on the unique index.
func CreateFacultyPerformance(c *gin.Context) {
	var req models.FacultyPerformanceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	facultyID := req.FacultyID
	if facultyID == "" {
		var err error
		facultyID, err = lifecycle.NextFacultyID()
		if err != nil {
			storeFailure(c, "Failed to generate faculty id", err)
			return
		}
	}

	now := time.Now()
	record := models.FacultyPerformance{
		PerformanceID:     uuid.NewString(),
		FacultyID:         facultyID,
		Department:        req.Department,
		PerformanceRating: req.PerformanceRating,
		ResearchPapers:    req.ResearchPapers,
		ResearchOutput:    req.ResearchOutput,
		TeachingHours:     req.TeachingHours,
		Publications:      req.Publications,
		Projects:          req.Projects,
		CreateAt:          now,
		UpdateAt:          now,
	}

	if err := recordStore.Insert(record.TableName(), &record); err != nil {
		storeFailure(c, "Failed to create faculty performance record", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Faculty performance record created successfully",
		"data":    record,
	})
}

// UpdateFacultyPerformance applies an administrative correction
func UpdateFacultyPerformance(c *gin.Context) {
	id := c.Param("id")

	var req models.FacultyPerformanceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	patch := make(map[string]interface{})
	if req.Department != nil {
		patch["department"] = *req.Department
	}
	if req.PerformanceRating != nil {
		if *req.PerformanceRating < 0 || *req.PerformanceRating > 100 {
			badRequest(c, "performance_rating must be between 0 and 100")
			return
		}
		patch["performance_rating"] = *req.PerformanceRating
	}
	if req.ResearchPapers != nil {
		patch["research_papers"] = *req.ResearchPapers
	}
	if req.ResearchOutput != nil {
		patch["research_output"] = *req.ResearchOutput
	}
	if req.TeachingHours != nil {
		patch["teaching_hours"] = *req.TeachingHours
	}
	if req.Publications != nil {
		patch["publications"] = *req.Publications
	}
	if req.Projects != nil {
		patch["projects"] = *req.Projects
	}
	if len(patch) == 0 {
		badRequest(c, "nothing to update")
		return
	}
	patch["update_at"] = time.Now()

	if err := recordStore.Update(models.FacultyPerformance{}.TableName(), "performance_id", id, patch); err != nil {
		if err == store.ErrNotFound {
			notFound(c, "Faculty performance record")
			return
		}
		storeFailure(c, "Failed to update faculty performance record", err)
		return
	}

	record, ok := findFacultyRecord(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Faculty performance record updated successfully",
		"data":    record,
	})
}

// DeleteFacultyPerformance removes a record
func DeleteFacultyPerformance(c *gin.Context) {
	if err := recordStore.Delete(models.FacultyPerformance{}.TableName(), "performance_id", c.Param("id")); err != nil {
		if err == store.ErrNotFound {
			notFound(c, "Faculty performance record")
			return
		}
		storeFailure(c, "Failed to delete faculty performance record", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Faculty performance record deleted successfully"})
}

func findFacultyRecord(c *gin.Context, id string) (*models.FacultyPerformance, bool) {
	var records []models.FacultyPerformance
	_, err := recordStore.Find(store.Query{
		Table:   models.FacultyPerformance{}.TableName(),
		Filters: []store.Filter{store.Eq("performance_id", id)},
		Range:   &store.Range{From: 0, To: 0},
	}, &records)
	if err != nil {
		storeFailure(c, "Failed to fetch faculty performance record", err)
		return nil, false
	}
	if len(records) == 0 {
		notFound(c, "Faculty performance record")
		return nil, false
	}
	return &records[0], true
}
