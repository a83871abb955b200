package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns the headline compliance rollup
func GetDashboardStats(c *gin.Context) {
	stats, err := analytics.DashboardStats()
	if err != nil {
		storeFailure(c, "Failed to compute dashboard stats", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

// GetComplianceScores returns the per-department audit compliance rollup
func GetComplianceScores(c *gin.Context) {
	scores, err := analytics.DepartmentComplianceScores()
	if err != nil {
		storeFailure(c, "Failed to compute compliance scores", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    scores,
	})
}

// GetGrievanceSummary returns status and category distributions plus average
// resolution times per category
func GetGrievanceSummary(c *gin.Context) {
	statuses, err := analytics.GrievanceStatusDistribution()
	if err != nil {
		storeFailure(c, "Failed to compute grievance summary", err)
		return
	}
	categories, err := analytics.GrievanceCategoryDistribution()
	if err != nil {
		storeFailure(c, "Failed to compute grievance summary", err)
		return
	}
	resolutionTimes, err := analytics.ResolutionTimeByCategory()
	if err != nil {
		storeFailure(c, "Failed to compute grievance summary", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"by_status":        statuses,
			"by_category":      categories,
			"resolution_times": resolutionTimes,
		},
	})
}

// GetAuditSummary returns the audit status distribution
func GetAuditSummary(c *gin.Context) {
	statuses, err := analytics.AuditStatusDistribution()
	if err != nil {
		storeFailure(c, "Failed to compute audit summary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"by_status": statuses},
	})
}

// GetPolicyDeadlines returns policies due within the window (default 30
// days, override with ?days=N)
func GetPolicyDeadlines(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	deadlines, err := analytics.UpcomingPolicyDeadlines(days)
	if err != nil {
		storeFailure(c, "Failed to compute policy deadlines", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    deadlines,
		"count":   len(deadlines),
	})
}

// GetTrends returns the month-over-month series. The default provider ships
// fixed illustrative data; the source field tells the UI whether the numbers
// are real.
func GetTrends(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"completion_trend":  analytics.Trends.CompletionTrend(),
			"performance_trend": analytics.Trends.PerformanceTrend(),
			"source":            analytics.Trends.Source(),
		},
	})
}
