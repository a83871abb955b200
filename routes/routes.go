package routes

import (
	"campus-compliance-api/controllers"
	"campus-compliance-api/middleware"
	"campus-compliance-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Campus Compliance API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", controllers.GetProfile)

			// Audits: auditors and admins manage, everyone can read
			audits := protected.Group("/audits")
			{
				audits.GET("", controllers.GetAudits)
				audits.GET("/overdue", controllers.GetOverdueAudits)
				audits.GET("/:id", controllers.GetAudit)

				audits.POST("", middleware.RequireRole(models.RoleAuditor, models.RoleAdmin), controllers.CreateAudit)
				audits.PUT("/:id", middleware.RequireRole(models.RoleAuditor, models.RoleAdmin), controllers.UpdateAudit)
				audits.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteAudit)
			}

			// Grievances: any authenticated user can submit, staff work them
			grievances := protected.Group("/grievances")
			{
				grievances.GET("", controllers.GetGrievances)
				grievances.GET("/:id", controllers.GetGrievance)
				grievances.POST("", controllers.CreateGrievance)

				grievances.PUT("/:id", middleware.RequireRole(models.RoleStaff, models.RoleAdmin), controllers.UpdateGrievance)
				grievances.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteGrievance)
			}

			// Policies
			policies := protected.Group("/policies")
			{
				policies.GET("", controllers.GetPolicies)
				policies.GET("/due-for-review", controllers.GetPoliciesDueForReview)
				policies.GET("/non-compliant", controllers.GetNonCompliantPolicies)
				policies.GET("/:id", controllers.GetPolicy)

				policies.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreatePolicy)
				policies.PUT("/:id", middleware.RequireRole(models.RoleAdmin), controllers.UpdatePolicy)
				policies.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeletePolicy)
			}

			// Faculty performance: administrative entry, read for all
			faculty := protected.Group("/faculty-performance")
			{
				faculty.GET("", controllers.GetFacultyPerformance)
				faculty.GET("/:id", controllers.GetFacultyPerformanceRecord)

				faculty.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreateFacultyPerformance)
				faculty.PUT("/:id", middleware.RequireRole(models.RoleAdmin), controllers.UpdateFacultyPerformance)
				faculty.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteFacultyPerformance)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
				dashboard.GET("/compliance-scores", controllers.GetComplianceScores)
				dashboard.GET("/grievance-summary", controllers.GetGrievanceSummary)
				dashboard.GET("/audit-summary", controllers.GetAuditSummary)
				dashboard.GET("/policy-deadlines", controllers.GetPolicyDeadlines)
				dashboard.GET("/trends", controllers.GetTrends)
			}
		}
	}
}
