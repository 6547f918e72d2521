package routes

import (
	"civicpulse-be/controllers"
	"civicpulse-be/middlewares"

	"github.com/gin-gonic/gin"
)

const dailyIssueLimit = 5

// IssueRoutes sets up the issue routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issues")
	{
		issue.GET("", middlewares.OptionalAuth(), controllers.GetAllIssues)
		issue.GET("/trending", middlewares.OptionalAuth(), controllers.GetTrendingIssues)
		issue.GET("/stats", controllers.GetIssueStats)
		issue.GET("/my-issues", middlewares.AuthMiddleware(), controllers.GetMyIssues)
		issue.GET("/:id", middlewares.OptionalAuth(), controllers.GetIssue)

		issue.POST("", middlewares.AuthMiddleware(), middlewares.IssueRateLimiter(dailyIssueLimit), controllers.CreateIssue)
		issue.PUT("/:id", middlewares.AuthMiddleware(), controllers.UpdateIssue)
		issue.PUT("/:id/status", middlewares.AuthMiddleware(), controllers.TransitionIssueStatus)
		issue.DELETE("/:id", middlewares.AuthMiddleware(), controllers.DeleteIssue)
		issue.POST("/:id/vote", middlewares.AuthMiddleware(), controllers.VoteOnIssue)
		issue.POST("/:id/comments", middlewares.AuthMiddleware(), controllers.AddComment)
	}
}
