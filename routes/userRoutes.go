package routes

import (
	"civicpulse-be/controllers"
	"civicpulse-be/middlewares"

	"github.com/gin-gonic/gin"
)

// UserRoutes sets up the admin user-management routes
func UserRoutes(r *gin.Engine) {
	users := r.Group("/api/users", middlewares.AuthMiddleware())
	{
		users.GET("", controllers.GetAllUsers)
		users.GET("/:id", controllers.GetUserByID)
		users.PUT("/:id/role", controllers.UpdateUserRole)
		users.DELETE("/:id", controllers.DeactivateUser)
	}
}
