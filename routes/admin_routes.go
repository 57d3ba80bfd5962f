package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/skillfusion/campusarena/controllers"
	"github.com/skillfusion/campusarena/middleware"
)

// initAdminRoutes initializes admin-only routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/users", controllers.ListUsers)
		admin.POST("/users/:id/block", controllers.SetUserBlocked)
		admin.POST("/users/:id/role", controllers.SetUserRole)

		admin.POST("/events/:id/promote", controllers.PromoteEvent)
		admin.GET("/events/:id/registrations/export", controllers.ExportEventRegistrations)
	}
}
