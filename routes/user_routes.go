package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/skillfusion/campusarena/controllers"
	"github.com/skillfusion/campusarena/middleware"
)

// initUserRoutes initializes all user-facing routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes
	router.POST("/signup", controllers.Signup)
	router.POST("/verify-otp", controllers.VerifyOTP)
	router.POST("/login", controllers.Login)

	router.GET("/events", controllers.ListEvents)
	router.GET("/events/promoted", controllers.ListPromotedEvents)
	router.GET("/events/:id", controllers.GetEventDetails)
	router.GET("/teams", controllers.ListTeams)
	router.GET("/teams/:id", controllers.GetTeamDetails)
	router.GET("/leaderboard", controllers.GetLeaderboard)
	router.GET("/users/:id", controllers.GetUserProfile)

	// Protected routes (require authentication)
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", controllers.Logout)

		// Profile
		protected.GET("/profile", controllers.GetProfile)
		protected.PUT("/profile", controllers.UpdateProfile)

		// Registrations
		protected.POST("/events/:id/register", controllers.RegisterForEvent)
		protected.GET("/registrations", controllers.ListMyRegistrations)
		protected.GET("/registrations/:id/receipt", controllers.DownloadRegistrationReceipt)

		// Payments
		protected.POST("/payments/order", controllers.CreateEventOrder)
		protected.POST("/payments/verify", controllers.VerifyEventPayment)

		// Friends
		protected.GET("/friends", controllers.ListFriends)
		protected.GET("/friends/search", controllers.SearchUsers)
		protected.GET("/friends/requests", controllers.ListPendingFriendRequests)
		protected.POST("/friends/requests", controllers.SendFriendRequest)
		protected.POST("/friends/requests/:id/respond", controllers.RespondFriendRequest)

		// Teams
		protected.POST("/teams", controllers.CreateTeam)
		protected.POST("/teams/:id/join", controllers.JoinTeam)
		protected.POST("/teams/:id/leave", controllers.LeaveTeam)

		// Organizer operations
		organizer := protected.Group("")
		organizer.Use(middleware.OrganizerMiddleware())
		{
			organizer.POST("/events", controllers.CreateEvent)
			organizer.PUT("/events/:id", controllers.UpdateEvent)
			organizer.GET("/events/:id/participants", controllers.ListEventParticipants)
			organizer.POST("/events/:id/results", controllers.RecordEventResults)
		}
	}
}
