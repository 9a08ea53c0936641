package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tidyhive/handlers"
	"tidyhive/middleware"
)

// RegisterBookingRoutes sets up the booking flow endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("/quote", hb.Booking.QuoteBooking)
		api.POST("", hb.Booking.CreateBooking)
		api.GET("", hb.Booking.ListBookings)
		api.GET("/:id", hb.Booking.GetBooking)
		api.PATCH("/:id/reschedule", hb.Booking.RescheduleBooking)
		api.PATCH("/:id/reassign", hb.Booking.ReassignBooking)
		api.PATCH("/:id/cancel", hb.Booking.CancelBooking)
		api.POST("/:id/rating", hb.Booking.RateBooking)
	}
}

// RegisterConflictRoutes sets up the schedule conflict endpoints.
func RegisterConflictRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/conflicts")
	{
		api.GET("", hb.Conflicts.GetConflicts)
		api.POST("", hb.Conflicts.ResolveConflict)
	}
}

// RegisterCustomerRoutes sets up customer profile and preference endpoints.
func RegisterCustomerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/customers")
	{
		api.POST("", hb.Customer.CreateCustomer)
		api.GET("/:id", hb.Customer.GetCustomer)
		api.GET("/:id/preferences", hb.Customer.GetPreferences)
		api.PUT("/:id/preferences", hb.Customer.UpdatePreferences)
	}
}

// RegisterCrewRoutes sets up the crew mobile dashboard endpoints.
func RegisterCrewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/crew")
	{
		api.POST("/login", hb.Crew.LoginCrew)

		// Protected routes (require a crew token)
		api.Use(middleware.JWTAuthCrewMiddleware())
		api.GET("/me/jobs", hb.Crew.MyJobs)
		api.POST("/checkin", hb.Crew.CheckIn)
		api.POST("/checkout", hb.Crew.CheckOut)
		api.PATCH("/status", hb.Crew.UpdateStatus)
		api.POST("/location", hb.Crew.ReportLocation)
		api.POST("/fcm-token", hb.Crew.UpdateFCMToken)
		api.POST("/jobs/:id/photos", hb.Crew.UploadJobPhoto)
	}
}

// RegisterAIRoutes sets up the chat assistant endpoints.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	{
		api.POST("/chat", hb.AI.Chat)
		api.DELETE("/chat/context/:customerId", hb.AI.ClearContext)
	}
}

// RegisterAdminRoutes sets up the back-office endpoints behind the admin token.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := r.Group("/api")
	admin.Use(middleware.AdminAuthMiddleware())
	{
		admin.POST("/crew", hb.Crew.RegisterCrew)
		admin.POST("/payroll/run", hb.Payroll.RunPayroll)
		admin.GET("/payroll/runs", hb.Payroll.ListRuns)
		admin.GET("/payroll/crew/:id", hb.Payroll.ListRunsForCrew)
		admin.GET("/admin/analytics/revenue", hb.Analytics.Revenue)
		admin.GET("/admin/analytics/satisfaction", hb.Analytics.Satisfaction)
		admin.GET("/admin/analytics/crew-utilization", hb.Analytics.CrewUtilization)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm TidyHive"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterConflictRoutes(r, hb)
	RegisterCustomerRoutes(r, hb)
	RegisterCrewRoutes(r, hb)
	RegisterAIRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
