package routes

import (
	"net/http"
	"time"

	"medibook/handlers"
	"medibook/middleware"
	"medibook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers patient endpoints.
func RegisterUserRoutes(r *gin.Engine, h *handlers.UserHandler) {
	api := r.Group("/api/user")
	{
		api.POST("/register", h.RegisterHandler)
		api.POST("/login", h.LoginHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware())
		protected.GET("/get-profile", h.GetProfileHandler)
		protected.POST("/update-profile", h.UpdateProfileHandler)
		protected.POST("/book-appointment", h.BookAppointmentHandler)
		protected.GET("/appointments", h.ListAppointmentsHandler)
		protected.GET("/appointments/:id/receipt", h.ReceiptHandler)
		protected.POST("/cancel-appointment", h.CancelAppointmentHandler)
		protected.POST("/payment-razorpay", h.PaymentHandler)
		protected.POST("/payment-verify", h.VerifyPaymentHandler)
	}
}

// RegisterDoctorRoutes registers the public directory and doctor panel endpoints.
func RegisterDoctorRoutes(r *gin.Engine, h *handlers.DoctorHandler) {
	api := r.Group("/api/doctor")
	{
		api.GET("/list", h.ListDoctorsHandler)
		api.POST("/login", h.LoginHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthDoctorMiddleware())
		protected.GET("/appointments", h.AppointmentsHandler)
		protected.POST("/complete-appointment", h.CompleteAppointmentHandler)
		protected.POST("/cancel-appointment", h.CancelAppointmentHandler)
		protected.GET("/profile", h.ProfileHandler)
		protected.POST("/update-profile", h.UpdateProfileHandler)
		protected.POST("/change-availability", h.ChangeAvailabilityHandler)
		protected.GET("/dashboard", h.DashboardHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, h *handlers.AdminHandler) {
	api := r.Group("/api/admin")
	{
		api.POST("/login", h.LoginHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthAdminMiddleware())
		protected.POST("/add-doctor", h.AddDoctorHandler)
		protected.POST("/all-doctors", h.AllDoctorsHandler)
		protected.PATCH("/doctors/:id/availability", h.SetAvailabilityHandler)
		protected.POST("/change-availability", h.ChangeAvailabilityHandler)
		protected.GET("/appointments", h.AppointmentsHandler)
		protected.POST("/cancel-appointment", h.CancelAppointmentHandler)
		protected.GET("/dashboard", h.DashboardHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// background monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Mongo || !status.Redis {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"success": code == http.StatusOK, "health": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", utils.TokenHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb.User)
	RegisterDoctorRoutes(r, hb.Doctor)
	RegisterAdminRoutes(r, hb.Admin)
	RegisterHealthRoute(r)
}
