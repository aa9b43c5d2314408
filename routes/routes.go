package routes

import (
	"time"

	"auracare/handlers"
	"auracare/middleware"
	"auracare/models"
	"auracare/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options carries the shared pieces the route groups need.
type Options struct {
	AllowedOrigins    []string
	MaxRequestsPerMin int
	JWT               *utils.JWTManager
	Revoker           *utils.TokenRevoker
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// RegisterHealthRoute registers the dependency health endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.Health)
}

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	group := api.Group("/auth")
	{
		group.POST("/register", hb.Auth.Register)
		group.POST("/login", hb.Auth.Login)

		protected := group.Group("", auth)
		protected.GET("/me", hb.Auth.Me)
		protected.POST("/logout", hb.Auth.Logout)
		protected.PUT("/fcm-token", hb.Auth.UpdateDeviceToken)
	}
}

// RegisterSalonRoutes registers the public salon listings and the owner's management endpoints.
func RegisterSalonRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	group := api.Group("/salon")
	{
		group.GET("/public", hb.Salon.ListPublic)
		group.GET("/public/:id/services", hb.Salon.ListPublicServices)

		owner := group.Group("", auth, middleware.RequireRoles(models.RoleSalon))
		owner.POST("", hb.Salon.Register)
		owner.GET("/me", hb.Salon.GetMine)
		owner.PUT("/me", hb.Salon.UpdateMine)

		owner.GET("/services", hb.Salon.ListServices)
		owner.POST("/services", hb.Salon.CreateService)
		owner.PUT("/services/:id", hb.Salon.UpdateService)
		owner.DELETE("/services/:id", hb.Salon.DeleteService)

		owner.GET("/staff", hb.Salon.ListStaff)
		owner.POST("/staff", hb.Salon.AddStaff)
		owner.PUT("/staff/:id", hb.Salon.UpdateStaff)
		owner.DELETE("/staff/:id", hb.Salon.RemoveStaff)

		owner.GET("/cancellation-policy", hb.Salon.GetPolicy)
		owner.PUT("/cancellation-policy", hb.Salon.UpsertPolicy)

		owner.GET("/appointments", hb.Appointments.ListForSalon)
		owner.PATCH("/appointments/:id/status", hb.Appointments.UpdateStatus)
		owner.PATCH("/appointments/:id/staff", hb.Appointments.ReassignStaff)
		owner.POST("/appointments/:id/cancel", hb.Appointments.Cancel)

		owner.GET("/payroll", hb.Payroll.List)
		owner.POST("/payroll/generate", hb.Payroll.Generate)
		owner.PATCH("/payroll/:id/approve", hb.Payroll.Approve)
		owner.PATCH("/payroll/:id/paid", hb.Payroll.MarkPaid)

		owner.GET("/forecast", hb.Forecast.SalonForecast)
	}
}

// RegisterAppointmentRoutes registers customer booking and staff agenda endpoints.
func RegisterAppointmentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	customer := api.Group("/appointments", auth, middleware.RequireRoles(models.RoleCustomer))
	{
		customer.POST("", hb.Appointments.Book)
		customer.GET("/mine", hb.Appointments.ListMine)
		customer.POST("/:id/cancel", hb.Appointments.Cancel)
	}

	staff := api.Group("/staff", auth, middleware.RequireRoles(models.RoleStaff))
	staff.GET("/me/appointments", hb.Appointments.ListForStaff)
}

// RegisterScheduleRoutes registers staff schedule requests and owner review.
func RegisterScheduleRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	group := api.Group("/schedule-requests", auth)
	{
		staff := group.Group("", middleware.RequireRoles(models.RoleStaff))
		staff.POST("", hb.Schedule.Create)
		staff.GET("/mine", hb.Schedule.ListMine)

		owner := group.Group("", middleware.RequireRoles(models.RoleSalon))
		owner.GET("/pending", hb.Schedule.ListPending)
		owner.PATCH("/:id/review", hb.Schedule.Review)
	}
}

// RegisterGiftCardRoutes registers gift card purchase, lookup and redemption.
func RegisterGiftCardRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	group := api.Group("/gift-card")
	{
		group.GET("/code/:code", hb.GiftCards.GetByCode)

		buyer := group.Group("", auth)
		buyer.POST("", hb.GiftCards.Issue)
		buyer.GET("/mine", hb.GiftCards.ListMine)

		owner := group.Group("", auth, middleware.RequireRoles(models.RoleSalon))
		owner.GET("/salon", hb.GiftCards.ListForSalon)
		owner.POST("/redeem", hb.GiftCards.Redeem)
		owner.POST("/:code/cancel", hb.GiftCards.Cancel)
	}
}

// RegisterFeedbackRoutes registers internal staff feedback.
func RegisterFeedbackRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	group := api.Group("/internal-feedback", auth)
	{
		group.POST("", middleware.RequireRoles(models.RoleSalon, models.RoleStaff), hb.Feedback.Submit)

		owner := group.Group("", middleware.RequireRoles(models.RoleSalon))
		owner.GET("", hb.Feedback.List)
		owner.GET("/staff/:staffId/summary", hb.Feedback.Summary)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	adminGroup := api.Group("/admin", auth, middleware.RequireRoles(models.RoleAdmin))
	{
		adminGroup.GET("/salons", hb.Admin.ListSalons)
		adminGroup.PATCH("/salons/:id/approve", hb.Admin.ApproveSalon)
		adminGroup.PATCH("/salons/:id/reject", hb.Admin.RejectSalon)
		adminGroup.PATCH("/salons/:id/suspend", hb.Admin.SuspendSalon)
		adminGroup.GET("/users", hb.Admin.ListUsers)
		adminGroup.GET("/finance", hb.Admin.Finance)
		adminGroup.GET("/forecast/health", hb.Admin.ForecastHealth)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	r.Use(
		utils.ErrorHandler(),
		middleware.RequestLogger(),
		cors.New(corsConfig(opts.AllowedOrigins)),
		middleware.RateLimitMiddleware(opts.MaxRequestsPerMin),
	)

	auth := middleware.JWTAuthMiddleware(opts.JWT, opts.Revoker)
	api := r.Group("/api")

	RegisterHealthRoute(r, hb)
	RegisterAuthRoutes(api, hb, auth)
	RegisterSalonRoutes(api, hb, auth)
	RegisterAppointmentRoutes(api, hb, auth)
	RegisterScheduleRoutes(api, hb, auth)
	RegisterGiftCardRoutes(api, hb, auth)
	RegisterFeedbackRoutes(api, hb, auth)
	RegisterAdminRoutes(api, hb, auth)
}
