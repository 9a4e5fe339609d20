package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/scholar-stream/scholarship-service/internal/config"
	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
	"github.com/scholar-stream/scholarship-service/internal/services"
	"github.com/scholar-stream/scholarship-service/internal/utils"
)

type HandlerManager struct {
	userHandler        *UserHandler
	scholarshipHandler *ScholarshipHandler
	applicationHandler *ApplicationHandler
	reviewHandler      *ReviewHandler
	paymentHandler     *PaymentHandler
	analyticsHandler   *AnalyticsHandler
	authMiddleware     *CasdoorAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	casdoorConfig config.CasdoorConfig,
	userRepo repositories.UserRepository,
) *HandlerManager {
	authMiddleware := NewCasdoorAuthMiddleware(casdoorConfig, userRepo)

	return &HandlerManager{
		userHandler:        NewUserHandler(serviceManager.User(), logger),
		scholarshipHandler: NewScholarshipHandler(serviceManager.Scholarship(), logger),
		applicationHandler: NewApplicationHandler(serviceManager.Application(), logger),
		reviewHandler:      NewReviewHandler(serviceManager.Review(), logger),
		paymentHandler:     NewPaymentHandler(serviceManager.Payment(), logger),
		analyticsHandler:   NewAnalyticsHandler(serviceManager.Analytics(), serviceManager.Export(), logger),
		authMiddleware:     authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	// Public routes: the catalog, reviews per scholarship, registration.
	{
		v1.GET("/scholarships", hm.scholarshipHandler.ListScholarships)
		v1.GET("/scholarships/top", hm.scholarshipHandler.GetTopScholarships)
		v1.GET("/scholarships/:id", hm.scholarshipHandler.GetScholarship)
		v1.GET("/scholarships/:id/reviews", hm.reviewHandler.GetScholarshipReviews)

		v1.POST("/users/register", hm.userHandler.RegisterUser)
	}

	// Authenticated routes. The service layer re-checks every operation
	// through the authorization gate; route middleware is the first cut.
	auth := v1.Group("")
	auth.Use(hm.authMiddleware.AuthMiddleware())
	{
		// Scholarship management - Admins only
		scholarships := auth.Group("/scholarships")
		scholarships.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			scholarships.POST("", hm.scholarshipHandler.CreateScholarship)
			scholarships.PUT("/:id", hm.scholarshipHandler.UpdateScholarship)
			scholarships.DELETE("/:id", hm.scholarshipHandler.DeleteScholarship)
		}

		// Application routes
		applications := auth.Group("/applications")
		{
			applications.POST("", hm.applicationHandler.CreateApplication)
			applications.GET("/me", hm.applicationHandler.GetMyApplications)
			applications.GET("/:id", hm.applicationHandler.GetApplication)
			applications.PUT("/:id", hm.applicationHandler.UpdateApplication)
			applications.DELETE("/:id", hm.applicationHandler.DeleteApplication)

			// Moderation
			applications.GET("", hm.authMiddleware.RequireRoleMiddleware(models.RoleModerator), hm.applicationHandler.ListApplications)
			applications.PUT("/:id/status", hm.authMiddleware.RequireRoleMiddleware(models.RoleModerator), hm.applicationHandler.UpdateApplicationStatus)
			applications.GET("/user/:email", hm.applicationHandler.GetApplicationsByUser)
		}

		// Review routes
		reviews := auth.Group("/reviews")
		{
			reviews.POST("", hm.reviewHandler.CreateReview)
			reviews.GET("/me", hm.reviewHandler.GetMyReviews)
			reviews.PUT("/:id", hm.reviewHandler.UpdateReview)
			reviews.DELETE("/:id", hm.reviewHandler.DeleteReview)
			reviews.GET("", hm.authMiddleware.RequireRoleMiddleware(models.RoleModerator), hm.reviewHandler.ListReviews)
		}

		// Payment routes
		payments := auth.Group("/payments")
		{
			payments.POST("/checkout-session", hm.paymentHandler.CreateCheckoutSession)
			payments.POST("/payment-intent", hm.paymentHandler.CreatePaymentIntent)
			payments.POST("/confirm", hm.paymentHandler.ConfirmPayment)
			payments.GET("/me", hm.paymentHandler.GetMyPayments)
			payments.GET("/user/:email", hm.paymentHandler.GetPaymentsByUser)
		}

		// User routes
		users := auth.Group("/users")
		{
			users.GET("/me", hm.userHandler.GetMe)
			users.GET("/me/role", hm.userHandler.GetMyRole)

			users.GET("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.ListUsers)
			users.PUT("/:id/role", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.UpdateUserRole)
			users.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.DeleteUser)
		}

		// Analytics routes
		analytics := auth.Group("/analytics")
		{
			analytics.GET("/me", hm.analyticsHandler.GetMyStats)
			analytics.GET("/moderator", hm.authMiddleware.RequireRoleMiddleware(models.RoleModerator), hm.analyticsHandler.GetModeratorStats)

			admin := analytics.Group("")
			admin.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
			{
				admin.GET("/stats", hm.analyticsHandler.GetPlatformStats)
				admin.GET("/chart-data", hm.analyticsHandler.GetChartData)
				admin.GET("/full", hm.analyticsHandler.GetFullStats)
				admin.GET("/export/applications", hm.analyticsHandler.ExportApplications)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "scholarship-service",
		})
	})
}
