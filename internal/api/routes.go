package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"landlord/server/config"
	"landlord/server/internal/metrics"
)

func SetupRoutes(router *gin.Engine, handler *Handler, cfg *config.Config) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.AllowCredentials = true

	router.Use(cors.New(corsConfig))
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(handler.logger))
	router.Use(metrics.Middleware())

	router.GET("/", handler.Root)
	router.GET("/health", handler.Health)
	router.GET("/ready", handler.Ready)
	router.GET("/metrics", metrics.Handler())

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", handler.Register)
		authRoutes.POST("/login", handler.Login)
		authRoutes.GET("/me", handler.RequireAuth(), handler.Me)
	}

	protected := router.Group("")
	protected.Use(handler.RequireAuth())

	properties := protected.Group("/properties")
	{
		properties.GET("", handler.ListProperties)
		properties.POST("", handler.CreateProperty)
		properties.GET("/:id", handler.GetProperty)
		properties.PUT("/:id", handler.UpdateProperty)
		properties.DELETE("/:id", handler.DeleteProperty)
	}

	tenants := protected.Group("/tenants")
	{
		tenants.GET("", handler.ListTenants)
		tenants.POST("", handler.CreateTenant)
		tenants.GET("/:id", handler.GetTenant)
		tenants.PUT("/:id", handler.UpdateTenant)
		tenants.DELETE("/:id", handler.DeleteTenant)
	}

	maintenance := protected.Group("/maintenance")
	{
		maintenance.GET("", handler.ListMaintenanceRequests)
		maintenance.POST("", handler.CreateMaintenanceRequest)
		maintenance.GET("/:id", handler.GetMaintenanceRequest)
		maintenance.PUT("/:id", handler.UpdateMaintenanceRequest)
		maintenance.DELETE("/:id", handler.DeleteMaintenanceRequest)
	}

	rent := protected.Group("/rent")
	{
		rent.GET("", handler.ListRentPayments)
		rent.POST("", handler.CreateRentPayment)
		rent.GET("/:id", handler.GetRentPayment)
		rent.PUT("/:id", handler.UpdateRentPayment)
		rent.DELETE("/:id", handler.DeleteRentPayment)
	}

	protected.GET("/dashboard/stats", handler.DashboardStats)

	aiRoutes := protected.Group("/ai")
	{
		aiRoutes.GET("/insights", handler.Insights)
		aiRoutes.GET("/maintenance-recommendations/:property_id", handler.MaintenanceRecommendations)
		aiRoutes.GET("/rent-analysis/:property_id", handler.RentAnalysis)
		aiRoutes.POST("/generate-communication", handler.GenerateCommunication)
	}
}
