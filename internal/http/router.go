package api

import (
	"log"
	stdhttp "net/http"

	intconfig "fleetdesk/internal/config"
	h "fleetdesk/internal/http/handlers"
	"fleetdesk/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Pricing
		pricing := api.Group("/pricing")
		pricing.POST("/quote", h.QuotePrice)

		// Driver earnings & settlement
		drivers := api.Group("/drivers")
		drivers.GET("/:id/earnings/daily", h.GetDailyEarnings)
		drivers.GET("/:id/earnings/monthly", h.GetMonthlyEarnings)
		drivers.GET("/:id/settlement", h.GetSettlement)
		drivers.GET("/:id/settlement/statement", h.GetSettlementStatement)

		// Config administration, owner/admin only.
		adminOnly := []gin.HandlerFunc{
			middleware.Auth([]byte(env.JWTSecret)),
			middleware.RequireRoles("owner", "admin"),
		}

		tripConfigs := api.Group("/trip-type-configs", adminOnly...)
		tripConfigs.GET("", h.ListTripTypeConfigs)
		tripConfigs.GET("/:name", h.GetTripTypeConfig)
		tripConfigs.POST("", h.SetTripTypeConfig)
		tripConfigs.DELETE("/:name", h.DeleteTripTypeConfig)

		earningsConfigs := api.Group("/earnings-configs", adminOnly...)
		earningsConfigs.GET("", h.GetEarningsConfigs)
		earningsConfigs.POST("", h.SetEarningsConfig)
	}

	return r
}
