// Package api serves the impact calculators and aggregators over HTTP.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const corsMaxAge = 12 * time.Hour

// Config wires the router.
type Config struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	Version        string
	// Development marks a prerelease or unversioned build on /healthz.
	Development bool
}

// NewRouter builds the gin engine with logging, recovery, CORS and every
// route registered.
func NewRouter(cfg Config) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(cfg.Logger), gin.Recovery(), cors.New(corsConfig(cfg.AllowedOrigins)))

	h := NewHandler(cfg.Version, cfg.Development)
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	registerImpactRoutes(v1, h)
	registerSummaryRoutes(v1, h)

	return router
}

func registerImpactRoutes(router *gin.RouterGroup, h *Handler) {
	router.GET("/categories", h.Categories)
	router.GET("/milestones", h.Milestones)

	calc := router.Group("/impact")
	{
		calc.POST("/food", h.FoodImpact)
		calc.POST("/non-food", h.NonFoodImpact)
	}
}

func registerSummaryRoutes(router *gin.RouterGroup, h *Handler) {
	summary := router.Group("/summary")
	{
		summary.POST("/user", h.UserSummary)
		summary.POST("/community", h.CommunitySummary)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", TraceHeader},
		ExposeHeaders: []string{TraceHeader},
		MaxAge:        corsMaxAge,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
