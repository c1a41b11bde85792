package handlers

import (
	"time"

	"satwatch/internal/middleware"
	"satwatch/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterOptions собирает зависимости HTTP-слоя.
type RouterOptions struct {
	Service      service.TelemetryService
	HealthChecks map[string]HealthCheck
	Metrics      *middleware.HTTPMetrics
	RateLimiter  *middleware.IPRateLimiter
	FrontendURL  string
}

func NewRouter(opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())

	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}

	// CORS для отдельного фронтенда
	origins := []string{"http://localhost:3000"}
	if opts.FrontendURL != "" && opts.FrontendURL != origins[0] {
		origins = append(origins, opts.FrontendURL)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if opts.RateLimiter != nil {
		r.Use(middleware.IPRateLimitMiddleware(opts.RateLimiter))
	}

	r.SetHTMLTemplate(LoadTemplates())

	NewTelemetryHandler(opts.Service).Register(r.Group("/api"))
	NewPageHandler(opts.Service).Register(r)

	r.GET("/health", NewHealthHandler(opts.HealthChecks).Health)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	return r
}
