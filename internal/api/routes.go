package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/northpointhomes/siteworks/internal/handler"
	"github.com/northpointhomes/siteworks/internal/middleware"
)

// Handlers bundles the route handlers for registration.
type Handlers struct {
	Health     *handler.HealthHandler
	Content    *handler.ContentHandler
	Analytics  *handler.AnalyticsHandler
	Contact    *handler.ContactHandler
	Revalidate *handler.RevalidateHandler
}

// SetupRoutes configures all API routes. The done channel stops the rate
// limiter's background cleanup on shutdown.
func SetupRoutes(
	router *gin.Engine,
	h Handlers,
	maxEventsPerMin int,
	rateLimitWindow time.Duration,
	done <-chan struct{},
) {
	router.GET("/health", h.Health.HealthCheck)
	router.HEAD("/health", h.Health.HealthCheck)

	api := router.Group("/api")

	// Content reads. These never rate limit; CDN caching sits in front.
	api.GET("/projects", h.Content.Projects)
	api.GET("/cities", h.Content.Cities)
	api.GET("/packages", h.Content.Packages)
	api.GET("/testimonials", h.Content.Testimonials)
	api.GET("/gallery", h.Content.Gallery)
	api.GET("/faqs", h.Content.FAQs)
	api.GET("/blogs", h.Content.Blogs)
	api.GET("/page-configs", h.Content.PageConfigs)
	api.GET("/company-settings", h.Content.CompanySettings)

	// Writes get the bot filter and per-IP rate limiting.
	writes := api.Group("")
	writes.Use(middleware.BotFilter())
	writes.Use(middleware.RateLimiter(maxEventsPerMin, rateLimitWindow, done))
	writes.POST("/analytics", h.Analytics.Collect)
	writes.POST("/contact", h.Contact.Submit)

	api.POST("/revalidate", h.Revalidate.Revalidate)
}
