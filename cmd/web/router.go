package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/avunculargroup/avuncular-web/config"
	"github.com/avunculargroup/avuncular-web/internal/handlers"
	"github.com/avunculargroup/avuncular-web/internal/middleware"
	"github.com/avunculargroup/avuncular-web/internal/services"
	"github.com/avunculargroup/avuncular-web/internal/site"
)

// contactEndpoint is where the landing page form posts
const contactEndpoint = "/api/contact"

// newRouter wires middleware, the landing page and the API onto one engine
func newRouter(cfg *config.Config, contactService services.ContactServiceInterface) (*gin.Engine, error) {
	tpl, err := site.Templates()
	if err != nil {
		return nil, err
	}

	content := site.DefaultContent(cfg.Site.Name, cfg.Site.Description, cfg.Contact.FallbackEmail)
	pageHandler, err := handlers.NewPageHandler(content, cfg.Server.BaseURL, contactEndpoint, cfg.Contact.FallbackEmail)
	if err != nil {
		return nil, err
	}
	contactHandler := handlers.NewContactHandler(contactService)
	healthHandler := handlers.NewHealthHandler()

	router := gin.New()
	router.SetHTMLTemplate(tpl)

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	// Allow local development servers
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	// Landing page and assets
	router.GET("/", pageHandler.Home)
	router.GET("/manifest.webmanifest", pageHandler.Manifest)
	router.StaticFS("/static", site.Static())

	api := router.Group("/api")
	api.Use(middleware.NoStoreMiddleware())
	api.GET("/healthcheck", healthHandler.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api.POST("/contact", middleware.BodySizeLimitMiddleware(middleware.ContactBodyLimit), contactHandler.Submit)

	return router, nil
}
