package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/config"
	"github.com/polkiloo/orderdesk/internal/server/http/handlers"
	"github.com/polkiloo/orderdesk/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.OrderDeskFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(middleware.MaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	intakeHandler := handlers.NewIntakeHandler(facade)
	authHandler := handlers.NewAuthHandler(facade)
	ownerHandler := handlers.NewOwnerHandler(facade)
	interactionHandler := handlers.NewInteractionHandler(facade, logger)

	api := engine.Group("/api")
	api.GET("/status", intakeHandler.Status)

	limited := api.Group("")
	limited.Use(middleware.RateLimit(middleware.NewClientRateLimiter(cfg.SubmitRate, cfg.SubmitBurst)))
	limited.POST("/orders", intakeHandler.SubmitOrder)
	limited.POST("/messages", intakeHandler.SubmitMessage)

	verifier := middleware.NewSignatureVerifier(cfg.InteractionKey())
	api.POST("/interactions", middleware.SignatureRequired(verifier), interactionHandler.Handle)

	owner := api.Group("/owner")
	owner.POST("/login", authHandler.Login)

	ownerAuth := owner.Group("")
	ownerAuth.Use(middleware.OwnerRequired(facade))
	ownerAuth.GET("/orders", ownerHandler.List)
	ownerAuth.GET("/orders/:ref", ownerHandler.Get)
	ownerAuth.PATCH("/orders/:ref/status", ownerHandler.UpdateStatus)
	ownerAuth.PATCH("/orders/:ref/payment", ownerHandler.SetPayment)
	ownerAuth.PATCH("/orders/:ref/note", ownerHandler.SetNote)
	ownerAuth.GET("/channel", ownerHandler.Channel)
	ownerAuth.PUT("/channel", ownerHandler.SetChannel)
	ownerAuth.PUT("/status", ownerHandler.SetAvailability)

	return engine
}
