package main

import (
	"log"
	"net/http"

	"antrian-fm/config"
	"antrian-fm/handlers"
	"antrian-fm/monitoring"
	"antrian-fm/security"
	"antrian-fm/services"
	"antrian-fm/utils"

	_ "antrian-fm/migrations"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	pubnub "github.com/pubnub/go"
)

func main() {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg)
	defer redisClient.Close()

	// Initialize PubNub
	pnConfig := pubnub.NewConfig()
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey

	var pn *pubnub.PubNub
	if cfg.PubNubPublishKey != "" {
		pn = pubnub.NewPubNub(pnConfig)
	}

	// Initialize services
	notifier := services.NewNotifier(pn, cfg.DisplayChannel)
	ticketService := services.NewTicketService(app, notifier)
	counterService := services.NewCounterService(app)
	authService := services.NewAuthService(app, redisClient, cfg)

	// Initialize handlers
	ticketHandler := handlers.NewTicketHandler(app, ticketService, cfg.QueueBoardSize)
	adminHandler := handlers.NewAdminHandler(app, ticketService)
	counterHandler := handlers.NewCounterHandler(app, counterService)
	reportHandler := handlers.NewReportHandler(app, ticketService)
	exportHandler := handlers.NewExportHandler(app, ticketService)
	authHandler := handlers.NewAuthHandler(app, authService)

	rateLimiter := security.NewRateLimiter(redisClient, cfg.LoginRateLimit, cfg.LoginRateWindow)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Ops server (metrics + health)
	if cfg.EnableMetrics {
		go monitoring.StartMetricsServer(cfg, redisClient)
	}

	var monitor *monitoring.Monitor

	// Register routes
	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Customer endpoints
		e.Router.GET("/api/service-types", ticketHandler.ListServiceTypes)
		e.Router.POST("/api/tickets", ticketHandler.Create)
		e.Router.GET("/api/queue", ticketHandler.Board)
		e.Router.GET("/api/counters", counterHandler.List)

		// Admin login (rate limited, outside the authed group)
		e.Router.POST("/api/admin/login", authHandler.Login).BindFunc(rateLimiter.LoginRateLimit())

		// Admin endpoints
		admin := e.Router.Group("/api/admin")
		admin.BindFunc(authHandler.RequireAdmin)
		admin.POST("/logout", authHandler.Logout)
		admin.GET("/me", authHandler.Me)
		admin.GET("/tickets", adminHandler.ListTickets)
		admin.PATCH("/tickets/{id}/status", adminHandler.UpdateTicketStatus)
		admin.DELETE("/tickets/{id}", adminHandler.DeleteTicket)
		admin.GET("/counters", counterHandler.List)
		admin.PATCH("/counters/{id}", counterHandler.Update)
		admin.GET("/reports", reportHandler.Summary)
		admin.GET("/export", exportHandler.Export)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(http.StatusOK, map[string]string{"status": "healthy"})
		})

		if cfg.EnableMetrics {
			monitor = monitoring.NewMonitor(app, cfg.CollectInterval)
		}

		log.Println("Server routes registered")

		return e.Next()
	})

	app.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		if monitor != nil {
			monitor.Stop()
		}
		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
