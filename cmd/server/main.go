package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	domainRepo "valet-booking-service/internal/domain/repository"
	"valet-booking-service/internal/infrastructure/config"
	"valet-booking-service/internal/infrastructure/persistence"
	bookingRepo "valet-booking-service/internal/interface/repository"
	"valet-booking-service/internal/interface/rest"
	"valet-booking-service/internal/usecase"
	"valet-booking-service/pkg/logger"
	"valet-booking-service/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Create logger
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	log := logger.NewLogger(cfg.Debug)
	log.Info("Starting Valet Booking Service")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up the local store (source of truth)
	log.Info("Connecting to PostgreSQL")
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up the remote mirror. A failure here degrades: the engine runs
	// from local state alone and the reconciler keeps retrying.
	var mirror domainRepo.BookingMirror
	log.Info("Connecting to MongoDB")
	mongoClient, mongoDB, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Warn("Remote store unreachable, running from local cache only", "error", err)
	} else {
		mirror = bookingRepo.NewMongoBookingMirror(mongoDB)
	}

	appMetrics := metrics.NewMetrics(cfg.MetricsNamespace)

	// Set up repositories
	cache := bookingRepo.NewGormBookingCache(gormDB, log)
	if err := cache.Bootstrap(ctx); err != nil {
		log.Fatal("Failed to bootstrap local cache", "error", err)
	}

	bookings := bookingRepo.NewSyncedBookingRepository(cache, mirror, log, appMetrics)
	invoices := bookingRepo.NewGormInvoiceStore(gormDB)
	tasks := bookingRepo.NewGormTaskStore(gormDB)
	events := bookingRepo.NewGormStatusEventStore(gormDB)
	catalog := bookingRepo.NewStaticPackageCatalog()
	notifier := bookingRepo.NewWebhookNotificationSender(cfg.NotifyEndpoint, cfg.NotifyToken, log)

	// Set up the engine
	dispatcher := usecase.NewSideEffectDispatcher(notifier, invoices, tasks, catalog, mirror, log, appMetrics)
	engine := usecase.NewTransitionEngine(bookings, events, dispatcher, cfg.StaffRoster, cfg.AllowStageSkip, log, appMetrics)

	// Start remote reconciliation in a goroutine
	reconciler := usecase.NewMirrorReconciler(bookings, cfg.SyncInterval, log)
	go reconciler.Run(ctx)

	// Set up HTTP server
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))
	rest.NewHandler(engine, bookings, invoices, tasks, events, log).Register(router)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	if mongoClient != nil {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("Valet Booking Service stopped")
}
