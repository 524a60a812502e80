package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/BruksfildServices01/barbershop-manager/docs"
	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-manager/internal/db"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/payment"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/queue"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/routes"
)

// @title Barbershop Manager API
// @version 1.0
// @description Agenda, disponibilidade e caixa de barbearias.
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := dbpkg.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	ctx := context.Background()

	var availabilityCache domain.AvailabilityCache = domain.NoopCache{}
	if cfg.RedisEnabled() {
		redisClient := cache.NewRedisClient(cfg)
		defer redisClient.Close()
		availabilityCache = cache.NewAvailabilityCache(ctx, cfg, redisClient, log)
	}

	reminders := queue.NewReminderScheduler(cfg, log)
	if closer, ok := reminders.(io.Closer); ok {
		defer closer.Close()
	}

	var payments domain.PaymentGateway
	gateway, err := payment.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken)
	if err != nil {
		log.Fatal("failed to configure mercadopago", zap.Error(err))
	}
	if gateway != nil {
		payments = gateway
	} else {
		log.Warn("MERCADOPAGO_ACCESS_TOKEN not set, checkout disabled")
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)
	defer auditDispatcher.Close()

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Log:       log,
		Cache:     availabilityCache,
		Reminders: reminders,
		Payments:  payments,
		Audit:     auditDispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	log.Info("server running", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
