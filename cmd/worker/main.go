package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-manager/internal/db"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/queue"
	infraRepo "github.com/BruksfildServices01/barbershop-manager/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
)

// Worker process: delivers appointment reminders from the asynq queue and
// runs the daily audit-log retention job.
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

	if !cfg.RedisEnabled() {
		log.Fatal("REDIS_ADDR is required by the worker")
	}

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)
	defer auditDispatcher.Close()

	// ======================================================
	// ⏰ CRON
	// ======================================================
	c := cron.New()
	if _, err := c.AddFunc("@daily", func() {
		purgeAuditLogs(auditLogger, cfg.AuditRetentionDays, log)
	}); err != nil {
		log.Fatal("failed to schedule audit purge", zap.Error(err))
	}
	c.Start()
	defer c.Stop()

	// ======================================================
	// 📬 ASYNQ
	// ======================================================
	srv := asynq.NewServer(queue.RedisOpt(cfg), asynq.Config{
		Concurrency: 5,
		Logger:      log.Sugar(),
	})

	handler := queue.NewReminderHandler(
		infraRepo.NewAppointmentGormRepository(db),
		auditDispatcher,
		log,
	)

	if err := srv.Start(queue.NewServeMux(handler)); err != nil {
		log.Fatal("failed to start worker", zap.Error(err))
	}
	log.Info("worker running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker")
	srv.Shutdown()
}

func purgeAuditLogs(l *audit.Logger, retentionDays int, log *zap.Logger) {
	if retentionDays <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	n, err := l.Purge(ctx, cutoff)
	if err != nil {
		log.Error("audit purge failed", zap.Error(err))
		return
	}
	log.Info("audit logs purged", zap.Int64("rows", n), zap.Time("before", cutoff))
}
