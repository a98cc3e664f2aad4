package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	otelapi "go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"AttendSheet/config"
	"AttendSheet/internal/queue"
	pkgdatabase "AttendSheet/pkg/database"
	"AttendSheet/pkg/logger"
	"AttendSheet/pkg/metrics"
	pkgmq "AttendSheet/pkg/mq"
	pkgotel "AttendSheet/pkg/otel"
	"AttendSheet/pkg/snowflake"
	"AttendSheet/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	otelShutdown, err := pkgotel.InitOpenTelemetry(ctx, pkgotel.Config{
		ServiceName:    config.Cfg.ServiceName + "-worker",
		ServiceVersion: "1.0.0",
		Environment:    config.Cfg.Environment,
		OTLPEndpoint:   config.Cfg.OTLPEndpoint,
	})
	if err != nil {
		logger.Logger.Warn("Failed to initialize OpenTelemetry", zap.Error(err))
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				logger.Logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
			}
		}()
	}

	meter := otelapi.Meter(config.Cfg.ServiceName + "-worker")
	if err := metrics.InitMetrics(); err != nil {
		logger.Logger.Warn("Failed to initialize business metrics", zap.Error(err))
	}
	if err := pkgdatabase.InitDatabaseMetrics(meter); err != nil {
		logger.Logger.Warn("Failed to initialize database metrics", zap.Error(err))
	}
	if err := pkgmq.InitMQMetrics(meter); err != nil {
		logger.Logger.Warn("Failed to initialize MQ metrics", zap.Error(err))
	}

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	logger.Logger.Info("Worker service starting",
		zap.String("service", config.Cfg.ServiceName+"-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	// 阻塞消费导出请求，ctx 取消后返回
	if err := queue.StartExportConsumer(ctx); err != nil && err != context.Canceled {
		logger.Logger.Error("Export consumer exited with error", zap.Error(err))
	}

	logger.Logger.Info("Worker service shutting down gracefully")
}
