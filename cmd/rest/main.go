package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mycloud-drive/internal/bootstrap"
	"mycloud-drive/internal/config"
	"mycloud-drive/internal/server"
	"mycloud-drive/internal/tracer"
	"mycloud-drive/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		log.Fatalf("Bootstrap failed: %v", err)
	}
	defer container.Close()
	sysLogger := container.Logger

	shutdownTracer := tracer.InitTracer(cfg.Tracing, sysLogger)
	defer shutdownTracer(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Start Background Services
	go container.WebSocketHub.Run(ctx)

	if err := container.ConsumerService.Consume(ctx); err != nil {
		sysLogger.Error("Main", "Files-changed consumer failed to start", map[string]interface{}{"error": err.Error()})
	}

	stopAccessLog, err := container.AccessLogService.Start(ctx)
	if err != nil {
		sysLogger.Warn("Main", "Access log consumer not running, entries are written inline", map[string]interface{}{"error": err.Error()})
	} else {
		defer stopAccessLog()
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		sysLogger.Info("Main", "Shutting down", nil)
		if err := srv.Shutdown(); err != nil {
			sysLogger.Error("Main", "Server shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 6. Run Server
	sysLogger.Info("Main", "Server is running", map[string]interface{}{"port": cfg.App.Port})
	if err := srv.Run(); err != nil {
		sysLogger.Error("Main", "Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
