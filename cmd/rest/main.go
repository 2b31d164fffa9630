package main

import (
	"context"
	"log"

	"github.com/mrayan007/MonitoringLitterDetection/internal/bootstrap"
	"github.com/mrayan007/MonitoringLitterDetection/internal/config"
	"github.com/mrayan007/MonitoringLitterDetection/internal/server"
	"github.com/mrayan007/MonitoringLitterDetection/internal/tracer"
	"github.com/mrayan007/MonitoringLitterDetection/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	if container.EventPublisher != nil {
		defer container.EventPublisher.Close()
	}
	defer container.Logger.Sync()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
