package bootstrap

import (
	"log"

	"github.com/mrayan007/MonitoringLitterDetection/internal/config"
	"github.com/mrayan007/MonitoringLitterDetection/internal/controller"
	"github.com/mrayan007/MonitoringLitterDetection/internal/pkg/logger"
	"github.com/mrayan007/MonitoringLitterDetection/internal/repository/implementation"
	"github.com/mrayan007/MonitoringLitterDetection/internal/service"

	pktNats "github.com/mrayan007/MonitoringLitterDetection/pkg/nats"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	MonitoringController controller.IMonitoringController

	// Exposed for main.go to close on shutdown
	EventPublisher *pktNats.Publisher
	Logger         logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	litterRepo := implementation.NewLitterRepository(db)

	// 2. Infrastructure
	// NATS is optional: a failed connect downgrades to running without
	// events rather than refusing to start.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 3. Services
	authService := service.NewAuthService(cfg.Auth, cfg.Jwt)
	sensoringService := service.NewSensoringService(cfg.Sensoring, sysLogger)
	geocodeService := service.NewGeocodeService(cfg.LocationIq, sysLogger)
	monitoringService := service.NewMonitoringService(
		litterRepo,
		sensoringService,
		geocodeService,
		natsPub,
		sysLogger,
	)
	predictionService := service.NewPredictionService(cfg.Prediction, geocodeService, sysLogger)

	// 4. Controllers
	return &Container{
		AuthController:       controller.NewAuthController(authService),
		MonitoringController: controller.NewMonitoringController(monitoringService, predictionService),

		EventPublisher: natsPub,
		Logger:         sysLogger,
	}
}
