package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Jwt        JwtConfig
	Auth       AuthConfig
	Sensoring  SensoringConfig
	LocationIq LocationIqConfig
	Prediction PredictionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type JwtConfig struct {
	Secret               string
	Issuer               string
	Audience             string
	TokenLifetimeMinutes int
}

// AuthConfig holds the single identity accepted by the login endpoint.
// There is no user store; credentials are matched exactly.
type AuthConfig struct {
	Username string
	Password string
}

type SensoringConfig struct {
	BaseURL    string
	LoginPath  string
	DataPath   string
	LogoutPath string
	Email      string
	Password   string
}

type LocationIqConfig struct {
	BaseURL string
	Key     string
}

type PredictionConfig struct {
	BaseURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/monitoring.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Jwt: JwtConfig{
			Secret:               getEnv("JWT_SECRET", "default_secret"),
			Issuer:               getEnv("JWT_ISSUER", "MonitoringApi"),
			Audience:             getEnv("JWT_AUDIENCE", "MonitoringFrontend"),
			TokenLifetimeMinutes: getEnvAsInt("JWT_TOKEN_LIFETIME_MINUTES", 60),
		},
		Auth: AuthConfig{
			Username: getEnv("AUTH_USERNAME", "admin"),
			Password: getEnv("AUTH_PASSWORD", "password123"),
		},
		Sensoring: SensoringConfig{
			BaseURL:    getEnv("SENSORING_BASE_URL", ""),
			LoginPath:  getEnv("SENSORING_LOGIN_PATH", "/auth/login"),
			DataPath:   getEnv("SENSORING_DATA_PATH", "/litter"),
			LogoutPath: getEnv("SENSORING_LOGOUT_PATH", "/auth/logout"),
			Email:      getEnv("SENSORING_EMAIL", ""),
			Password:   getEnv("SENSORING_PASSWORD", ""),
		},
		LocationIq: LocationIqConfig{
			BaseURL: getEnv("LOCATIONIQ_BASE_URL", "https://us1.locationiq.com"),
			Key:     getEnv("LOCATIONIQ_API_KEY", ""),
		},
		Prediction: PredictionConfig{
			BaseURL: getEnv("PREDICTION_API_BASE_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
