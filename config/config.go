package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/table-booking/utils"
)

type Config struct {
	Port          string
	GinMode       string
	DBDriver      string
	DBDSN         string
	JWTSecret     string
	KafkaBrokers  string
	KafkaTopic    string
	RedisAddr     string
	RedisChannel  string
	SweepSchedule string
	CORSOrigin    string
	LogLevel      string
}

// Load reads .env when present, then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("No .env file found, using environment")
	}
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		Port:          getenv("PORT", "8080"),
		GinMode:       getenv("GIN_MODE", "debug"),
		DBDriver:      strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		DBDSN:         getenv("DB_DSN", "booking.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		KafkaBrokers:  os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:    getenv("KAFKA_TOPIC", "booking-events"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisChannel:  getenv("REDIS_CHANNEL", "booking-events"),
		SweepSchedule: getenv("SWEEP_SCHEDULE", "@hourly"),
		CORSOrigin:    getenv("CORS_ORIGIN", "*"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
