package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	ServerPort        string
	JWTSecret         string
	RecurringInterval time.Duration
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "taskmanager_user"),
		DBPassword:        getEnv("DB_PASSWORD", "taskmanager_pass"),
		DBName:            getEnv("DB_NAME", "taskmanager_db"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		JWTSecret:         getEnv("JWT_SECRET", "supersecretkey"),
		RecurringInterval: getEnvHours("RECURRING_INTERVAL_HOURS", 24),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvHours(key string, defaultHours int) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if hours, err := strconv.Atoi(value); err == nil && hours > 0 {
			return time.Duration(hours) * time.Hour
		}
		log.Printf("⚠️  Invalid %s value %q, using default", key, value)
	}
	return time.Duration(defaultHours) * time.Hour
}
