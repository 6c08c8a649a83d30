package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Config holds all environment configuration
type Config struct {
	// Database
	DatabaseHost     string
	DatabasePort     string
	PostgresUser     string
	PostgresPassword string
	DatabaseName     string
	DatabaseSchema   string

	// Authentication
	JWTSecret       string
	EnableDevTokens bool

	// Discord
	DiscordBotToken         string
	DiscordRecordsChannelID string

	// Kafka
	KafkaBroker   string
	KafkaRunTopic string

	// HTTP
	Port                    string
	LeaderboardCacheSeconds int
}

var (
	appConfig *Config
	onceEnv   sync.Once
)

// loadConfig loads and validates all environment variables
func loadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		// Database - required
		DatabaseHost:     getEnvWithDefault("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnvWithDefault("DATABASE_PORT", "5432"),
		PostgresUser:     getEnvWithDefault("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnvWithDefault("POSTGRES_PASSWORD", "postgres"),
		DatabaseName:     getEnvWithDefault("DATABASE_NAME", "postgres"),
		DatabaseSchema:   getEnvWithDefault("DATABASE_SCHEMA", "speedrun"),

		// JWT - required in production
		JWTSecret:       os.Getenv("JWT_SECRET"),
		EnableDevTokens: os.Getenv("ENABLE_DEV_TOKENS") == "true",

		// Discord - optional, world record announcements are skipped without it
		DiscordBotToken:         os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordRecordsChannelID: os.Getenv("DISCORD_RECORDS_CHANNEL_ID"),

		// Kafka - optional, run events are dropped without a broker
		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaRunTopic: getEnvWithDefault("KAFKA_RUN_TOPIC", "run-events"),

		Port:                    getEnvWithDefault("PORT", "8000"),
		LeaderboardCacheSeconds: getEnvAsInt("LEADERBOARD_CACHE_SECONDS", 30),
	}
	switch {
	case IsProduction():
		config.JWTSecret = getEnv("JWT_SECRET")
	case config.JWTSecret == "" && config.EnableDevTokens:
		config.JWTSecret = "dummyjwt"
	case config.JWTSecret == "":
		// tokens signed by one process are never accepted by another
		config.JWTSecret = uuid.NewString() + uuid.NewString()
	}

	appConfig = config
	return config
}

func Env() *Config {
	onceEnv.Do(func() {
		appConfig = loadConfig()
	})
	return appConfig
}

// Helper functions
func getEnv(key string) string {
	value := os.Getenv(key)
	if value == "" && IsProduction() {
		panic(fmt.Sprintf("Required environment variable %s is not set", key))
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// IsProduction returns true if running in production
func IsProduction() bool {
	return getEnvWithDefault("ENVIRONMENT", "development") == "production"
}

// IsDevelopment returns true if running in development
func IsDevelopment() bool {
	return !IsProduction()
}
