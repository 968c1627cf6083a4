package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	FR24     FR24Config
	Avinor   AvinorConfig
	Holidays HolidaysConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	Environment  string
	ServiceName  string
	ReadTimeout  int
	WriteTimeout int
	CORSOrigins  string // Comma-separated list of allowed origins
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in hours
}

// FR24Config holds Flightradar24 API configuration
type FR24Config struct {
	BaseURL        string
	Token          string
	AuthScheme     string // "bearer" | "x-api-key"
	AcceptVersion  string
	SummaryPath    string
	SummaryVariant string // "full" | "light"
	Timeout        time.Duration
}

// AvinorConfig holds the Avinor flight timetable feed configuration
type AvinorConfig struct {
	BaseURL string
	Airport string // IATA code of the home airport
	Timeout time.Duration
}

// HolidaysConfig holds the public holidays API configuration
type HolidaysConfig struct {
	BaseURL string
	Country string
	Timeout time.Duration
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ServiceName:  serviceName,
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
			CORSOrigins:  getEnv("CORS_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "transport"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			Expiration: getEnvAsInt("JWT_EXPIRATION", 24),
		},
		FR24: FR24Config{
			BaseURL:        getEnv("FR24_API_BASE", "https://fr24api.flightradar24.com/api"),
			Token:          getEnv("FR24_API_TOKEN", ""),
			AuthScheme:     getEnv("FR24_AUTH_SCHEME", "bearer"),
			AcceptVersion:  getEnv("FR24_ACCEPT_VERSION", "v1"),
			SummaryPath:    getEnv("FR24_FLIGHT_SUMMARY_PATH", "/flight-summary"),
			SummaryVariant: getEnv("FR24_FLIGHT_SUMMARY_VARIANT", "full"),
			Timeout:        getEnvAsDuration("FR24_TIMEOUT", 15*time.Second),
		},
		Avinor: AvinorConfig{
			BaseURL: getEnv("AVINOR_API_BASE", "https://asrv.avinor.no/XmlFeed/v1.0"),
			Airport: getEnv("AVINOR_AIRPORT", "SVG"),
			Timeout: getEnvAsDuration("AVINOR_TIMEOUT", 15*time.Second),
		},
		Holidays: HolidaysConfig{
			BaseURL: getEnv("HOLIDAYS_API_BASE", "https://date.nager.at/api/v3"),
			Country: getEnv("HOLIDAYS_COUNTRY", "NO"),
			Timeout: getEnvAsDuration("HOLIDAYS_TIMEOUT", 15*time.Second),
		},
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
