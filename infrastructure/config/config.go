package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion          string
	UsersTable         string
	EmoteReactionTable string

	// Ledger database configuration
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string

	// Lambda configuration
	IsLambda           bool
	LambdaFunctionName string

	// Store call deadline, aligned with the function invocation timeout
	StoreTimeout time.Duration

	// CORS configuration
	AllowOrigin string
	FrontendURL string

	// Logging
	LogLevel string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Feature flags
	EnableMetrics bool
	EnableTracing bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		AWSRegion:          getEnv("AWS_REGION", "us-west-2"),
		UsersTable:         getEnv("USERS_TABLE", "wordless-users"),
		EmoteReactionTable: getEnv("EMOTE_REACTION_TABLE", "wordless-emote-reactions"),

		DBHost:     getEnv("DB_HOST", "localhost:3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "wordlessdb"),

		IsLambda:           os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",
		LambdaFunctionName: getEnv("AWS_LAMBDA_FUNCTION_NAME", ""),

		StoreTimeout: time.Duration(getEnvInt("STORE_TIMEOUT_MS", 3000)) * time.Millisecond,

		AllowOrigin: getEnv("ALLOW_ORIGIN", "http://localhost:3000"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "wordless-backend"),

		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT_MS must be positive")
	}

	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
			return fmt.Errorf("DB_HOST, DB_USER and DB_NAME are required")
		}
		if c.UsersTable == "" || c.EmoteReactionTable == "" {
			return fmt.Errorf("USERS_TABLE and EMOTE_REACTION_TABLE are required")
		}
	}

	return nil
}

// DSN builds the MySQL data source name for the emote ledger
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.DBUser, c.DBPassword, c.DBHost, c.DBName)
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
