package config

import (
	"fmt"  // DSN formatting
	"time" // Durations for token and cache lifetimes

	"github.com/joho/godotenv"              // For loading .env files
	"github.com/kelseyhightower/envconfig" // For mapping environment variables onto the struct
)

// Config holds the application configuration
type Config struct {
	AppPort    string        `envconfig:"APP_PORT" default:"8080"`             // Application port
	DBUser     string        `envconfig:"DB_USER" default:"root"`              // Database user
	DBPassword string        `envconfig:"DB_PASSWORD"`                         // Database password
	DBHost     string        `envconfig:"DB_HOST" default:"127.0.0.1"`         // Database host
	DBPort     string        `envconfig:"DB_PORT" default:"3306"`              // Database port
	DBName     string        `envconfig:"DB_NAME" default:"catalog"`           // Database name
	JWTSecret  string        `envconfig:"JWT_SECRET" required:"true"`          // JWT secret key
	JWTTTL     time.Duration `envconfig:"JWT_TTL" default:"24h"`               // Lifetime of issued tokens
	RedisAddr  string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"` // Redis server address
	RedisPass  string        `envconfig:"REDIS_PASS"`                          // Redis password
	RedisDB    int           `envconfig:"REDIS_DB" default:"0"`                // Redis database number
	CacheTTL   time.Duration `envconfig:"CACHE_TTL" default:"60s"`             // Product listing cache lifetime
	IsProd     bool          `envconfig:"IS_PROD" default:"false"`             // Is production environment
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`            // Logrus level name
}

// LoadConfig loads configuration from the environment, reading .env first if present
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// DSN returns the MySQL data source name for GORM
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
