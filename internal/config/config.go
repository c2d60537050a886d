// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for our application
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Security  SecurityConfig
	Pricing   PricingConfig
	Surcharge SurchargeConfig
	Tracking  TrackingConfig
	Logging   LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
	CompanyName string
	CompanyCity string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	SessionTTL   time.Duration
}

// JWTConfig contains JWT token configuration
type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	BcryptCost         int
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
}

// PricingConfig contains the cart pricing rules.
// Amounts are whole currency units (rupees).
type PricingConfig struct {
	RestaurantFreeDeliveryAbove int64 // subtotal at which restaurant delivery is free
	RestaurantDeliveryFee       int64 // flat fee below the threshold
	ProductFreeDeliveryAbove    int64
	ProductDeliveryFee          int64
	PlatformFee                 int64 // restaurant orders only
	RestaurantBaseETA           int   // minutes
	ProductBaseETA              int   // minutes
}

// SurchargeConfig contains the demand/weather surcharge parameters
type SurchargeConfig struct {
	WeatherFeeMultiplier    float64
	HighDemandFeeMultiplier float64
	WeatherETABoost         int // minutes
	HighDemandETABoost      int
	TrafficETABoost         int
}

// TrackingConfig contains order auto-progression configuration
type TrackingConfig struct {
	AdvanceInterval time.Duration
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "TheQuick Backend"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
			CompanyName: getEnv("COMPANY_NAME", "TheQuick Deliveries Pvt Ltd"),
			CompanyCity: getEnv("COMPANY_CITY", "Nashik, Maharashtra"),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
			SessionTTL:   getEnvAsDuration("REDIS_SESSION_TTL", 24*time.Hour),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-in-production"),
			AccessTokenExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRE", 24*time.Hour),
			RefreshTokenExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRE", 7*24*time.Hour),
		},
		Security: SecurityConfig{
			BcryptCost:         getEnvAsInt("BCRYPT_COST", 10),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
		},
		Pricing: PricingConfig{
			RestaurantFreeDeliveryAbove: getEnvAsInt64("PRICING_RESTAURANT_FREE_DELIVERY_ABOVE", 300),
			RestaurantDeliveryFee:       getEnvAsInt64("PRICING_RESTAURANT_DELIVERY_FEE", 35),
			ProductFreeDeliveryAbove:    getEnvAsInt64("PRICING_PRODUCT_FREE_DELIVERY_ABOVE", 500),
			ProductDeliveryFee:          getEnvAsInt64("PRICING_PRODUCT_DELIVERY_FEE", 29),
			PlatformFee:                 getEnvAsInt64("PRICING_PLATFORM_FEE", 15),
			RestaurantBaseETA:           getEnvAsInt("PRICING_RESTAURANT_BASE_ETA", 35),
			ProductBaseETA:              getEnvAsInt("PRICING_PRODUCT_BASE_ETA", 15),
		},
		Surcharge: SurchargeConfig{
			WeatherFeeMultiplier:    getEnvAsFloat("SURCHARGE_WEATHER_FEE_MULTIPLIER", 1.2),
			HighDemandFeeMultiplier: getEnvAsFloat("SURCHARGE_HIGH_DEMAND_FEE_MULTIPLIER", 1.1),
			WeatherETABoost:         getEnvAsInt("SURCHARGE_WEATHER_ETA_BOOST", 5),
			HighDemandETABoost:      getEnvAsInt("SURCHARGE_HIGH_DEMAND_ETA_BOOST", 3),
			TrafficETABoost:         getEnvAsInt("SURCHARGE_TRAFFIC_ETA_BOOST", 5),
		},
		Tracking: TrackingConfig{
			AdvanceInterval: getEnvAsDuration("TRACKING_ADVANCE_INTERVAL", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate JWT secret
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	// Validate Redis configuration
	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	// Validate server port
	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	// Validate pricing rules
	if c.Pricing.RestaurantDeliveryFee < 0 || c.Pricing.ProductDeliveryFee < 0 {
		return fmt.Errorf("delivery fees cannot be negative")
	}
	if c.Pricing.PlatformFee < 0 {
		return fmt.Errorf("PRICING_PLATFORM_FEE cannot be negative")
	}

	// Validate surcharge multipliers
	if c.Surcharge.WeatherFeeMultiplier < 1 || c.Surcharge.HighDemandFeeMultiplier < 1 {
		return fmt.Errorf("surcharge multipliers must be at least 1.0")
	}

	// Validate tracking cadence
	if c.Tracking.AdvanceInterval <= 0 {
		return fmt.Errorf("TRACKING_ADVANCE_INTERVAL must be positive")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
