package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StorageMemory = "memory"
	StorageMySQL  = "mysql"
)

// Config holds all configuration for the application
type Config struct {
	AppMode       string
	Port          string
	StorageDriver string
	SeedFixtures  bool
	BcryptCost    int
	Database      DatabaseConfig
	JWT           JWTConfig
	Cookie        CookieConfig
	OTP           OTPConfig
	RateLimit     RateLimitConfig
	PurgeSchedule string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret     string
	SessionTTL time.Duration
}

// CookieConfig holds session cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// OTPConfig holds signup OTP configuration
type OTPConfig struct {
	Digits      int
	TTL         time.Duration
	MaxAttempts int
	FixedCode   string
	ExposeCode  bool
}

// RateLimitConfig holds requests-per-minute limits per IP
type RateLimitConfig struct {
	General int
	Auth    int
}

// Load reads configuration from .env file and environment variables
func Load(logger *slog.Logger) (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found, using environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	logger.Info("configuration loaded", "mode", cfg.AppMode, "storage", cfg.StorageDriver)
	return cfg, nil
}

// FromEnv builds the config from the process environment only
func FromEnv() (*Config, error) {
	// trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	storage := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageMemory)))
	if storage != StorageMemory && storage != StorageMySQL {
		return nil, fmt.Errorf("invalid STORAGE_DRIVER: '%s' (must be 'memory' or 'mysql')", storage)
	}

	jwtCfg := loadJWTConfig(appMode)
	if appMode == "prod" && jwtCfg.Secret == defaultJWTSecret {
		return nil, fmt.Errorf("PROD_JWT_SECRET must be set in prod mode")
	}

	return &Config{
		AppMode:       appMode,
		Port:          getEnv("PORT", "3000"),
		StorageDriver: storage,
		SeedFixtures:  getBool("SEED_FIXTURES", appMode == "dev"),
		BcryptCost:    getInt("BCRYPT_COST", 12),
		Database:      loadDatabaseConfig(appMode),
		JWT:           jwtCfg,
		Cookie:        loadCookieConfig(appMode),
		OTP:           loadOTPConfig(appMode),
		RateLimit: RateLimitConfig{
			General: getInt("RATE_LIMIT_PER_MINUTE", 100),
			Auth:    getInt("AUTH_RATE_LIMIT_PER_MINUTE", 5),
		},
		PurgeSchedule: getEnv("PURGE_SCHEDULE", "@every 5m"),
	}, nil
}

// modePrefix returns the env prefix for mode-specific keys
func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "willeasy"),
	}
}

const defaultJWTSecret = "default_secret"

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := modePrefix(mode)

	return JWTConfig{
		Secret:     getEnv(prefix+"JWT_SECRET", defaultJWTSecret),
		SessionTTL: time.Duration(getInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := modePrefix(mode)

	return CookieConfig{
		Secure:   getBool(prefix+"COOKIE_SECURE", mode == "prod"),
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadOTPConfig loads OTP config; dev mode uses the fixed code 1234 and
// returns it in the signup response
func loadOTPConfig(mode string) OTPConfig {
	dev := mode == "dev"

	fixed := ""
	if dev {
		fixed = "1234"
	}

	return OTPConfig{
		Digits:      getInt("OTP_DIGITS", 6),
		TTL:         time.Duration(getInt("OTP_TTL_MINUTES", 5)) * time.Minute,
		MaxAttempts: getInt("OTP_MAX_ATTEMPTS", 5),
		FixedCode:   getEnv(modePrefix(mode)+"OTP_FIXED_CODE", fixed),
		ExposeCode:  getBool("OTP_EXPOSE_CODE", dev),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return b
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://willeasy.in"
	}
	return origins
}
