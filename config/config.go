package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/restaurant-management/database"
	"github.com/yeremiapane/restaurant-management/models"
	"github.com/yeremiapane/restaurant-management/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DBDriverMySQL  = "mysql"
	DBDriverSQLite = "sqlite"
)

type Config struct {
	Port    string
	GinMode string

	Store database.StoreConfig

	DBDriver string
	DBDSN    string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	RedisAddr string

	CORSOrigin     string
	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel string
}

func DefaultConfig() Config {
	return Config{
		Port:    "8080",
		GinMode: "debug",
		Store: database.StoreConfig{
			Driver: database.DriverMongo,
		},
		DBDriver:        DBDriverSQLite,
		DBDSN:           "restaurant.db",
		AccessTokenTTL:  24 * time.Hour,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		RateLimitRPS:    50,
		RateLimitBurst:  100,
		LogLevel:        "info",
	}
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables on top of DefaultConfig.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	setString(&cfg.Port, "PORT")
	setString(&cfg.GinMode, "GIN_MODE")
	setString(&cfg.Store.Driver, "STORE_DRIVER")
	setString(&cfg.Store.Host, "MONGODB_HOST")
	setString(&cfg.Store.DBName, "MONGODB_DB_NAME")
	setString(&cfg.DBDriver, "DB_DRIVER")
	setString(&cfg.DBDSN, "DB_DSN")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.RedisAddr, "REDIS_ADDR")
	setString(&cfg.CORSOrigin, "CORS_ORIGIN")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	var err error
	if cfg.AccessTokenTTL, err = durationEnv("ACCESS_TOKEN_TTL", cfg.AccessTokenTTL); err != nil {
		return Config{}, err
	}
	if cfg.RefreshTokenTTL, err = durationEnv("REFRESH_TOKEN_TTL", cfg.RefreshTokenTTL); err != nil {
		return Config{}, err
	}
	if raw := os.Getenv("RATE_LIMIT_RPS"); raw != "" {
		if cfg.RateLimitRPS, err = strconv.ParseFloat(raw, 64); err != nil {
			return Config{}, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
	}
	if raw := os.Getenv("RATE_LIMIT_BURST"); raw != "" {
		if cfg.RateLimitBurst, err = strconv.Atoi(raw); err != nil {
			return Config{}, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
		}
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case database.DriverMongo:
		if c.Store.Host == "" {
			return errors.New("MONGODB_HOST is required")
		}
		if c.Store.DBName == "" {
			return errors.New("MONGODB_DB_NAME is required")
		}
	case database.DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	switch c.DBDriver {
	case DBDriverMySQL, DBDriverSQLite:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("DB_DSN is required")
	}
	if c.GinMode == gin.ReleaseMode && c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required in release mode")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("rate limit values must be positive")
	}
	return nil
}

// InitDB opens the user database and migrates the user table.
func InitDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DBDriverMySQL:
		dialector = mysql.Open(cfg.DBDSN)
	case DBDriverSQLite:
		dialector = sqlite.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return nil, fmt.Errorf("migrate users: %w", err)
	}

	utils.InfoLogger.WithField("driver", cfg.DBDriver).Info("User database ready")
	return db, nil
}

// InitRedis connects to REDIS_ADDR. It returns nil, nil when no address is configured.
func InitRedis(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	utils.InfoLogger.WithField("addr", cfg.RedisAddr).Info("Connected to Redis")
	return client, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
