package config

import (
	"fmt"
	"strings"
	"time"

	"gym_backoffice/pkg/utils"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	Port     string
	LogLevel string

	DBDriver string
	DBDSN    string

	JWTSecret string
	JWTTTL    time.Duration

	AdminUsername string
	AdminPassword string

	CORSAllowedOrigins []string
	LoginRateLimit     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	BackupDir      string
	BackupSchedule string
}

// Load reads .env (when present) and then the process environment.
func Load() Config {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := Config{
		Port:           utils.Getenv("PORT", "8080"),
		LogLevel:       utils.Getenv("LOG_LEVEL", "info"),
		DBDriver:       strings.ToLower(utils.Getenv("DB_DRIVER", "sqlite")),
		JWTSecret:      utils.Getenv("JWT_SECRET", "change-me-in-production"),
		JWTTTL:         utils.GetenvDuration("JWT_TTL", 12*time.Hour),
		AdminUsername:  utils.Getenv("ADMIN_USERNAME", "admin"),
		AdminPassword:  utils.Getenv("ADMIN_PASSWORD", "admin123"),
		LoginRateLimit: utils.Getenv("LOGIN_RATE_LIMIT", "10-M"),
		RedisAddr:      utils.Getenv("REDIS_ADDR", ""),
		RedisPassword:  utils.Getenv("REDIS_PASSWORD", ""),
		RedisDB:        utils.GetenvInt("REDIS_DB", 0),
		BackupDir:      utils.Getenv("BACKUP_DIR", "backups"),
		BackupSchedule: utils.Getenv("BACKUP_SCHEDULE", "@daily"),
	}

	origins := utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	cfg.DBDSN = utils.Getenv("DB_DSN", "")
	if cfg.DBDSN == "" {
		cfg.DBDSN = defaultDSN(cfg.DBDriver)
	}

	return cfg
}

func defaultDSN(driver string) string {
	if driver == "postgres" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			utils.Getenv("DB_HOST", "localhost"),
			utils.Getenv("DB_PORT", "5432"),
			utils.Getenv("DB_USER", "gym_user"),
			utils.Getenv("DB_PASSWORD", "gym_password"),
			utils.Getenv("DB_NAME", "gym_backoffice"),
			utils.Getenv("DB_SSLMODE", "disable"),
		)
	}
	return "file:gym.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}
