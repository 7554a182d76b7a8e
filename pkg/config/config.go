package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Mailjet    MailjetConfig
	Redis      RedisConfig
	Pagination PaginationConfig
	Payments   PaymentsConfig
}

type MailjetConfig struct {
	MailjetBaseUrl           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
}

type AppConfig struct {
	Name             string
	Version          string
	Environment      string
	AppDeploymentUrl string
	AllowOrigins     []string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type PaginationConfig struct {
	CursorTTL time.Duration
}

type PaymentsConfig struct {
	PreviewTTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	jwtTTL, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, errors.New("invalid jwt ttl")
	}

	cursorTTL, err := time.ParseDuration(getEnv("PAGINATION_CURSOR_TTL", "30m"))
	if err != nil {
		return nil, errors.New("invalid pagination cursor ttl")
	}

	previewTTL, err := time.ParseDuration(getEnv("PAYMENT_PREVIEW_TTL", "5m"))
	if err != nil {
		return nil, errors.New("invalid payment preview ttl")
	}

	cfg := &Config{
		App: AppConfig{
			Name:             getEnv("APP_NAME", "Wellness Centre API"),
			Version:          getEnv("APP_VERSION", "1.0.0"),
			Environment:      getEnv("APP_ENV", "development"),
			AppDeploymentUrl: getEnv("APP_DEPLOYMENT_URL", ""),
			AllowOrigins:     []string{getEnv("APP_ALLOW_ORIGIN", "http://localhost:3000")},
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "wellness_centre"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
			TTL:       jwtTTL,
		},
		Mailjet: MailjetConfig{
			MailjetBaseUrl:           getEnv("MAILJET_BASE_URL", ""),
			MailjetBasicAuthUsername: getEnv("MAILJET_BASIC_AUTH_USERNAME", ""),
			MailjetBasicAuthPassword: getEnv("MAILJET_BASIC_AUTH_PASSWORD", ""),
			MailjetSenderEmail:       getEnv("MAILJET_SENDER_EMAIL", ""),
			MailjetSenderName:        getEnv("MAILJET_SENDER_NAME", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Pagination: PaginationConfig{
			CursorTTL: cursorTTL,
		},
		Payments: PaymentsConfig{
			PreviewTTL: previewTTL,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.App.AppDeploymentUrl == "" {
		return nil, errors.New("missing app deployment url")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
