package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type DBConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifeTime int // минут
}

func LoadDBConfig() (*DBConfig, error) {
	cfg := &DBConfig{
		Host:            getEnv("DB_HOST", "postgres"),
		User:            getEnv("DB_USER", "hotel"),
		Password:        getEnv("DB_PASSWORD", "hotel"),
		Name:            getEnv("DB_NAME", "hotel_db"),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
		Port:            getEnvInt("DB_PORT", 5432),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifeTime: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 30),
	}

	// минимальная валидация
	if cfg.Host == "" || cfg.User == "" || cfg.Name == "" {
		return nil, fmt.Errorf("invalid DB config: host/user/name must not be empty")
	}

	return cfg, nil
}

type HTTPConfig struct {
	Addr            string
	Env             string // dev | prod
	AllowOrigins    []string
	ShutdownTimeout time.Duration
}

func LoadHTTPConfig() *HTTPConfig {
	return &HTTPConfig{
		Addr:            getEnv("HTTP_ADDR", ":8080"),
		Env:             getEnv("APP_ENV", "dev"),
		AllowOrigins:    []string{getEnv("CORS_ALLOW_ORIGIN", "*")},
		ShutdownTimeout: time.Duration(getEnvInt("HTTP_SHUTDOWN_TIMEOUT_SEC", 10)) * time.Second,
	}
}

type AuthConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func LoadAuthConfig() (*AuthConfig, error) {
	cfg := &AuthConfig{
		AccessSecret:  getEnv("ACCESS_TOKEN_SECRET", ""),
		RefreshSecret: getEnv("REFRESH_TOKEN_SECRET", ""),
		AccessTTL:     time.Duration(getEnvInt("ACCESS_TOKEN_TTL_MIN", 15)) * time.Minute,
		RefreshTTL:    time.Duration(getEnvInt("REFRESH_TOKEN_TTL_MIN", 30*24*60)) * time.Minute,
	}

	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("invalid auth config: token secrets must not be empty")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
