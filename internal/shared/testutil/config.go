package testutil

import (
	"time"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/config"
)

// NewTestConfig creates a test configuration
// This removes the need for environment variables during testing
func NewTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "carwash-cms-api-test",
			Env:  "test",
			Port: 8080,
		},
		Store: config.StoreConfig{
			Driver: config.StoreDriverSQLite,
		},
		Database: config.DatabaseConfig{
			Driver:          config.StoreDriverSQLite,
			SQLitePath:      ":memory:",
			Host:            "localhost",
			Port:            1521,
			Service:         "test",
			User:            "test",
			Password:        "test",
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 10 * time.Minute,
			IsAutoMigrate:   true,
		},
		Redis: config.RedisConfig{
			Addr: "localhost:6379",
		},
		Import: config.ImportConfig{
			MaxConcurrency: 0,
			MaxUploadBytes: 10 << 20,
		},
		JWT: config.JWTConfig{
			Secret:        "test-jwt-secret-key-must-be-at-least-32-characters-long",
			Expiry:        24 * time.Hour,
			RefreshExpiry: 168 * time.Hour,
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           86400,
		},
		Server: config.ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			GracefulTimeout: 30 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
	}
}
