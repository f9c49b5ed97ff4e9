package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-key-must-be-at-least-32-characters-long"

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Name: "carwash-cms-api", Env: "local", Port: 8080},
		Store:    StoreConfig{Driver: StoreDriverSQLite},
		Database: DatabaseConfig{Driver: StoreDriverSQLite, SQLitePath: "carwash.db"},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		Import:   ImportConfig{MaxConcurrency: 4, MaxUploadBytes: 10 << 20},
		JWT:      JWTConfig{Secret: testSecret, Expiry: time.Hour, RefreshExpiry: 24 * time.Hour},
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid sqlite", func(c *Config) {}, ""},
		{"valid redis store over sqlite", func(c *Config) { c.Store.Driver = StoreDriverRedis }, ""},
		{"redis without address", func(c *Config) {
			c.Store.Driver = StoreDriverRedis
			c.Redis.Addr = ""
		}, "Redis 주소"},
		{"store and database differ", func(c *Config) {
			c.Store.Driver = StoreDriverOracle
		}, "STORE_DRIVER와 DB_DRIVER"},
		{"unknown store", func(c *Config) { c.Store.Driver = "firestore" }, "지원하지 않는 STORE_DRIVER"},
		{"oracle without host", func(c *Config) {
			c.Store.Driver = StoreDriverOracle
			c.Database.Driver = StoreDriverOracle
		}, "데이터베이스 Host"},
		{"negative concurrency", func(c *Config) { c.Import.MaxConcurrency = -1 }, "IMPORT_MAX_CONCURRENCY"},
		{"short secret", func(c *Config) { c.JWT.Secret = "short" }, "32자 이상"},
		{"bad port", func(c *Config) { c.App.Port = 0 }, "포트"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", StoreDriverRedis)
	t.Setenv("DB_DRIVER", StoreDriverSQLite)
	t.Setenv("SQLITE_PATH", "/tmp/operators.db")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("IMPORT_MAX_CONCURRENCY", "8")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("REQUEST_TIMEOUT", "45s")

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, StoreDriverRedis, cfg.Store.Driver)
	assert.Equal(t, "/tmp/operators.db", cfg.Database.SQLitePath)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, 8, cfg.Import.MaxConcurrency)
	assert.Equal(t, int64(10<<20), cfg.Import.MaxUploadBytes)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Contains(t, cfg.CORS.AllowedMethods, "PATCH")
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "firestore")
	t.Setenv("JWT_SECRET", testSecret)

	_, err := Load("test")
	assert.Error(t, err)
}
