package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "strategy_vault", cfg.Database.DBName)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)

	assert.Equal(t, "coinbase-facilitator", cfg.Payment.Scheme)
	assert.Equal(t, "base", cfg.Payment.Network)
	assert.Equal(t, "USDC", cfg.Payment.Asset)
	assert.Equal(t, 300, cfg.Payment.MaxTimeoutSeconds)
	assert.Equal(t, "0.01", cfg.Payment.Prices["/api/v1/strategies/passive-yield/full"])
	assert.Equal(t, "/api/v1/strategies/", cfg.Payment.ProtectedPrefix)
	assert.Equal(t, 24*time.Hour, cfg.Payment.ReplayTTL)

	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiry)
	assert.Equal(t, "strategy-vault", cfg.Auth.JWTIssuer)

	assert.Equal(t, "base-mainnet", cfg.Wallet.Network)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	content := []byte(`
server:
  host: "127.0.0.1"
  port: 9090
  mode: "release"
payment:
  scheme: "coinbase-facilitator"
  network: "base-sepolia"
  pay_to: "0xABC0000000000000000000000000000000000001"
  max_timeout_seconds: 120
  replay_ttl: "1h"
  prices:
    "/api/v1/strategies/passive-yield/full": "0.05"
auth:
  jwt_secret: "test-secret"
  jwt_expiry: "12h"
  operator_username: "ops"
log:
  level: "debug"
  pretty: true
`)
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "base-sepolia", cfg.Payment.Network)
	assert.Equal(t, "0xABC0000000000000000000000000000000000001", cfg.Payment.PayTo)
	assert.Equal(t, 120, cfg.Payment.MaxTimeoutSeconds)
	assert.Equal(t, time.Hour, cfg.Payment.ReplayTTL)
	assert.Equal(t, "0.05", cfg.Payment.Prices["/api/v1/strategies/passive-yield/full"])
	assert.Equal(t, 12*time.Hour, cfg.Auth.JWTExpiry)
	assert.Equal(t, "ops", cfg.Auth.OperatorUsername)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SV_PAYMENT_PAY_TO", "0xENV")
	t.Setenv("SV_SERVER_PORT", "4040")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0xENV", cfg.Payment.PayTo)
	assert.Equal(t, 4040, cfg.Server.Port)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p",
		DBName: "vault", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@db:5432/vault?sslmode=disable", d.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", r.Addr())
}
