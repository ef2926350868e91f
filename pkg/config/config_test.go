package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DefaultCentralLocationID, cfg.Almox.CentralLocationID)
	assert.Equal(t, 5*time.Second, cfg.Almox.LockTimeout())
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 2, cfg.DB.MinConns)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("ALMOX_LOCK_TIMEOUT_MS", "750")
	t.Setenv("ALMOX_CENTRAL_LOCATION_ID", "7f1c2a9e-4b1d-4c55-9d1e-2b6f0a3c8e11")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.Almox.LockTimeout())
	assert.Equal(t, "7f1c2a9e-4b1d-4c55-9d1e-2b6f0a3c8e11", cfg.Almox.CentralLocationID)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestValidate_RechazaConfiguracionInsegura(t *testing.T) {
	cfg := config.Config{
		App:   config.AppConfig{Env: "production"},
		JWT:   config.JWTConfig{Expiration: 60},
		HTTP:  config.HTTPConfig{Port: 8080},
		Almox: config.AlmoxConfig{CentralLocationID: "deposito", LockTimeoutMS: 0},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "ALMOX_LOCK_TIMEOUT_MS")
	assert.Contains(t, err.Error(), "ALMOX_CENTRAL_LOCATION_ID")
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "almox", Password: "p@ss:word", DBName: "almox", SSLMode: "disable"}
	assert.Equal(t, "postgres://almox:p%40ss%3Aword@db:5432/almox?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
