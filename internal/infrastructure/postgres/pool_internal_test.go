package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/pkg/config"
)

func TestNewPoolConfig_UsaCamposDeConfig(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db.almox.local", Port: 5433, User: "almox", Password: "s3cr#t",
		DBName: "almoxarifado", SSLMode: "disable", MaxConns: 8, MinConns: 2,
	}
	pc, err := newPoolConfig(cfg, "almoxarifado-api")
	require.NoError(t, err)
	assert.Equal(t, "db.almox.local", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "s3cr#t", pc.ConnConfig.Password)
	assert.Equal(t, "almoxarifado-api", pc.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.NotNil(t, pc.AfterConnect)
}

func TestNewPoolConfig_DatabaseURLConservaHostname(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL: "postgres://almox:x@pg.ifmt.edu.br:5432/almoxarifado?sslmode=disable",
		Host:        "ignorado",
		MinConns:    50,
	}
	pc, err := newPoolConfig(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "pg.ifmt.edu.br", pc.ConnConfig.Host)
	assert.Equal(t, int32(25), pc.MaxConns)
	assert.Equal(t, int32(25), pc.MinConns)
}

func TestNewPoolConfig_DSNInvalido(t *testing.T) {
	_, err := newPoolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"}, "")
	assert.Error(t, err)
}
