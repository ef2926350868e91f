package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/pkg/logger"
)

func TestComponent_AgregaCampos(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Env: "production", Level: "debug", App: "almoxarifado"}, &buf)

	zl := l.Component("ledger")
	zl.Info().Str("item_id", "x").Msg("movimiento registrado")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "almoxarifado", line["app"])
	assert.Equal(t, "ledger", line["component"])
	assert.Equal(t, "movimiento registrado", line["message"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("desconocido"))
}
