package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseCatalog_DecodificaLatin1(t *testing.T) {
	src := "codigo;descricao;unidade;valor\nPAP-001;Papel sulfite A4;resma;25,50\nCAN-002;Caneta esferográfica;un;1.234,56\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	rows, failures := parseCatalog(bytes.NewBufferString(latin1), false)
	assert.Empty(t, failures)
	require.Len(t, rows, 2)
	assert.Equal(t, "PAP-001", rows[0].Code)
	assert.Equal(t, "RESMA", rows[0].UnitMeasure)
	assert.Equal(t, "25.5", rows[0].UnitValue.String())
	assert.Equal(t, "Caneta esferográfica", rows[1].Description)
	assert.Equal(t, "1234.56", rows[1].UnitValue.String())
}

func TestParseCatalog_FilasInvalidasNoAbortan(t *testing.T) {
	src := "A-1;Grampo;cx;3.10\nB-2;Clipes;cx\nC-3;Cola;un;barato\n\nD-4;Fita;un;R$ 7,00\n"
	rows, failures := parseCatalog(strings.NewReader(src), true)
	require.Len(t, rows, 2)
	assert.Equal(t, "A-1", rows[0].Code)
	assert.Equal(t, "3.1", rows[0].UnitValue.String())
	assert.Equal(t, "D-4", rows[1].Code)
	assert.Equal(t, "7", rows[1].UnitValue.String())
	assert.Len(t, failures, 2)
}
