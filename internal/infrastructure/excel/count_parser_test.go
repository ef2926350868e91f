package excel_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/infrastructure/excel"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := r
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestCountParser_LeeFilasValidas(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"Código", "Descrição", "Quantidade"},
		[]interface{}{"PAP-001", "Papel A4", 12},
		[]interface{}{"", "fila sin código", 3},
		[]interface{}{"CAN-002", "Caneta", "7"},
	)
	rows, failures, err := excel.NewCountParser().Parse(buf)
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, rows, 2)
	assert.Equal(t, "PAP-001", rows[0].Code)
	assert.Equal(t, int64(12), rows[0].Quantity)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "CAN-002", rows[1].Code)
	assert.Equal(t, int64(7), rows[1].Quantity)
	assert.Equal(t, 4, rows[1].Line)
}

func TestCountParser_CantidadInvalidaEsFalloDeFila(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"QTDE", "codigo"},
		[]interface{}{"2.5", "A-1"},
		[]interface{}{"-1", "B-2"},
		[]interface{}{"abc", "C-3"},
		[]interface{}{"4", "D-4"},
	)
	rows, failures, err := excel.NewCountParser().Parse(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "D-4", rows[0].Code)
	require.Len(t, failures, 3)
	assert.Equal(t, "A-1", failures[0].Code)
	assert.Equal(t, 2, failures[0].Line)
}

func TestCountParser_FaltaColumna(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"Código", "Descrição"},
		[]interface{}{"A-1", "x"},
	)
	_, _, err := excel.NewCountParser().Parse(buf)
	assert.Error(t, err)
}

func TestCountParser_ArchivoNoXLSX(t *testing.T) {
	_, _, err := excel.NewCountParser().Parse(strings.NewReader("codigo;quantidade\nA;1"))
	assert.Error(t, err)
}
