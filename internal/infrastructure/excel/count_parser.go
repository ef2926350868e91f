// Package excel lee planillas de conteo de inventario (.xlsx) con excelize.
package excel

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/inventory"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/pkg/textnorm"
)

// Encabezados aceptados, ya normalizados con textnorm.Fold.
var headerAliases = map[string]string{
	"codigo":             "code",
	"cod":                "code",
	"code":               "code",
	"item":               "code",
	"codigo do item":     "code",
	"quantidade":         "quantity",
	"qtde":               "quantity",
	"qtd":                "quantity",
	"quantity":           "quantity",
	"qty":                "quantity",
	"quantidade contada": "quantity",
	"contado":            "quantity",
}

// CountParser implementa inventory.CountSheetParser sobre la primera hoja del libro.
type CountParser struct{}

// NewCountParser construye el parser.
func NewCountParser() *CountParser {
	return &CountParser{}
}

var _ inventory.CountSheetParser = (*CountParser)(nil)

// Parse lee la primera hoja. La primera fila debe traer las columnas código y cantidad;
// las filas sin código se ignoran y las cantidades inválidas se devuelven como fallo de fila.
func (p *CountParser) Parse(reader io.Reader) ([]inventory.CountRow, []inventory.RowFailure, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("abrir planilla: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("la planilla no tiene hojas")
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("leer filas: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("la planilla está vacía")
	}

	colMap := mapColumns(rows[0])
	if _, ok := colMap["code"]; !ok {
		return nil, nil, fmt.Errorf("falta la columna obligatoria: código")
	}
	if _, ok := colMap["quantity"]; !ok {
		return nil, nil, fmt.Errorf("falta la columna obligatoria: quantidade")
	}

	result := make([]inventory.CountRow, 0, len(rows)-1)
	failures := make([]inventory.RowFailure, 0)
	for index := 1; index < len(rows); index++ {
		line := index + 1
		cells := rows[index]
		code := strings.TrimSpace(readCell(cells, colMap["code"]))
		if code == "" {
			continue
		}
		qty, err := parseQuantity(readCell(cells, colMap["quantity"]))
		if err != nil {
			failures = append(failures, inventory.RowFailure{Line: line, Code: code, Err: err})
			continue
		}
		result = append(result, inventory.CountRow{Line: line, Code: code, Quantity: qty})
	}
	return result, failures, nil
}

func mapColumns(header []string) map[string]int {
	mapped := make(map[string]int)
	for idx, col := range header {
		normalized := normalizeHeader(col)
		if normalized == "" {
			continue
		}
		canonical, ok := headerAliases[normalized]
		if !ok {
			continue
		}
		if _, exists := mapped[canonical]; !exists {
			mapped[canonical] = idx
		}
	}
	return mapped
}

func normalizeHeader(raw string) string {
	value := strings.TrimPrefix(strings.TrimSpace(raw), "\ufeff")
	value = strings.ReplaceAll(value, "_", " ")
	return textnorm.Fold(value)
}

func readCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseQuantity acepta enteros, también escritos como decimal sin fracción ("12", "12.0", "12,0").
func parseQuantity(raw string) (int64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("cantidad vacía")
	}
	asFloat, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("cantidad no numérica: %q", value)
	}
	if math.Mod(asFloat, 1) != 0 {
		return 0, fmt.Errorf("la cantidad debe ser entera: %q", value)
	}
	if asFloat < 0 {
		return 0, fmt.Errorf("la cantidad no puede ser negativa: %q", value)
	}
	return int64(asFloat), nil
}
