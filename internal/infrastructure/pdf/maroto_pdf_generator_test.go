package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/infrastructure/pdf"
)

func TestGenerateValuationPDF(t *testing.T) {
	line := dto.ValuationLineResponse{
		ItemID: "1", ItemCode: "PAP-001", Description: "Papel A4", UnitMeasure: "RESMA",
		UnitValue: decimal.RequireFromString("25.50"), Quantity: 10, Value: decimal.RequireFromString("255"),
	}
	v := &dto.ValuationResponse{
		At:           time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Ledger:       dto.ValuationSection{Lines: []dto.ValuationLineResponse{line}, Total: line.Value},
		Balance:      dto.ValuationSection{Lines: []dto.ValuationLineResponse{line}, Total: line.Value},
		DriftChecked: true,
		Drift:        []dto.DriftLine{{ItemID: "1", ItemCode: "PAP-001", LedgerQty: 10, BalanceQty: 12}},
	}
	out, err := pdf.NewMarotoPDFGenerator("IFMT Cuiabá").GenerateValuationPDF(context.Background(), v)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateValuationPDF_Nil(t *testing.T) {
	_, err := pdf.NewMarotoPDFGenerator("").GenerateValuationPDF(context.Background(), nil)
	assert.Error(t, err)
}
