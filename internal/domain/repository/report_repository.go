package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockSummary totales generales del almoxarifado.
type StockSummary struct {
	ItemCount  int
	TotalValue decimal.Decimal // Σ saldo × valor unitario
}

// ValuationLine cantidad y valor de un artículo según una de las dos fuentes.
type ValuationLine struct {
	ItemID      string
	ItemCode    string
	Description string
	UnitMeasure string
	UnitValue   decimal.Decimal
	Quantity    int64
	Value       decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes.
type ReportRepository interface {
	Summary(ctx context.Context) (*StockSummary, error)

	// Valuation lee desde una misma instantánea la valoración reconstruida del historial
	// (ENTRADA/AJUSTE +, SAIDA −) y la de los saldos actuales. Con at nil el historial se
	// suma completo; si no, solo los movimientos hasta at.
	Valuation(ctx context.Context, at *time.Time) (ledger, balance []ValuationLine, err error)
}
