package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockResponse saldo por debajo del mínimo de su ubicación.
type LowStockResponse struct {
	ItemID       string `json:"item_id"`
	ItemCode     string `json:"item_code"`
	Description  string `json:"description"`
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	Quantity     int64  `json:"quantity"`
	MinimumLevel int64  `json:"minimum_level"`
}

// DashboardResponse resumen del almoxarifado.
type DashboardResponse struct {
	ItemCount       int                `json:"item_count"`
	TotalValue      decimal.Decimal    `json:"total_value"`
	Critical        []LowStockResponse `json:"critical"`
	RecentMovements []MovementResponse `json:"recent_movements"`
}

// ValuationLineResponse cantidad y valor de un artículo.
type ValuationLineResponse struct {
	ItemID      string          `json:"item_id"`
	ItemCode    string          `json:"item_code"`
	Description string          `json:"description"`
	UnitMeasure string          `json:"unit_measure"`
	UnitValue   decimal.Decimal `json:"unit_value"`
	Quantity    int64           `json:"quantity"`
	Value       decimal.Decimal `json:"value"`
}

// ValuationSection un modelo de valoración con su total.
type ValuationSection struct {
	Lines []ValuationLineResponse `json:"lines"`
	Total decimal.Decimal         `json:"total"`
}

// DriftLine artículo cuyo saldo no coincide con la suma de su historial.
type DriftLine struct {
	ItemID     string `json:"item_id"`
	ItemCode   string `json:"item_code"`
	LedgerQty  int64  `json:"ledger_qty"`
	BalanceQty int64  `json:"balance_qty"`
}

// ValuationResponse valoración derivada del historial y de los saldos, lado a lado.
// Drift solo se calcula cuando At no es anterior al momento de la consulta.
type ValuationResponse struct {
	At           time.Time        `json:"at"`
	Ledger       ValuationSection `json:"ledger"`
	Balance      ValuationSection `json:"balance"`
	DriftChecked bool             `json:"drift_checked"`
	Drift        []DriftLine      `json:"drift"`
}
