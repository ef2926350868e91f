package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del almoxarifado (SKU). Nunca se borra mientras
// existan movimientos que lo referencien.
type Item struct {
	ID          string
	Code        string // código único
	Description string
	UnitMeasure string
	UnitValue   decimal.Decimal // valor unitario, >= 0
	SupplierID  *string
	MinStock    int64
	MaxStock    int64 // 0 = sin máximo configurado
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockValue devuelve el valor de qty unidades al valor unitario actual.
func (i *Item) StockValue(qty int64) decimal.Decimal {
	return i.UnitValue.Mul(decimal.NewFromInt(qty))
}
