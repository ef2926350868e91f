package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento.
const (
	MovementTypeEntry      = "ENTRADA" // entrada
	MovementTypeExit       = "SAIDA"   // salida
	MovementTypeAdjustment = "AJUSTE"  // ajuste (siempre suma)
)

// MaxMovementNoteLength límite de la observación libre de un movimiento.
const MaxMovementNoteLength = 100

// IsValidMovementType indica si t es uno de los tipos soportados.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntry, MovementTypeExit, MovementTypeAdjustment:
		return true
	}
	return false
}

// Movement es un registro de auditoría inmutable. Quantity siempre es positiva;
// el sentido lo da Type.
type Movement struct {
	ID            string
	Type          string
	ItemID        string
	LocationID    string
	UserID        string
	Quantity      int64
	BalanceBefore int64
	BalanceAfter  int64
	Note          string
	CreatedAt     time.Time
}

// SignedQuantity devuelve la cantidad con signo (negativa para salidas).
func (m *Movement) SignedQuantity() int64 {
	if m.Type == MovementTypeExit {
		return -m.Quantity
	}
	return m.Quantity
}

// Value es el valor movimentado: cantidad × valor unitario, negativo en salidas.
// Solo para reportes.
func (m *Movement) Value(unitValue decimal.Decimal) decimal.Decimal {
	return unitValue.Mul(decimal.NewFromInt(m.SignedQuantity()))
}
