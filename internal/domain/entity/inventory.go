package entity

import "time"

// Estados del ciclo de inventario físico.
const (
	InventoryStatusOpen   = "ABERTO"
	InventoryStatusClosed = "ENCERRADO"
)

// Inventory es un ciclo de conteo físico. Abierto → (conteos) → Encerrado; no se reabre.
type Inventory struct {
	ID               string
	Date             time.Time
	UserID           string
	Note             string
	Status           string
	TargetLocationID *string
	ClosedAt         *time.Time
	ClosedBy         *string
	CreatedAt        time.Time
}

// IsOpen indica si el ciclo todavía acepta conteos y cierre.
func (i *Inventory) IsOpen() bool {
	return i.Status == InventoryStatusOpen
}

// InventoryItem es la cantidad contada de un Item dentro de un ciclo (única por ciclo).
// Un nuevo conteo sobrescribe el anterior.
type InventoryItem struct {
	InventoryID string
	ItemID      string
	CountedQty  int64
	UpdatedAt   time.Time
}

// SameCounts indica si current (item → cantidad) coincide exactamente con counts.
func SameCounts(current map[string]int64, counts []*InventoryItem) bool {
	if len(current) != len(counts) {
		return false
	}
	for _, c := range counts {
		if qty, ok := current[c.ItemID]; !ok || qty != c.CountedQty {
			return false
		}
	}
	return true
}
