package entity

import "time"

// Location representa un lugar físico o lógico donde se guarda stock.
// CurrentTotal es un valor derivado: suma de los saldos de la ubicación,
// recalculado dentro de la misma transacción que modifica un saldo.
type Location struct {
	ID           string
	Name         string
	CurrentTotal int64
	MinimumLevel int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
