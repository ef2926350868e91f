package repository

import (
	"context"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
)

// LowStockEntry saldo por debajo del nivel mínimo de su ubicación.
type LowStockEntry struct {
	ItemID       string
	ItemCode     string
	Description  string
	LocationID   string
	LocationName string
	Quantity     int64
	MinimumLevel int64
}

// BalanceRepository define el puerto para los saldos por (item, ubicación).
type BalanceRepository interface {
	// Get devuelve el saldo actual sin bloquear; cantidad 0 si la fila no existe.
	Get(ctx context.Context, itemID, locationID string) (*entity.Balance, error)
	// GetForUpdate crea la fila con cantidad 0 si no existe y la bloquea en exclusiva
	// hasta el fin de la transacción (SELECT FOR UPDATE). Devuelve domain.ErrLockTimeout
	// si no obtiene el bloqueo a tiempo.
	GetForUpdate(ctx context.Context, itemID, locationID string) (*entity.Balance, error)
	Save(ctx context.Context, balance *entity.Balance) error
	SumByLocation(ctx context.Context, locationID string) (int64, error)
	ListByLocation(ctx context.Context, locationID string) ([]*entity.Balance, error)
	ListBelowMinimum(ctx context.Context) ([]LowStockEntry, error)
}
