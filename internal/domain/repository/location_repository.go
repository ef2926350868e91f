package repository

import (
	"context"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para ubicaciones de stock.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	List(ctx context.Context) ([]*entity.Location, error)
	// Update modifica nombre y nivel mínimo; nunca CurrentTotal.
	Update(ctx context.Context, location *entity.Location) error
	// LockForUpdate bloquea la fila de la ubicación hasta el fin de la transacción.
	// Se toma siempre después del bloqueo del saldo (orden fijo saldo → ubicación).
	LockForUpdate(ctx context.Context, id string) (*entity.Location, error)
	// UpdateCurrentTotal escribe el total derivado. Solo lo usa el sincronizador,
	// dentro de la transacción que cambió el saldo.
	UpdateCurrentTotal(ctx context.Context, locationID string, total int64) error
}
