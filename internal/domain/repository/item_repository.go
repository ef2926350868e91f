package repository

import (
	"context"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
)

// ItemFilter criterios de búsqueda de artículos.
// Query se compara contra el código, la descripción y la unidad (sin acentos ni mayúsculas).
type ItemFilter struct {
	Query      string
	SupplierID string
	Limit      int
	Offset     int
}

// ItemWithTotal artículo con la suma de sus saldos en todas las ubicaciones.
type ItemWithTotal struct {
	Item          *entity.Item
	TotalQuantity int64
}

// ItemRepository define el puerto de persistencia para Item (DIP).
// GetByID y GetByCode devuelven (nil, nil) si no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetByCode(ctx context.Context, code string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	// Delete falla con domain.ErrConflict mientras existan movimientos o conteos que lo referencien.
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter ItemFilter) ([]ItemWithTotal, error)
}
