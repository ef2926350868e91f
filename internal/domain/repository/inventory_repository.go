package repository

import (
	"context"
	"time"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para ciclos de inventario y sus conteos.
type InventoryRepository interface {
	Create(ctx context.Context, inventory *entity.Inventory) error
	GetByID(ctx context.Context, id string) (*entity.Inventory, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Inventory, error)
	// UpsertItem inserta o sobrescribe el conteo de (inventario, item). La verificación de que
	// el ciclo sigue ABERTO y la escritura son un solo paso: devuelve domain.ErrInventoryClosed
	// si el ciclo ya está cerrado.
	UpsertItem(ctx context.Context, item *entity.InventoryItem) error
	ListItems(ctx context.Context, inventoryID string) ([]*entity.InventoryItem, error)
	// MarkClosed pasa el ciclo a ENCERRADO si sus conteos actuales son exactamente reconciled.
	// Devuelve domain.ErrInventoryClosed si ya no estaba abierto y domain.ErrCountsChanged si
	// hay conteos nuevos o modificados.
	MarkClosed(ctx context.Context, inventoryID, locationID, userID string, at time.Time, reconciled []*entity.InventoryItem) error
}
