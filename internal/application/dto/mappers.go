package dto

import (
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

// FromMovement convierte un movimiento a su salida.
func FromMovement(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		Type:          m.Type,
		ItemID:        m.ItemID,
		LocationID:    m.LocationID,
		UserID:        m.UserID,
		Quantity:      m.Quantity,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
	}
}

// FromMovements convierte una lista de movimientos; nunca devuelve nil.
func FromMovements(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}

// FromInventory convierte un ciclo de inventario a su salida.
func FromInventory(inv *entity.Inventory) InventoryResponse {
	return InventoryResponse{
		ID:               inv.ID,
		Date:             inv.Date,
		UserID:           inv.UserID,
		Note:             inv.Note,
		Status:           inv.Status,
		TargetLocationID: inv.TargetLocationID,
		ClosedAt:         inv.ClosedAt,
		ClosedBy:         inv.ClosedBy,
		CreatedAt:        inv.CreatedAt,
	}
}

// FromInventoryItems convierte los conteos de un ciclo.
func FromInventoryItems(list []*entity.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, 0, len(list))
	for _, ii := range list {
		out = append(out, InventoryItemResponse{ItemID: ii.ItemID, CountedQty: ii.CountedQty, UpdatedAt: ii.UpdatedAt})
	}
	return out
}

// FromLowStock convierte las entradas de stock bajo.
func FromLowStock(list []repository.LowStockEntry) []LowStockResponse {
	out := make([]LowStockResponse, 0, len(list))
	for _, e := range list {
		out = append(out, LowStockResponse{
			ItemID:       e.ItemID,
			ItemCode:     e.ItemCode,
			Description:  e.Description,
			LocationID:   e.LocationID,
			LocationName: e.LocationName,
			Quantity:     e.Quantity,
			MinimumLevel: e.MinimumLevel,
		})
	}
	return out
}
