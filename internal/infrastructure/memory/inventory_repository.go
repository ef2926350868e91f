package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

// InventoryRepository implementa repository.InventoryRepository en memoria.
type InventoryRepository struct {
	s *Store
}

var _ repository.InventoryRepository = (*InventoryRepository)(nil)

func (r *InventoryRepository) Create(_ context.Context, inventory *entity.Inventory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if inventory.ID == "" {
		inventory.ID = uuid.New().String()
	}
	r.s.inventories[inventory.ID] = *inventory
	return nil
}

func (r *InventoryRepository) GetByID(_ context.Context, id string) (*entity.Inventory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.inventories[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *InventoryRepository) List(_ context.Context, limit, offset int) ([]*entity.Inventory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Inventory, 0, len(r.s.inventories))
	for _, inv := range r.s.inventories {
		inv := inv
		out = append(out, &inv)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, limit, offset), nil
}

func (r *InventoryRepository) UpsertItem(_ context.Context, item *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.inventories[item.InventoryID]
	if !ok {
		return domain.ErrNotFound
	}
	if !inv.IsOpen() {
		return domain.ErrInventoryClosed
	}
	r.s.counts[countKey{item.InventoryID, item.ItemID}] = *item
	return nil
}

func (r *InventoryRepository) ListItems(_ context.Context, inventoryID string) ([]*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.InventoryItem
	for k, c := range r.s.counts {
		if k.inventoryID == inventoryID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

func (r *InventoryRepository) MarkClosed(_ context.Context, inventoryID, locationID, userID string, at time.Time, reconciled []*entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.inventories[inventoryID]
	if !ok {
		return domain.ErrNotFound
	}
	if !inv.IsOpen() {
		return domain.ErrInventoryClosed
	}
	current := make(map[string]int64)
	for k, c := range r.s.counts {
		if k.inventoryID == inventoryID {
			current[k.itemID] = c.CountedQty
		}
	}
	if !entity.SameCounts(current, reconciled) {
		return domain.ErrCountsChanged
	}
	inv.Status = entity.InventoryStatusClosed
	inv.TargetLocationID = &locationID
	inv.ClosedBy = &userID
	inv.ClosedAt = &at
	r.s.inventories[inventoryID] = inv
	return nil
}
