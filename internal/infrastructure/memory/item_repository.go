package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/pkg/textnorm"
)

// ItemRepository implementa repository.ItemRepository en memoria.
type ItemRepository struct {
	s *Store
}

var _ repository.ItemRepository = (*ItemRepository)(nil)

func (r *ItemRepository) Create(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	for _, it := range r.s.items {
		if it.Code == item.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r *ItemRepository) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *ItemRepository) GetByCode(_ context.Context, code string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, it := range r.s.items {
		if it.Code == code {
			out := it
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ItemRepository) Update(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, it := range r.s.items {
		if id != item.ID && it.Code == item.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r *ItemRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range r.s.movements {
		if m.ItemID == id {
			return domain.ErrConflict
		}
	}
	for k := range r.s.counts {
		if k.itemID == id {
			return domain.ErrConflict
		}
	}
	for k := range r.s.balances {
		if k.itemID == id {
			delete(r.s.balances, k)
		}
	}
	delete(r.s.items, id)
	return nil
}

func (r *ItemRepository) Search(_ context.Context, filter repository.ItemFilter) ([]repository.ItemWithTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := textnorm.Fold(filter.Query)
	totals := make(map[string]int64)
	for k, b := range r.s.balances {
		totals[k.itemID] += b.Quantity
	}
	var out []repository.ItemWithTotal
	for _, it := range r.s.items {
		if filter.SupplierID != "" && (it.SupplierID == nil || *it.SupplierID != filter.SupplierID) {
			continue
		}
		if q != "" && !textnorm.Contains(it.Code+" "+it.Description+" "+it.UnitMeasure, q) {
			continue
		}
		item := it
		out = append(out, repository.ItemWithTotal{Item: &item, TotalQuantity: totals[it.ID]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Item.Description != out[j].Item.Description {
			return out[i].Item.Description < out[j].Item.Description
		}
		return out[i].Item.Code < out[j].Item.Code
	})
	return paginate(out, filter.Limit, filter.Offset), nil
}

// paginate aplica offset/limit; limit <= 0 devuelve todo desde offset.
func paginate[T any](in []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(in) {
		return []T{}
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
