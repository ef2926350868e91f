package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

// SupplierRepository implementa repository.SupplierRepository en memoria.
type SupplierRepository struct {
	s *Store
}

var _ repository.SupplierRepository = (*SupplierRepository)(nil)

func (r *SupplierRepository) Create(_ context.Context, supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if supplier.ID == "" {
		supplier.ID = uuid.New().String()
	}
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepository) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sp, nil
}

func (r *SupplierRepository) Update(_ context.Context, supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	for itemID, it := range r.s.items {
		if it.SupplierID != nil && *it.SupplierID == id {
			it.SupplierID = nil
			r.s.items[itemID] = it
		}
	}
	delete(r.s.suppliers, id)
	return nil
}

func (r *SupplierRepository) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, sp := range r.s.suppliers {
		sp := sp
		out = append(out, &sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}
