package memory

import (
	"context"
	"sort"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

// MovementRepository implementa repository.MovementRepository en memoria (solo inserción).
type MovementRepository struct {
	s *Store
}

var _ repository.MovementRepository = (*MovementRepository)(nil)

func (r *MovementRepository) Create(_ context.Context, movement *entity.Movement) error {
	if movement.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *movement)
	return nil
}

func (r *MovementRepository) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			out := m
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MovementRepository) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := r.filter(filter)
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *MovementRepository) Count(_ context.Context, filter repository.MovementFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.filter(filter)), nil
}

// filter devuelve los movimientos que cumplen el filtro, más recientes primero.
// Se llama con mu tomado.
func (r *MovementRepository) filter(f repository.MovementFilter) []*entity.Movement {
	out := make([]*entity.Movement, 0)
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if f.ItemID != "" && m.ItemID != f.ItemID {
			continue
		}
		if f.LocationID != "" && m.LocationID != f.LocationID {
			continue
		}
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CreatedAt.After(*f.To) {
			continue
		}
		out = append(out, &m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
