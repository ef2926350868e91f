package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

// LocationRepository implementa repository.LocationRepository en memoria.
type LocationRepository struct {
	s *Store
}

var _ repository.LocationRepository = (*LocationRepository)(nil)

func (r *LocationRepository) Create(_ context.Context, location *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	for _, l := range r.s.locations {
		if l.Name == location.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.locations[location.ID] = *location
	return nil
}

func (r *LocationRepository) GetByID(_ context.Context, id string) (*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *LocationRepository) List(_ context.Context) ([]*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Location, 0, len(r.s.locations))
	for _, l := range r.s.locations {
		l := l
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *LocationRepository) Update(_ context.Context, location *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.locations[location.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, l := range r.s.locations {
		if id != location.ID && l.Name == location.Name {
			return domain.ErrDuplicate
		}
	}
	cur.Name = location.Name
	cur.MinimumLevel = location.MinimumLevel
	cur.UpdatedAt = location.UpdatedAt
	r.s.locations[location.ID] = cur
	return nil
}

// LockForUpdate no bloquea nada: el TxRunner en memoria ya serializa las transacciones.
func (r *LocationRepository) LockForUpdate(ctx context.Context, id string) (*entity.Location, error) {
	return r.GetByID(ctx, id)
}

func (r *LocationRepository) UpdateCurrentTotal(_ context.Context, locationID string, total int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.locations[locationID]
	if !ok {
		return domain.ErrNotFound
	}
	l.CurrentTotal = total
	r.s.locations[locationID] = l
	return nil
}

// SetCurrentTotal escribe el total sin pasar por el sincronizador. Solo para pruebas de reparación.
func (r *LocationRepository) SetCurrentTotal(locationID string, total int64) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.locations[locationID]; ok {
		l.CurrentTotal = total
		r.s.locations[locationID] = l
	}
}
