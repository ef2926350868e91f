package memory

import (
	"context"
	"sort"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

// BalanceRepository implementa repository.BalanceRepository en memoria.
type BalanceRepository struct {
	s *Store
}

var _ repository.BalanceRepository = (*BalanceRepository)(nil)

func (r *BalanceRepository) Get(_ context.Context, itemID, locationID string) (*entity.Balance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.balances[balanceKey{itemID, locationID}]
	if !ok {
		return &entity.Balance{ItemID: itemID, LocationID: locationID}, nil
	}
	return &b, nil
}

// GetForUpdate crea la fila si no existe. El bloqueo lo da el TxRunner.
func (r *BalanceRepository) GetForUpdate(_ context.Context, itemID, locationID string) (*entity.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := balanceKey{itemID, locationID}
	b, ok := r.s.balances[k]
	if !ok {
		b = entity.Balance{ItemID: itemID, LocationID: locationID}
		r.s.balances[k] = b
	}
	return &b, nil
}

func (r *BalanceRepository) Save(_ context.Context, balance *entity.Balance) error {
	if balance.Quantity < 0 {
		return domain.ErrInsufficientBalance
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.balances[balanceKey{balance.ItemID, balance.LocationID}] = *balance
	return nil
}

func (r *BalanceRepository) SumByLocation(_ context.Context, locationID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var total int64
	for k, b := range r.s.balances {
		if k.locationID == locationID {
			total += b.Quantity
		}
	}
	return total, nil
}

func (r *BalanceRepository) ListByLocation(_ context.Context, locationID string) ([]*entity.Balance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Balance
	for k, b := range r.s.balances {
		if k.locationID == locationID {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

func (r *BalanceRepository) ListBelowMinimum(_ context.Context) ([]repository.LowStockEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []repository.LowStockEntry
	for k, b := range r.s.balances {
		loc, ok := r.s.locations[k.locationID]
		if !ok || b.Quantity >= loc.MinimumLevel {
			continue
		}
		it := r.s.items[k.itemID]
		out = append(out, repository.LowStockEntry{
			ItemID:       k.itemID,
			ItemCode:     it.Code,
			Description:  it.Description,
			LocationID:   k.locationID,
			LocationName: loc.Name,
			Quantity:     b.Quantity,
			MinimumLevel: loc.MinimumLevel,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LocationName != out[j].LocationName {
			return out[i].LocationName < out[j].LocationName
		}
		return out[i].Description < out[j].Description
	})
	return out, nil
}
