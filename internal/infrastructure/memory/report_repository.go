package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

// ReportRepository implementa repository.ReportRepository en memoria.
type ReportRepository struct {
	s *Store
}

var _ repository.ReportRepository = (*ReportRepository)(nil)

func (r *ReportRepository) Summary(_ context.Context) (*repository.StockSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	total := decimal.Zero
	for k, b := range r.s.balances {
		if it, ok := r.s.items[k.itemID]; ok {
			total = total.Add(it.StockValue(b.Quantity))
		}
	}
	return &repository.StockSummary{ItemCount: len(r.s.items), TotalValue: total}, nil
}

// Valuation toma el turno de transacción para no ver un movimiento a medio aplicar.
func (r *ReportRepository) Valuation(ctx context.Context, at *time.Time) ([]repository.ValuationLine, []repository.ValuationLine, error) {
	if err := r.s.acquire(ctx); err != nil {
		return nil, nil, err
	}
	defer func() { <-r.s.txSem }()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	fromLedger := make(map[string]int64)
	for _, m := range r.s.movements {
		if at != nil && m.CreatedAt.After(*at) {
			continue
		}
		fromLedger[m.ItemID] += m.SignedQuantity()
	}
	fromBalances := make(map[string]int64)
	for k, b := range r.s.balances {
		fromBalances[k.itemID] += b.Quantity
	}
	return r.lines(fromLedger), r.lines(fromBalances), nil
}

// lines arma una línea por artículo (también con cantidad 0), ordenada por código. Se llama con mu tomado.
func (r *ReportRepository) lines(qty map[string]int64) []repository.ValuationLine {
	out := make([]repository.ValuationLine, 0, len(r.s.items))
	for id, it := range r.s.items {
		it := it
		out = append(out, repository.ValuationLine{
			ItemID:      id,
			ItemCode:    it.Code,
			Description: it.Description,
			UnitMeasure: it.UnitMeasure,
			UnitValue:   it.UnitValue,
			Quantity:    qty[id],
			Value:       it.StockValue(qty[id]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemCode < out[j].ItemCode })
	return out
}
