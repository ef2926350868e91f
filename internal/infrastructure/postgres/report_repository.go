package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reportes sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

func (r *ReportRepo) Summary(ctx context.Context) (*repository.StockSummary, error) {
	var s repository.StockSummary
	err := r.q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM items),
			COALESCE((SELECT SUM(b.quantity * i.unit_value)
			          FROM balances b JOIN items i ON i.id = b.item_id), 0)`,
	).Scan(&s.ItemCount, &s.TotalValue)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	return &s, nil
}

// Valuation corre las dos consultas en una tx REPEATABLE READ de solo lectura, así un
// movimiento confirmado entre ambas no aparece como diferencia.
func (r *ReportRepo) Valuation(ctx context.Context, at *time.Time) ([]repository.ValuationLine, []repository.ValuationLine, error) {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin valuation: %w", mapBeginError(err))
	}
	defer func() { _ = tx.Rollback(context.Background()) }()
	if _, err := tx.Exec(ctx, `SET TRANSACTION ISOLATION LEVEL REPEATABLE READ, READ ONLY`); err != nil {
		return nil, nil, fmt.Errorf("valuation snapshot: %w", err)
	}

	snap := NewReportRepository(tx)
	ledger, err := snap.lines(ctx, `
		SELECT i.id, i.code, i.description, i.unit_measure, i.unit_value,
			COALESCE(SUM(CASE WHEN m.type = 'SAIDA' THEN -m.quantity ELSE m.quantity END), 0)::bigint
		FROM items i
		LEFT JOIN movements m ON m.item_id = i.id AND ($1::timestamptz IS NULL OR m.created_at <= $1)
		GROUP BY i.id
		ORDER BY i.code`, at)
	if err != nil {
		return nil, nil, err
	}
	balance, err := snap.lines(ctx, `
		SELECT i.id, i.code, i.description, i.unit_measure, i.unit_value,
			COALESCE(SUM(b.quantity), 0)::bigint
		FROM items i
		LEFT JOIN balances b ON b.item_id = i.id
		GROUP BY i.id
		ORDER BY i.code`)
	if err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit valuation: %w", err)
	}
	return ledger, balance, nil
}

func (r *ReportRepo) lines(ctx context.Context, query string, args ...any) ([]repository.ValuationLine, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("valuation: %w", err)
	}
	defer rows.Close()
	out := make([]repository.ValuationLine, 0)
	for rows.Next() {
		var l repository.ValuationLine
		if err := rows.Scan(&l.ItemID, &l.ItemCode, &l.Description, &l.UnitMeasure, &l.UnitValue, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan valuation: %w", err)
		}
		l.Value = l.UnitValue.Mul(decimal.NewFromInt(l.Quantity))
		out = append(out, l)
	}
	return out, rows.Err()
}
