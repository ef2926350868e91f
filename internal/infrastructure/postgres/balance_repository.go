package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación de BalanceRepository sobre PostgreSQL (usable con pool o tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get obtiene el saldo actual; cantidad 0 si el par todavía no tiene fila.
func (r *BalanceRepo) Get(ctx context.Context, itemID, locationID string) (*entity.Balance, error) {
	query := `
		SELECT item_id, location_id, quantity, updated_at
		FROM balances WHERE item_id = $1 AND location_id = $2`
	b, err := scanBalance(r.q.QueryRow(ctx, query, itemID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Balance{ItemID: itemID, LocationID: locationID}, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return b, nil
}

// GetForUpdate crea la fila si falta y la bloquea (SELECT FOR UPDATE). Así el primer
// movimiento de un par también queda serializado.
func (r *BalanceRepo) GetForUpdate(ctx context.Context, itemID, locationID string) (*entity.Balance, error) {
	insert := `
		INSERT INTO balances (item_id, location_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (item_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, itemID, locationID); err != nil {
		return nil, fmt.Errorf("ensure balance: %w", mapLockError(err))
	}
	query := `
		SELECT item_id, location_id, quantity, updated_at
		FROM balances WHERE item_id = $1 AND location_id = $2
		FOR UPDATE`
	b, err := scanBalance(r.q.QueryRow(ctx, query, itemID, locationID))
	if err != nil {
		return nil, fmt.Errorf("get balance for update: %w", mapLockError(err))
	}
	return b, nil
}

// Save escribe la cantidad del saldo; el CHECK de la tabla rechaza negativos.
func (r *BalanceRepo) Save(ctx context.Context, b *entity.Balance) error {
	query := `
		INSERT INTO balances (item_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, b.ItemID, b.LocationID, b.Quantity); err != nil {
		return fmt.Errorf("save balance: %w", mapLockError(err))
	}
	return nil
}

func (r *BalanceRepo) SumByLocation(ctx context.Context, locationID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0)::bigint FROM balances WHERE location_id = $1`, locationID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum balances: %w", err)
	}
	return total, nil
}

func (r *BalanceRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.Balance, error) {
	rows, err := r.q.Query(ctx, `
		SELECT item_id, location_id, quantity, updated_at
		FROM balances WHERE location_id = $1 ORDER BY item_id`, locationID)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Balance, 0)
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListBelowMinimum saldos con cantidad menor al mínimo de su ubicación.
func (r *BalanceRepo) ListBelowMinimum(ctx context.Context) ([]repository.LowStockEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.code, i.description, l.id, l.name, b.quantity, l.minimum_level
		FROM balances b
		JOIN items i ON i.id = b.item_id
		JOIN locations l ON l.id = b.location_id
		WHERE b.quantity < l.minimum_level
		ORDER BY l.name, i.description`)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	out := make([]repository.LowStockEntry, 0)
	for rows.Next() {
		var e repository.LowStockEntry
		if err := rows.Scan(&e.ItemID, &e.ItemCode, &e.Description, &e.LocationID, &e.LocationName,
			&e.Quantity, &e.MinimumLevel); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanBalance(row pgx.Row) (*entity.Balance, error) {
	var b entity.Balance
	if err := row.Scan(&b.ItemID, &b.LocationID, &b.Quantity, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
