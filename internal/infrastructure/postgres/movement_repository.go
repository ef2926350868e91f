package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, type, item_id, location_id, user_id, quantity, balance_before, balance_after, note, created_at`

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx). Solo inserta:
// un trigger de la tabla rechaza UPDATE y DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Type, m.ItemID, m.LocationID, m.UserID, m.Quantity,
		m.BalanceBefore, m.BalanceAfter, m.Note, m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create movement: %w", mapLockError(err))
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List lista movimientos filtrados, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	where, args := movementWhere(filter)
	n := len(args)
	query := `SELECT ` + movementColumns + ` FROM movements` + where +
		` ORDER BY created_at DESC, id LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	args = append(args, limitArg(filter.Limit), max(filter.Offset, 0))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Count cuenta los movimientos que cumplen el filtro (ignora Limit y Offset).
func (r *MovementRepo) Count(ctx context.Context, filter repository.MovementFilter) (int, error) {
	where, args := movementWhere(filter)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM movements`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func movementWhere(f repository.MovementFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ItemID != "" {
		add("item_id = $%d", f.ItemID)
	}
	if f.LocationID != "" {
		add("location_id = $%d", f.LocationID)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	if err := row.Scan(
		&m.ID, &m.Type, &m.ItemID, &m.LocationID, &m.UserID, &m.Quantity,
		&m.BalanceBefore, &m.BalanceAfter, &m.Note, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}
