package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `id, name, current_total, minimum_level, created_at, updated_at`

// LocationRepo implementación de LocationRepository sobre PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `
		INSERT INTO locations (id, name, current_total, minimum_level, created_at, updated_at)
		VALUES ($1, $2, 0, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, l.ID, l.Name, l.MinimumLevel, l.CreatedAt, l.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	return r.getOne(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
}

// LockForUpdate toma el bloqueo de fila de la ubicación (SELECT FOR UPDATE).
func (r *LocationRepo) LockForUpdate(ctx context.Context, id string) (*entity.Location, error) {
	l, err := r.getOne(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1 FOR UPDATE`, id)
	return l, mapLockError(err)
}

func (r *LocationRepo) getOne(ctx context.Context, query, id string) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Name, &l.CurrentTotal, &l.MinimumLevel, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

func (r *LocationRepo) List(ctx context.Context) ([]*entity.Location, error) {
	rows, err := r.q.Query(ctx, `SELECT `+locationColumns+` FROM locations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Location, 0)
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.CurrentTotal, &l.MinimumLevel, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// Update modifica nombre y mínimo; current_total queda fuera de esta ruta.
func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	query := `UPDATE locations SET name = $2, minimum_level = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, l.ID, l.Name, l.MinimumLevel, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LocationRepo) UpdateCurrentTotal(ctx context.Context, locationID string, total int64) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE locations SET current_total = $2, updated_at = now() WHERE id = $1`, locationID, total)
	if err != nil {
		return fmt.Errorf("update location total: %w", mapLockError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
