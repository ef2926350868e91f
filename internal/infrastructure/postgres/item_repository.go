package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/pkg/textnorm"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `i.id, i.code, i.description, i.unit_measure, i.unit_value, i.supplier_id,
	i.min_stock, i.max_stock, i.active, i.created_at, i.updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un artículo. Código repetido → domain.ErrDuplicate.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, code, description, unit_measure, unit_value, supplier_id,
			min_stock, max_stock, active, search_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Code, item.Description, item.UnitMeasure, item.UnitValue, item.SupplierID,
		item.MinStock, item.MaxStock, item.Active, itemSearchKey(item), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID; (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, "i.id = $1", id)
}

// GetByCode obtiene un artículo por código; (nil, nil) si no existe.
func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	return r.getOne(ctx, "i.code = $1", code)
}

func (r *ItemRepo) getOne(ctx context.Context, where string, arg any) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items i WHERE ` + where
	it, err := scanItem(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Update actualiza los datos del artículo y su clave de búsqueda.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET code = $2, description = $3, unit_measure = $4, unit_value = $5,
			supplier_id = $6, min_stock = $7, max_stock = $8, active = $9, search_key = $10,
			updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Code, item.Description, item.UnitMeasure, item.UnitValue, item.SupplierID,
		item.MinStock, item.MaxStock, item.Active, itemSearchKey(item), item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el artículo y sus saldos. Con movimientos o conteos → domain.ErrConflict.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search busca por clave normalizada (sin acentos) y proveedor, con el total de cada artículo.
func (r *ItemRepo) Search(ctx context.Context, filter repository.ItemFilter) ([]repository.ItemWithTotal, error) {
	query := `
		SELECT ` + itemColumns + `, COALESCE(SUM(b.quantity), 0)
		FROM items i
		LEFT JOIN balances b ON b.item_id = i.id
		WHERE ($1 = '' OR i.search_key LIKE '%' || $1 || '%' ESCAPE '\')
		  AND ($2 = '' OR i.supplier_id::text = $2)
		GROUP BY i.id
		ORDER BY i.description, i.code
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query,
		escapeLike(textnorm.Fold(filter.Query)), filter.SupplierID, limitArg(filter.Limit), max(filter.Offset, 0),
	)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()

	out := make([]repository.ItemWithTotal, 0)
	for rows.Next() {
		var it entity.Item
		var total int64
		if err := rows.Scan(
			&it.ID, &it.Code, &it.Description, &it.UnitMeasure, &it.UnitValue, &it.SupplierID,
			&it.MinStock, &it.MaxStock, &it.Active, &it.CreatedAt, &it.UpdatedAt, &total,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, repository.ItemWithTotal{Item: &it, TotalQuantity: total})
	}
	return out, rows.Err()
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	if err := row.Scan(
		&it.ID, &it.Code, &it.Description, &it.UnitMeasure, &it.UnitValue, &it.SupplierID,
		&it.MinStock, &it.MaxStock, &it.Active, &it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}

func itemSearchKey(it *entity.Item) string {
	return textnorm.Fold(it.Code + " " + it.Description + " " + it.UnitMeasure)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// limitArg devuelve nil (LIMIT NULL = sin límite) si limit <= 0.
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
