package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, date, user_id, note, status, target_location_id, closed_at, closed_by, created_at`

// InventoryRepo persistencia de ciclos de inventario y sus conteos.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	query := `INSERT INTO inventories (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Date, inv.UserID, inv.Note, inv.Status, inv.TargetLocationID,
		inv.ClosedAt, inv.ClosedBy, inv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.Inventory, error) {
	inv, err := scanInventory(r.q.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

// List ciclos por fecha descendente.
func (r *InventoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limitArg(limit), max(offset, 0))
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Inventory, 0)
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// UpsertItem guarda el conteo; un conteo posterior del mismo artículo lo reemplaza.
// El INSERT toma FOR SHARE sobre el ciclo y solo escribe si sigue ABERTO, así un cierre
// en curso (FOR UPDATE en MarkClosed) lo hace esperar y luego ver ENCERRADO.
func (r *InventoryRepo) UpsertItem(ctx context.Context, ii *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (inventory_id, item_id, counted_qty, updated_at)
		SELECT inv.id, $2, $3, $4
		FROM inventories inv
		WHERE inv.id = $1 AND inv.status = $5
		FOR SHARE OF inv
		ON CONFLICT (inventory_id, item_id)
		DO UPDATE SET counted_qty = EXCLUDED.counted_qty, updated_at = EXCLUDED.updated_at`
	tag, err := r.q.Exec(ctx, query, ii.InventoryID, ii.ItemID, ii.CountedQty, ii.UpdatedAt, entity.InventoryStatusOpen)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("upsert inventory item: %w", mapLockError(err))
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	return r.notOpen(ctx, ii.InventoryID)
}

func (r *InventoryRepo) ListItems(ctx context.Context, inventoryID string) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT ii.inventory_id, ii.item_id, ii.counted_qty, ii.updated_at
		FROM inventory_items ii
		JOIN items i ON i.id = ii.item_id
		WHERE ii.inventory_id = $1
		ORDER BY i.code`, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.InventoryItem, 0)
	for rows.Next() {
		var ii entity.InventoryItem
		if err := rows.Scan(&ii.InventoryID, &ii.ItemID, &ii.CountedQty, &ii.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, &ii)
	}
	return out, rows.Err()
}

// MarkClosed cierra el ciclo en una tx que bloquea la fila del inventario (FOR UPDATE) y
// compara los conteos vigentes con los conciliados. Los UpsertItem concurrentes esperan
// el bloqueo, de modo que ningún conteo entra entre la comparación y el cambio de estado.
func (r *InventoryRepo) MarkClosed(ctx context.Context, inventoryID, locationID, userID string, at time.Time, reconciled []*entity.InventoryItem) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin close inventory: %w", mapBeginError(err))
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM inventories WHERE id = $1 FOR UPDATE`, inventoryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock inventory: %w", mapLockError(err))
	}
	if status != entity.InventoryStatusOpen {
		return domain.ErrInventoryClosed
	}

	current, err := NewInventoryRepository(tx).ListItems(ctx, inventoryID)
	if err != nil {
		return err
	}
	byItem := make(map[string]int64, len(current))
	for _, c := range current {
		byItem[c.ItemID] = c.CountedQty
	}
	if !entity.SameCounts(byItem, reconciled) {
		return domain.ErrCountsChanged
	}

	if _, err := tx.Exec(ctx, `
		UPDATE inventories
		SET status = $2, target_location_id = $3, closed_by = $4, closed_at = $5
		WHERE id = $1`,
		inventoryID, entity.InventoryStatusClosed, locationID, userID, at,
	); err != nil {
		return fmt.Errorf("close inventory: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit close inventory: %w", err)
	}
	return nil
}

// notOpen explica por qué una escritura condicionada a ABERTO no afectó filas.
func (r *InventoryRepo) notOpen(ctx context.Context, inventoryID string) error {
	inv, err := r.GetByID(ctx, inventoryID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	return domain.ErrInventoryClosed
}

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	if err := row.Scan(
		&inv.ID, &inv.Date, &inv.UserID, &inv.Note, &inv.Status, &inv.TargetLocationID,
		&inv.ClosedAt, &inv.ClosedBy, &inv.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &inv, nil
}
