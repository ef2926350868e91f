// Package inventory implementa el motor de conciliación de inventario físico:
// ciclos de conteo y cierre con movimientos compensatorios.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/stock"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

// maxCloseRounds veces que Close vuelve a listar conteos que cambiaron durante el cierre.
const maxCloseRounds = 3

// ItemFailure artículo que no se pudo conciliar al cerrar el ciclo.
type ItemFailure struct {
	ItemID string
	Code   string
	Err    error
}

// CloseResult resultado del cierre. Closed es false si hubo fallos o el cierre se interrumpió:
// el ciclo sigue abierto y puede cerrarse de nuevo (los artículos ya conciliados dan diferencia
// cero). Adjustments lista siempre los movimientos ya confirmados.
type CloseResult struct {
	Inventory   *entity.Inventory
	Adjustments []*entity.Movement
	Failures    []ItemFailure
	Closed      bool
}

// ImportResult resultado de importar una planilla de conteos.
type ImportResult struct {
	Applied  int
	Failures []RowFailure
}

// ReconciliationUseCase gestiona ciclos de inventario: apertura, conteos y cierre.
type ReconciliationUseCase struct {
	invRepo      repository.InventoryRepository
	itemRepo     repository.ItemRepository
	locationRepo repository.LocationRepository
	reconciler   Reconciler
	parser       CountSheetParser
	log          zerolog.Logger
	now          func() time.Time
}

// NewReconciliationUseCase construye el caso de uso. parser puede ser nil si no se importan planillas.
func NewReconciliationUseCase(
	invRepo repository.InventoryRepository,
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	reconciler Reconciler,
	parser CountSheetParser,
	log zerolog.Logger,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		invRepo:      invRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		reconciler:   reconciler,
		parser:       parser,
		log:          log,
		now:          time.Now,
	}
}

// Create abre un ciclo de inventario.
func (uc *ReconciliationUseCase) Create(ctx context.Context, userID string, in dto.CreateInventoryRequest) (*entity.Inventory, error) {
	if userID == "" {
		return nil, domain.NewValidationError("user_id", "usuario requerido")
	}
	if utf8.RuneCountInString(in.Note) > entity.MaxMovementNoteLength {
		return nil, domain.NewValidationError("note", "la observación supera 100 caracteres")
	}
	now := uc.now()
	date := now
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}
	inv := &entity.Inventory{
		ID:        uuid.New().String(),
		Date:      date,
		UserID:    userID,
		Note:      strings.TrimSpace(in.Note),
		Status:    entity.InventoryStatusOpen,
		CreatedAt: now,
	}
	if err := uc.invRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Get obtiene un ciclo; ErrNotFound si no existe.
func (uc *ReconciliationUseCase) Get(ctx context.Context, id string) (*entity.Inventory, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	inv, err := uc.invRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// List lista ciclos por fecha descendente.
func (uc *ReconciliationUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Inventory, error) {
	return uc.invRepo.List(ctx, limit, offset)
}

// Items devuelve los conteos registrados en el ciclo.
func (uc *ReconciliationUseCase) Items(ctx context.Context, id string) ([]*entity.InventoryItem, error) {
	if _, err := uc.Get(ctx, id); err != nil {
		return nil, err
	}
	return uc.invRepo.ListItems(ctx, id)
}

// RecordCount registra (o sobrescribe) la cantidad contada de un artículo. No toca saldos.
func (uc *ReconciliationUseCase) RecordCount(ctx context.Context, inventoryID, itemID string, counted int64) (*entity.InventoryItem, error) {
	if counted < 0 {
		return nil, domain.NewValidationError("counted_qty", "la cantidad contada no puede ser negativa")
	}
	if _, err := uuid.Parse(itemID); err != nil {
		return nil, domain.NewValidationError("item_id", "identificador de artículo inválido")
	}
	if _, err := uc.openInventory(ctx, inventoryID); err != nil {
		return nil, err
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.upsert(ctx, inventoryID, item.ID, counted)
}

// RecordCountByCode registra un conteo buscando el artículo por código (lector de código de barras).
func (uc *ReconciliationUseCase) RecordCountByCode(ctx context.Context, inventoryID, code string, counted int64) (*entity.InventoryItem, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.NewValidationError("code", "código requerido")
	}
	if counted < 0 {
		return nil, domain.NewValidationError("counted_qty", "la cantidad contada no puede ser negativa")
	}
	if _, err := uc.openInventory(ctx, inventoryID); err != nil {
		return nil, err
	}
	item, err := uc.itemRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.upsert(ctx, inventoryID, item.ID, counted)
}

// ImportCounts aplica los conteos de una planilla. Cada fila se aplica por código; los fallos
// por fila se devuelven en el resultado sin abortar el resto.
func (uc *ReconciliationUseCase) ImportCounts(ctx context.Context, inventoryID string, r io.Reader) (*ImportResult, error) {
	if uc.parser == nil {
		return nil, fmt.Errorf("importación de planillas no configurada")
	}
	if _, err := uc.openInventory(ctx, inventoryID); err != nil {
		return nil, err
	}
	rows, failures, err := uc.parser.Parse(r)
	if err != nil {
		return nil, domain.NewValidationError("file", err.Error())
	}
	res := &ImportResult{Failures: failures}
	for _, row := range rows {
		if _, err := uc.RecordCountByCode(ctx, inventoryID, row.Code, row.Quantity); err != nil {
			res.Failures = append(res.Failures, RowFailure{Line: row.Line, Code: row.Code, Err: err})
			continue
		}
		res.Applied++
	}
	if res.Failures == nil {
		res.Failures = []RowFailure{}
	}
	uc.log.Info().
		Str("inventory_id", inventoryID).
		Int("applied", res.Applied).
		Int("failed", len(res.Failures)).
		Msg("planilla de conteo importada")
	return res, nil
}

// Close concilia cada artículo contado contra su saldo en locationID. Cada artículo usa su propio
// bloqueo y transacción; un fallo se registra y el resto continúa. El ciclo pasa a ENCERRADO
// solo si no hubo fallos y los conteos no cambiaron mientras se conciliaba: si llegó un conteo
// nuevo se vuelve a listar y se concilia lo pendiente, hasta maxCloseRounds veces.
// Si ctx se cancela a mitad, lo ya conciliado se devuelve y el resto queda como fallo.
func (uc *ReconciliationUseCase) Close(ctx context.Context, inventoryID, locationID, userID string) (*CloseResult, error) {
	if userID == "" {
		return nil, domain.NewValidationError("user_id", "usuario requerido")
	}
	if _, err := uuid.Parse(locationID); err != nil {
		return nil, domain.NewValidationError("location_id", "identificador de ubicación inválido")
	}
	inv, err := uc.openInventory(ctx, inventoryID)
	if err != nil {
		return nil, err
	}
	loc, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}

	res := &CloseResult{
		Inventory:   inv,
		Adjustments: []*entity.Movement{},
		Failures:    []ItemFailure{},
	}
	note := fmt.Sprintf("Ajuste inventário %s", inv.ID)
	reconciled := make(map[string]int64)
	var counts []*entity.InventoryItem
	for round := 1; ; round++ {
		if counts, err = uc.invRepo.ListItems(ctx, inv.ID); err != nil {
			if round == 1 {
				return nil, err
			}
			uc.log.Warn().Err(err).Str("inventory_id", inv.ID).Msg("no se pudo volver a listar conteos")
			break
		}
		for i, c := range counts {
			if qty, ok := reconciled[c.ItemID]; ok && qty == c.CountedQty {
				continue
			}
			if err := ctx.Err(); err != nil {
				for _, rest := range counts[i:] {
					if qty, ok := reconciled[rest.ItemID]; !ok || qty != rest.CountedQty {
						res.Failures = append(res.Failures, ItemFailure{ItemID: rest.ItemID, Err: err})
					}
				}
				break
			}
			mov, err := uc.reconciler.Reconcile(ctx, stock.ReconcileInput{
				UserID:     userID,
				ItemID:     c.ItemID,
				LocationID: locationID,
				CountedQty: c.CountedQty,
				Note:       note,
			})
			if err != nil {
				res.Failures = append(res.Failures, uc.failure(ctx, c.ItemID, err))
				uc.log.Warn().Err(err).
					Str("inventory_id", inv.ID).
					Str("item_id", c.ItemID).
					Msg("artículo no conciliado")
				continue
			}
			reconciled[c.ItemID] = c.CountedQty
			if mov != nil {
				res.Adjustments = append(res.Adjustments, mov)
			}
		}
		if len(res.Failures) > 0 {
			break
		}

		err = uc.invRepo.MarkClosed(ctx, inv.ID, locationID, userID, uc.now(), counts)
		if errors.Is(err, domain.ErrCountsChanged) && round < maxCloseRounds {
			continue
		}
		if errors.Is(err, domain.ErrCountsChanged) {
			uc.log.Warn().Str("inventory_id", inv.ID).Int("rounds", round).
				Msg("conteos siguen cambiando, el ciclo queda abierto")
			break
		}
		if err != nil && ctx.Err() != nil {
			uc.log.Warn().Err(err).Str("inventory_id", inv.ID).Msg("cierre cancelado tras conciliar")
			break
		}
		if err != nil {
			return nil, err
		}
		res.Closed = true
		if res.Inventory, err = uc.invRepo.GetByID(ctx, inv.ID); err != nil {
			return nil, err
		}
		break
	}

	uc.log.Info().
		Str("inventory_id", inv.ID).
		Str("location_id", locationID).
		Int("counted", len(counts)).
		Int("adjustments", len(res.Adjustments)).
		Int("failures", len(res.Failures)).
		Bool("closed", res.Closed).
		Msg("cierre de inventario")
	return res, nil
}

// failure arma el fallo de un artículo con su código, si todavía se puede leer.
func (uc *ReconciliationUseCase) failure(ctx context.Context, itemID string, err error) ItemFailure {
	f := ItemFailure{ItemID: itemID, Err: err}
	if item, _ := uc.itemRepo.GetByID(context.WithoutCancel(ctx), itemID); item != nil {
		f.Code = item.Code
	}
	return f
}

func (uc *ReconciliationUseCase) openInventory(ctx context.Context, id string) (*entity.Inventory, error) {
	inv, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inv.IsOpen() {
		return nil, domain.ErrInventoryClosed
	}
	return inv, nil
}

func (uc *ReconciliationUseCase) upsert(ctx context.Context, inventoryID, itemID string, counted int64) (*entity.InventoryItem, error) {
	ii := &entity.InventoryItem{
		InventoryID: inventoryID,
		ItemID:      itemID,
		CountedQty:  counted,
		UpdatedAt:   uc.now(),
	}
	if err := uc.invRepo.UpsertItem(ctx, ii); err != nil {
		return nil, err
	}
	return ii, nil
}
