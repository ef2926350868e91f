// Package stock implementa el registro de movimientos (ledger) y la sincronización
// de totales por ubicación.
package stock

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
	domainstock "github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/stock"
)

// Ledger registra movimientos de stock de forma transaccional: bloqueo de fila del saldo
// (SELECT FOR UPDATE), verificación de no negatividad, registro de auditoría y total de ubicación,
// todo en la misma transacción.
type Ledger struct {
	txRunner          TxRunner
	itemRepo          repository.ItemRepository
	locationRepo      repository.LocationRepository
	balanceRepo       repository.BalanceRepository
	sync              *Synchronizer
	centralLocationID string
	log               zerolog.Logger
	now               func() time.Time
}

// NewLedger construye el ledger. centralLocationID viene de configuración.
func NewLedger(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	balanceRepo repository.BalanceRepository,
	sync *Synchronizer,
	centralLocationID string,
	log zerolog.Logger,
) *Ledger {
	return &Ledger{
		txRunner:          txRunner,
		itemRepo:          itemRepo,
		locationRepo:      locationRepo,
		balanceRepo:       balanceRepo,
		sync:              sync,
		centralLocationID: centralLocationID,
		log:               log,
		now:               time.Now,
	}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	UserID     string
	ItemID     string
	LocationID string
	Type       string
	Quantity   int64
	Note       string
}

// ReconcileInput entrada para llevar un saldo a la cantidad contada.
type ReconcileInput struct {
	UserID     string
	ItemID     string
	LocationID string
	CountedQty int64
	Note       string
}

// CentralLocationID devuelve la ubicación usada por las operaciones del almoxarifado central.
func (l *Ledger) CentralLocationID() string {
	return l.centralLocationID
}

// RecordMovement valida la entrada, bloquea el saldo (item, ubicación), aplica el movimiento
// y registra la auditoría. Commit solo si todo fue bien.
func (l *Ledger) RecordMovement(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	if err := validateMovementInput(in); err != nil {
		return nil, err
	}
	if err := l.ensureRefs(ctx, in.ItemID, in.LocationID); err != nil {
		return nil, err
	}

	var mov *entity.Movement
	err := l.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
		locationRepo repository.LocationRepository,
	) error {
		// Bloquea la fila del saldo; la verificación de saldo se hace solo aquí, bajo el bloqueo
		bal, err := balanceRepo.GetForUpdate(ctx, in.ItemID, in.LocationID)
		if err != nil {
			return err
		}
		m, err := l.apply(ctx, movRepo, balanceRepo, locationRepo, bal, in.UserID, in.Type, in.Quantity, in.Note)
		if err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		l.logFailure(err, in.ItemID, in.LocationID, in.Type, in.Quantity)
		return nil, err
	}
	l.log.Debug().
		Str("movement_id", mov.ID).
		Str("item_id", mov.ItemID).
		Str("location_id", mov.LocationID).
		Str("type", mov.Type).
		Int64("quantity", mov.Quantity).
		Int64("balance", mov.BalanceAfter).
		Msg("movimiento registrado")
	return mov, nil
}

// RecordCentralMovement registra un movimiento sobre la ubicación central.
// LocationID vacío se interpreta como la central; otra ubicación es un error de validación.
func (l *Ledger) RecordCentralMovement(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	if in.LocationID != "" && in.LocationID != l.centralLocationID {
		return nil, domain.NewValidationError("location_id", "solo se permite la ubicación central")
	}
	in.LocationID = l.centralLocationID
	return l.RecordMovement(ctx, in)
}

// Reconcile lleva el saldo de (item, ubicación) a CountedQty emitiendo el movimiento compensatorio
// (AJUSTE si falta registro, SAIDA si sobra). La diferencia se calcula bajo el mismo bloqueo.
// Devuelve (nil, nil) si el saldo ya coincide.
func (l *Ledger) Reconcile(ctx context.Context, in ReconcileInput) (*entity.Movement, error) {
	if in.UserID == "" {
		return nil, domain.NewValidationError("user_id", "usuario requerido")
	}
	if err := validateIDs(in.ItemID, in.LocationID); err != nil {
		return nil, err
	}
	if in.CountedQty < 0 {
		return nil, domain.NewValidationError("counted_qty", "la cantidad contada no puede ser negativa")
	}
	if err := validateNote(in.Note); err != nil {
		return nil, err
	}
	if err := l.ensureRefs(ctx, in.ItemID, in.LocationID); err != nil {
		return nil, err
	}

	var mov *entity.Movement
	err := l.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
		locationRepo repository.LocationRepository,
	) error {
		bal, err := balanceRepo.GetForUpdate(ctx, in.ItemID, in.LocationID)
		if err != nil {
			return err
		}
		movType, qty, ok := domainstock.Reconciliation(in.CountedQty, bal.Quantity)
		if !ok {
			return nil
		}
		m, err := l.apply(ctx, movRepo, balanceRepo, locationRepo, bal, in.UserID, movType, qty, in.Note)
		if err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		l.logFailure(err, in.ItemID, in.LocationID, "RECONCILE", in.CountedQty)
		return nil, err
	}
	if mov != nil {
		l.log.Debug().
			Str("movement_id", mov.ID).
			Str("item_id", mov.ItemID).
			Str("location_id", mov.LocationID).
			Str("type", mov.Type).
			Int64("quantity", mov.Quantity).
			Int64("counted", in.CountedQty).
			Msg("saldo conciliado")
	}
	return mov, nil
}

// Balance devuelve el saldo actual sin bloquear (0 si nunca hubo movimientos).
func (l *Ledger) Balance(ctx context.Context, itemID, locationID string) (*entity.Balance, error) {
	if err := validateIDs(itemID, locationID); err != nil {
		return nil, err
	}
	return l.balanceRepo.Get(ctx, itemID, locationID)
}

// apply corre dentro de la transacción con el saldo ya bloqueado.
func (l *Ledger) apply(
	ctx context.Context,
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
	locationRepo repository.LocationRepository,
	bal *entity.Balance,
	userID, movType string,
	qty int64,
	note string,
) (*entity.Movement, error) {
	newQty, err := domainstock.Apply(bal.Quantity, movType, qty)
	if err != nil {
		return nil, err
	}
	now := l.now()
	before := bal.Quantity
	bal.Quantity = newQty
	bal.UpdatedAt = now
	if err := balanceRepo.Save(ctx, bal); err != nil {
		return nil, err
	}
	mov := &entity.Movement{
		ID:            uuid.New().String(),
		Type:          movType,
		ItemID:        bal.ItemID,
		LocationID:    bal.LocationID,
		UserID:        userID,
		Quantity:      qty,
		BalanceBefore: before,
		BalanceAfter:  newQty,
		Note:          note,
		CreatedAt:     now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	if _, err := l.sync.Resync(ctx, balanceRepo, locationRepo, bal.LocationID); err != nil {
		return nil, err
	}
	return mov, nil
}

// ensureRefs verifica que item y ubicación existan antes de abrir la transacción.
func (l *Ledger) ensureRefs(ctx context.Context, itemID, locationID string) error {
	item, err := l.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	loc, err := l.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (l *Ledger) logFailure(err error, itemID, locationID, movType string, qty int64) {
	var ev *zerolog.Event
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance), errors.Is(err, domain.ErrLockTimeout):
		ev = l.log.Warn()
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNotFound):
		ev = l.log.Debug()
	default:
		ev = l.log.Error()
	}
	ev.Err(err).
		Str("item_id", itemID).
		Str("location_id", locationID).
		Str("type", movType).
		Int64("quantity", qty).
		Msg("movimiento rechazado")
}

func validateMovementInput(in MovementInput) error {
	if in.UserID == "" {
		return domain.NewValidationError("user_id", "usuario requerido")
	}
	if err := validateIDs(in.ItemID, in.LocationID); err != nil {
		return err
	}
	if !entity.IsValidMovementType(in.Type) {
		return domain.NewValidationError("type", "tipo debe ser ENTRADA, SAIDA o AJUSTE")
	}
	if in.Quantity <= 0 {
		return domain.NewValidationError("quantity", "la cantidad debe ser mayor que cero")
	}
	return validateNote(in.Note)
}

func validateIDs(itemID, locationID string) error {
	if _, err := uuid.Parse(itemID); err != nil {
		return domain.NewValidationError("item_id", "identificador de artículo inválido")
	}
	if _, err := uuid.Parse(locationID); err != nil {
		return domain.NewValidationError("location_id", "identificador de ubicación inválido")
	}
	return nil
}

func validateNote(note string) error {
	if utf8.RuneCountInString(note) > entity.MaxMovementNoteLength {
		return domain.NewValidationError("note", "la observación supera 100 caracteres")
	}
	return nil
}
