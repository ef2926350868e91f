package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/stock"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner construye el runner con el pool. lockTimeout acota la espera por cada
// bloqueo de fila dentro de la transacción.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: lockTimeout}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Una espera de bloqueo agotada se devuelve como domain.ErrLockTimeout; no conseguir
// conexión del pool antes del deadline, como domain.ErrBusy.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
	locationRepo repository.LocationRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", mapBeginError(err))
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	if r.lockTimeout > 0 {
		ms := strconv.FormatInt(r.lockTimeout.Milliseconds(), 10) + "ms"
		if _, err := tx.Exec(ctx, "SELECT set_config('lock_timeout', $1, true)", ms); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	movRepo := NewMovementRepository(tx)
	balanceRepo := NewBalanceRepository(tx)
	locationRepo := NewLocationRepository(tx)

	if err := fn(movRepo, balanceRepo, locationRepo); err != nil {
		return mapLockError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		if mapped := mapLockError(err); errors.Is(mapped, domain.ErrLockTimeout) {
			return mapped
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
