package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
)

// Códigos SQLSTATE usados.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeLockNotAvailable    = "55P03"
	codeDeadlockDetected    = "40P01"
	codeQueryCanceled       = "57014"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// mapLockError traduce la espera agotada de un bloqueo a domain.ErrLockTimeout.
// Devuelve err sin cambios en cualquier otro caso.
func mapLockError(err error) error {
	if err == nil {
		return nil
	}
	switch pgCode(err) {
	case codeLockNotAvailable, codeDeadlockDetected, codeQueryCanceled:
		return domain.ErrLockTimeout
	case codeCheckViolation:
		return domain.ErrInsufficientBalance
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrLockTimeout
	}
	return err
}

// mapBeginError traduce un contexto vencido al abrir una transacción a domain.ErrBusy.
// En ese punto todavía no hay bloqueos de fila: la espera fue por una conexión del pool.
func mapBeginError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrBusy, err)
	}
	return err
}
