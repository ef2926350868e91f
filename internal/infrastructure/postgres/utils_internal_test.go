package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
)

func TestMapLockError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"lock_timeout", &pgconn.PgError{Code: "55P03"}, domain.ErrLockTimeout},
		{"deadlock", fmt.Errorf("save: %w", &pgconn.PgError{Code: "40P01"}), domain.ErrLockTimeout},
		{"contexto vencido", fmt.Errorf("get: %w", context.DeadlineExceeded), domain.ErrLockTimeout},
		{"check de saldo", &pgconn.PgError{Code: "23514"}, domain.ErrInsufficientBalance},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapLockError(tc.in), tc.want)
		})
	}

	other := errors.New("otro")
	assert.Same(t, other, mapLockError(other))
	assert.Nil(t, mapLockError(nil))
}

func TestMapBeginError_PoolAgotadoNoEsBloqueo(t *testing.T) {
	err := mapBeginError(fmt.Errorf("acquire: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, err, domain.ErrBusy)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, domain.ErrLockTimeout)

	other := errors.New("conexión rechazada")
	assert.Same(t, other, mapBeginError(other))
	assert.Nil(t, mapBeginError(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("x: %w", &pgconn.PgError{Code: "23503"})))
}
