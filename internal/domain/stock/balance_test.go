package stock_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/stock"
)

func TestApply_EntradaYAjusteSuman(t *testing.T) {
	got, err := stock.Apply(10, entity.MovementTypeEntry, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(15), got)

	got, err = stock.Apply(10, entity.MovementTypeAdjustment, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(15), got)
}

func TestApply_SalidaResta(t *testing.T) {
	got, err := stock.Apply(10, entity.MovementTypeExit, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got, "una salida igual al saldo deja el saldo en cero")
}

func TestApply_SalidaMayorAlSaldo_Rechazada(t *testing.T) {
	got, err := stock.Apply(20, entity.MovementTypeExit, 25)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Equal(t, int64(20), got, "el saldo no cambia cuando se rechaza")
}

func TestApply_EntradaInvalida(t *testing.T) {
	cases := []struct {
		name  string
		typ   string
		qty   int64
		field string
	}{
		{"cantidad cero", entity.MovementTypeEntry, 0, "quantity"},
		{"cantidad negativa", entity.MovementTypeExit, -3, "quantity"},
		{"tipo desconocido", "TRANSFER", 3, "type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := stock.Apply(10, tc.typ, tc.qty)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestApply_EntradaQueDesbordaEsValidacion(t *testing.T) {
	got, err := stock.Apply(math.MaxInt64-2, entity.MovementTypeEntry, 3)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrInsufficientBalance)
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "quantity", vErr.Field)
	assert.Equal(t, int64(math.MaxInt64-2), got)

	got, err = stock.Apply(math.MaxInt64-3, entity.MovementTypeAdjustment, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got)
}

func TestReconciliation(t *testing.T) {
	typ, qty, ok := stock.Reconciliation(7, 10)
	assert.True(t, ok)
	assert.Equal(t, entity.MovementTypeExit, typ)
	assert.Equal(t, int64(3), qty)

	typ, qty, ok = stock.Reconciliation(15, 10)
	assert.True(t, ok)
	assert.Equal(t, entity.MovementTypeAdjustment, typ)
	assert.Equal(t, int64(5), qty)

	_, _, ok = stock.Reconciliation(10, 10)
	assert.False(t, ok, "sin diferencia no hay movimiento")
}

// La secuencia del escenario de referencia: el saldo nunca queda negativo.
func TestApply_SecuenciaNuncaNegativa(t *testing.T) {
	steps := []struct {
		typ  string
		qty  int64
		want int64
		err  error
	}{
		{entity.MovementTypeEntry, 50, 50, nil},
		{entity.MovementTypeExit, 30, 20, nil},
		{entity.MovementTypeExit, 25, 20, domain.ErrInsufficientBalance},
		{entity.MovementTypeAdjustment, 5, 25, nil},
	}
	var bal int64
	for _, s := range steps {
		next, err := stock.Apply(bal, s.typ, s.qty)
		if s.err != nil {
			require.ErrorIs(t, err, s.err)
		} else {
			require.NoError(t, err)
			bal = next
		}
		assert.Equal(t, s.want, bal)
		assert.GreaterOrEqual(t, bal, int64(0))
	}
}
