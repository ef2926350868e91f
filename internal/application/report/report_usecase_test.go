package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/report"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/stock"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/infrastructure/memory"
)

type stubPDF struct {
	got *dto.ValuationResponse
}

func (s *stubPDF) GenerateValuationPDF(_ context.Context, v *dto.ValuationResponse) ([]byte, error) {
	s.got = v
	return []byte("%PDF"), nil
}

type env struct {
	store   *memory.Store
	uc      *report.ReportUseCase
	pdf     *stubPDF
	central *entity.Location
	paper   *entity.Item
	pen     *entity.Item
	start   time.Time
}

// newEnv deja papel 10 y caneta 4 en central, y caneta 2 en la sala (mínimo 5).
func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore(time.Second)
	e := &env{
		store:   store,
		pdf:     &stubPDF{},
		central: &entity.Location{ID: uuid.NewString(), Name: "Depósito Central"},
		paper: &entity.Item{
			ID: uuid.NewString(), Code: "PAP-001", Description: "Papel A4",
			UnitMeasure: "RESMA", UnitValue: decimal.RequireFromString("25.50"), Active: true,
		},
		pen: &entity.Item{
			ID: uuid.NewString(), Code: "CAN-002", Description: "Caneta azul",
			UnitMeasure: "UN", UnitValue: decimal.RequireFromString("1.20"), Active: true,
		},
		start: time.Now().Add(-time.Minute),
	}
	room := &entity.Location{ID: uuid.NewString(), Name: "Sala de manutenção", MinimumLevel: 5}
	require.NoError(t, store.Locations().Create(ctx, e.central))
	require.NoError(t, store.Locations().Create(ctx, room))
	require.NoError(t, store.Items().Create(ctx, e.paper))
	require.NoError(t, store.Items().Create(ctx, e.pen))

	sync := stock.NewSynchronizer(store, store.Locations(), zerolog.Nop())
	ledger := stock.NewLedger(store, store.Items(), store.Locations(), store.Balances(), sync, e.central.ID, zerolog.Nop())
	user := uuid.NewString()
	for _, m := range []stock.MovementInput{
		{UserID: user, ItemID: e.paper.ID, LocationID: e.central.ID, Type: entity.MovementTypeEntry, Quantity: 10},
		{UserID: user, ItemID: e.pen.ID, LocationID: e.central.ID, Type: entity.MovementTypeEntry, Quantity: 4},
		{UserID: user, ItemID: e.pen.ID, LocationID: room.ID, Type: entity.MovementTypeEntry, Quantity: 2},
	} {
		_, err := ledger.RecordMovement(ctx, m)
		require.NoError(t, err)
	}
	e.uc = report.NewReportUseCase(store.Reports(), store.Balances(), store.Movements(), e.pdf)
	return e
}

func TestDashboard(t *testing.T) {
	e := newEnv(t)
	d, err := e.uc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, d.ItemCount)
	assert.True(t, decimal.RequireFromString("262.20").Equal(d.TotalValue), d.TotalValue.String())
	require.Len(t, d.Critical, 1)
	assert.Equal(t, "CAN-002", d.Critical[0].ItemCode)
	assert.Equal(t, int64(2), d.Critical[0].Quantity)
	assert.Len(t, d.RecentMovements, 3)
}

func TestValuation_SinDiferencias(t *testing.T) {
	e := newEnv(t)
	v, err := e.uc.Valuation(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, v.DriftChecked)
	assert.Empty(t, v.Drift)
	assert.True(t, v.Ledger.Total.Equal(v.Balance.Total))
	require.Len(t, v.Ledger.Lines, 2)
	assert.Equal(t, "CAN-002", v.Ledger.Lines[0].ItemCode)
	assert.Equal(t, int64(6), v.Ledger.Lines[0].Quantity)
	assert.Equal(t, int64(10), v.Ledger.Lines[1].Quantity)
}

func TestValuation_DetectaDiferencia(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.store.Balances().Save(context.Background(), &entity.Balance{
		ItemID: e.paper.ID, LocationID: e.central.ID, Quantity: 12,
	}))
	v, err := e.uc.Valuation(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, v.Drift, 1)
	assert.Equal(t, "PAP-001", v.Drift[0].ItemCode)
	assert.Equal(t, int64(10), v.Drift[0].LedgerQty)
	assert.Equal(t, int64(12), v.Drift[0].BalanceQty)
}

func TestValuation_MovimientosConcurrentesNoGeneranDiferencia(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sync := stock.NewSynchronizer(e.store, e.store.Locations(), zerolog.Nop())
	ledger := stock.NewLedger(e.store, e.store.Items(), e.store.Locations(), e.store.Balances(), sync, e.central.ID, zerolog.Nop())

	done := make(chan error, 1)
	go func() {
		for i := 0; i < 50; i++ {
			if _, err := ledger.RecordCentralMovement(ctx, stock.MovementInput{
				UserID: uuid.NewString(), ItemID: e.paper.ID, Type: entity.MovementTypeEntry, Quantity: 1,
			}); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	for i := 0; i < 50; i++ {
		v, err := e.uc.Valuation(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, v.Drift)
	}
	require.NoError(t, <-done)

	v, err := e.uc.Valuation(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, v.Drift)
	assert.Equal(t, int64(60), v.Balance.Lines[1].Quantity)
}

func TestValuation_FechaPasada(t *testing.T) {
	e := newEnv(t)
	at := e.start
	v, err := e.uc.Valuation(context.Background(), &at)
	require.NoError(t, err)
	assert.False(t, v.DriftChecked)
	assert.Empty(t, v.Drift)
	assert.True(t, v.Ledger.Total.IsZero())
	assert.False(t, v.Balance.Total.IsZero())
}

func TestValuationPDF(t *testing.T) {
	e := newEnv(t)
	out, err := e.uc.ValuationPDF(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)
	require.NotNil(t, e.pdf.got)
	assert.Len(t, e.pdf.got.Balance.Lines, 2)

	sinPDF := report.NewReportUseCase(e.store.Reports(), e.store.Balances(), e.store.Movements(), nil)
	_, err = sinPDF.ValuationPDF(context.Background(), nil)
	assert.Error(t, err)
}

func TestMovements_FiltroYPaginacion(t *testing.T) {
	e := newEnv(t)
	list, err := e.uc.Movements(context.Background(), repository.MovementFilter{ItemID: e.pen.ID, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 2, list.Page.Total)

	from := time.Now()
	to := from.Add(-time.Hour)
	_, err = e.uc.Movements(context.Background(), repository.MovementFilter{From: &from, To: &to})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "from", verr.Field)
}

func TestLowStock(t *testing.T) {
	e := newEnv(t)
	low, err := e.uc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Sala de manutenção", low[0].LocationName)
}
