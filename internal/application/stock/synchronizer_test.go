package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

func TestSynchronizer_ResyncAllCorrigeTotales(t *testing.T) {
	f := newFixture(t, time.Second)
	_, err := f.move(f.paper.ID, f.central.ID, entity.MovementTypeEntry, 6)
	require.NoError(t, err)
	_, err = f.move(f.pen.ID, f.central.ID, entity.MovementTypeEntry, 4)
	require.NoError(t, err)

	f.store.Locations().SetCurrentTotal(f.central.ID, 999)
	f.store.Locations().SetCurrentTotal(f.other.ID, -5)

	totals, err := f.sync.ResyncAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), totals[f.central.ID])
	assert.Equal(t, int64(0), totals[f.other.ID])
	assert.Equal(t, int64(10), f.locationTotal(t, f.central.ID))
	assert.Equal(t, int64(0), f.locationTotal(t, f.other.ID))
}

func TestSynchronizer_ResyncEsIdempotente(t *testing.T) {
	f := newFixture(t, time.Second)
	_, err := f.move(f.paper.ID, f.other.ID, entity.MovementTypeEntry, 9)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		err := f.store.Run(context.Background(), func(
			_ repository.MovementRepository,
			balanceRepo repository.BalanceRepository,
			locationRepo repository.LocationRepository,
		) error {
			total, err := f.sync.Resync(context.Background(), balanceRepo, locationRepo, f.other.ID)
			assert.Equal(t, int64(9), total)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, int64(9), f.locationTotal(t, f.other.ID))
	}
}
