package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/stock"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/usecase"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
)

func TestLocationUseCase_CrearMarcaCentral(t *testing.T) {
	env := newCatalog(t)
	locations := usecase.NewLocationUseCase(env.store.Locations(), env.central)
	ctx := context.Background()

	annex, err := locations.Create(ctx, dto.CreateLocationRequest{Name: "Anexo Bloco B", MinimumLevel: 5})
	require.NoError(t, err)
	assert.False(t, annex.Central)
	assert.Equal(t, int64(0), annex.CurrentTotal)

	central, err := locations.GetByID(ctx, env.central)
	require.NoError(t, err)
	assert.True(t, central.Central)

	list, err := locations.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = locations.Create(ctx, dto.CreateLocationRequest{Name: "   "})
	assert.Equal(t, "name", validationField(t, err))
	_, err = locations.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocationUseCase_ActualizarConservaTotal(t *testing.T) {
	env := newCatalog(t)
	locations := usecase.NewLocationUseCase(env.store.Locations(), env.central)
	ctx := context.Background()

	item, err := env.items.Create(ctx, paperRequest())
	require.NoError(t, err)
	_, err = env.ledger.RecordMovement(ctx, stock.MovementInput{
		UserID: uuid.NewString(), ItemID: item.ID, LocationID: env.central,
		Type: entity.MovementTypeEntry, Quantity: 9,
	})
	require.NoError(t, err)

	name := "Almoxarifado Central"
	updated, err := locations.Update(ctx, env.central, dto.UpdateLocationRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, int64(9), updated.CurrentTotal)
}
