package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/stock"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/usecase"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/infrastructure/memory"
)

type catalogEnv struct {
	store   *memory.Store
	central string
	items   *usecase.ItemUseCase
	ledger  *stock.Ledger
}

func newCatalog(t *testing.T) *catalogEnv {
	t.Helper()
	store := memory.NewStore(time.Second)
	central := uuid.NewString()
	require.NoError(t, store.Locations().Create(context.Background(), &entity.Location{ID: central, Name: "Depósito Central"}))
	log := zerolog.Nop()
	sync := stock.NewSynchronizer(store, store.Locations(), log)
	return &catalogEnv{
		store:   store,
		central: central,
		items:   usecase.NewItemUseCase(store.Items(), store.Suppliers(), store.Locations(), store.Balances(), central),
		ledger:  stock.NewLedger(store, store.Items(), store.Locations(), store.Balances(), sync, central, log),
	}
}

func paperRequest() dto.CreateItemRequest {
	return dto.CreateItemRequest{
		Code:        " PAP-001 ",
		Description: "Papel Sulfite A4",
		UnitMeasure: "RESMA",
		UnitValue:   decimal.RequireFromString("25.50"),
		MinStock:    10,
		MaxStock:    100,
	}
}

func validationField(t *testing.T, err error) string {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Field
}

func TestItemUseCase_CrearYDuplicado(t *testing.T) {
	env := newCatalog(t)
	ctx := context.Background()

	created, err := env.items.Create(ctx, paperRequest())
	require.NoError(t, err)
	assert.Equal(t, "PAP-001", created.Code)
	assert.True(t, created.Active)

	byCode, err := env.items.GetByCode(ctx, "PAP-001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)

	_, err = env.items.Create(ctx, paperRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItemUseCase_ValidacionDeCampos(t *testing.T) {
	env := newCatalog(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		edit  func(*dto.CreateItemRequest)
		field string
	}{
		{"sin código", func(r *dto.CreateItemRequest) { r.Code = "  " }, "code"},
		{"sin descripción", func(r *dto.CreateItemRequest) { r.Description = "" }, "description"},
		{"sin unidad", func(r *dto.CreateItemRequest) { r.UnitMeasure = "" }, "unit_measure"},
		{"valor negativo", func(r *dto.CreateItemRequest) { r.UnitValue = decimal.NewFromInt(-1) }, "unit_value"},
		{"máximo menor que mínimo", func(r *dto.CreateItemRequest) { r.MaxStock = 5 }, "max_stock"},
		{"proveedor inválido", func(r *dto.CreateItemRequest) { s := "x"; r.SupplierID = &s }, "supplier_id"},
		{"proveedor inexistente", func(r *dto.CreateItemRequest) { s := uuid.NewString(); r.SupplierID = &s }, "supplier_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := paperRequest()
			tt.edit(&req)
			_, err := env.items.Create(ctx, req)
			assert.Equal(t, tt.field, validationField(t, err))
		})
	}
}

func TestItemUseCase_ActualizarCodigoDeOtroEsDuplicado(t *testing.T) {
	env := newCatalog(t)
	ctx := context.Background()

	_, err := env.items.Create(ctx, paperRequest())
	require.NoError(t, err)
	other := paperRequest()
	other.Code = "CAN-002"
	other.Description = "Caneta azul"
	pen, err := env.items.Create(ctx, other)
	require.NoError(t, err)

	code := "PAP-001"
	_, err = env.items.Update(ctx, pen.ID, dto.UpdateItemRequest{Code: &code})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	desc := "Caneta esferográfica azul"
	inactive := false
	updated, err := env.items.Update(ctx, pen.ID, dto.UpdateItemRequest{Description: &desc, Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
	assert.False(t, updated.Active)
	assert.Equal(t, "CAN-002", updated.Code)
}

func TestItemUseCase_BusquedaSinAcentosConTotal(t *testing.T) {
	env := newCatalog(t)
	ctx := context.Background()

	req := paperRequest()
	req.Code = "CAF-001"
	req.Description = "Café em pó"
	req.UnitMeasure = "PACOTE"
	coffee, err := env.items.Create(ctx, req)
	require.NoError(t, err)
	_, err = env.items.Create(ctx, paperRequest())
	require.NoError(t, err)

	_, err = env.ledger.RecordMovement(ctx, stock.MovementInput{
		UserID: uuid.NewString(), ItemID: coffee.ID, LocationID: env.central,
		Type: entity.MovementTypeEntry, Quantity: 7,
	})
	require.NoError(t, err)

	res, err := env.items.Search(ctx, "CAFE", "", 20, 0)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, coffee.ID, res.Items[0].ID)
	require.NotNil(t, res.Items[0].TotalQuantity)
	assert.Equal(t, int64(7), *res.Items[0].TotalQuantity)

	all, err := env.items.Search(ctx, "", "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}

func TestItemUseCase_SaldoEnCentralPorDefecto(t *testing.T) {
	env := newCatalog(t)
	ctx := context.Background()

	item, err := env.items.Create(ctx, paperRequest())
	require.NoError(t, err)

	bal, err := env.items.Balance(ctx, item.ID, "")
	require.NoError(t, err)
	assert.Equal(t, env.central, bal.LocationID)
	assert.Equal(t, int64(0), bal.Quantity)
	assert.True(t, bal.BelowMinimum)

	_, err = env.ledger.RecordMovement(ctx, stock.MovementInput{
		UserID: uuid.NewString(), ItemID: item.ID, LocationID: env.central,
		Type: entity.MovementTypeEntry, Quantity: 12,
	})
	require.NoError(t, err)

	bal, err = env.items.Balance(ctx, item.ID, env.central)
	require.NoError(t, err)
	assert.Equal(t, int64(12), bal.Quantity)
	assert.False(t, bal.BelowMinimum)
	assert.True(t, decimal.RequireFromString("306").Equal(bal.Value))

	_, err = env.items.Balance(ctx, item.ID, "no-es-uuid")
	assert.Equal(t, "location_id", validationField(t, err))

	_, err = env.items.Balance(ctx, item.ID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemUseCase_EliminarConMovimientosEsConflicto(t *testing.T) {
	env := newCatalog(t)
	ctx := context.Background()

	used, err := env.items.Create(ctx, paperRequest())
	require.NoError(t, err)
	_, err = env.ledger.RecordMovement(ctx, stock.MovementInput{
		UserID: uuid.NewString(), ItemID: used.ID, LocationID: env.central,
		Type: entity.MovementTypeEntry, Quantity: 1,
	})
	require.NoError(t, err)
	assert.ErrorIs(t, env.items.Delete(ctx, used.ID), domain.ErrConflict)

	req := paperRequest()
	req.Code = "CLP-003"
	unused, err := env.items.Create(ctx, req)
	require.NoError(t, err)
	require.NoError(t, env.items.Delete(ctx, unused.ID))
	_, err = env.items.GetByID(ctx, unused.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemUseCase_IdentificadorInvalidoNoExiste(t *testing.T) {
	env := newCatalog(t)
	_, err := env.items.GetByID(context.Background(), "123")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = env.items.GetByCode(context.Background(), "NADA")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
