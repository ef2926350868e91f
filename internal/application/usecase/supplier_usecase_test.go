package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/usecase"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
)

func TestSupplierUseCase_CrearYListar(t *testing.T) {
	env := newCatalog(t)
	suppliers := usecase.NewSupplierUseCase(env.store.Suppliers())
	ctx := context.Background()

	sp, err := suppliers.Create(ctx, dto.CreateSupplierRequest{Name: " Papelaria Cuiabá ", CNPJ: "12.345.678/0001-90"})
	require.NoError(t, err)
	assert.Equal(t, "Papelaria Cuiabá", sp.Name)

	_, err = suppliers.Create(ctx, dto.CreateSupplierRequest{Name: ""})
	assert.Equal(t, "name", validationField(t, err))
	_, err = suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "X", CNPJ: strings.Repeat("9", 19)})
	assert.Equal(t, "cnpj", validationField(t, err))

	list, err := suppliers.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, sp.ID, list.Items[0].ID)
	assert.Equal(t, 10, list.Page.Limit)
}

func TestSupplierUseCase_EliminarDesvinculaArticulos(t *testing.T) {
	env := newCatalog(t)
	suppliers := usecase.NewSupplierUseCase(env.store.Suppliers())
	ctx := context.Background()

	sp, err := suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "Distribuidora Centro-Oeste"})
	require.NoError(t, err)
	req := paperRequest()
	req.SupplierID = &sp.ID
	item, err := env.items.Create(ctx, req)
	require.NoError(t, err)

	filtered, err := env.items.Search(ctx, "", sp.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, filtered.Items, 1)

	require.NoError(t, suppliers.Delete(ctx, sp.ID))

	got, err := env.items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got.SupplierID)
	_, err = suppliers.GetByID(ctx, sp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, suppliers.Delete(ctx, sp.ID), domain.ErrNotFound)
}
