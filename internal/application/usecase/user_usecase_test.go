package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/usecase"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/infrastructure/memory"
)

func TestUserUseCase_CambiarEstado(t *testing.T) {
	store := memory.NewStore(time.Second)
	users := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()

	u := &entity.User{
		ID: uuid.NewString(), Name: "Operadora", Email: "op@ifmt.edu.br",
		PasswordHash: "x", Role: entity.RoleOperator, Status: entity.UserStatusActive,
	}
	require.NoError(t, store.Users().Create(ctx, u))

	resp, err := users.SetStatus(ctx, u.ID, entity.UserStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusInactive, resp.Status)

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusInactive, got.Status)

	_, err = users.SetStatus(ctx, u.ID, "BLOQUEADO")
	assert.Equal(t, "status", validationField(t, err))
	_, err = users.SetStatus(ctx, uuid.NewString(), entity.UserStatusActive)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	list, err := users.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
