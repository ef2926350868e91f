package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/auth"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/infrastructure/memory"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/pkg/jwt"
)

func newAuth() (*auth.AuthUseCase, *memory.Store) {
	store := memory.NewStore(time.Second)
	uc := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: "secreto", ExpMinutes: 5, Issuer: "almoxarifado"})
	return uc, store
}

func TestRegisterYLogin(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuth()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Ana@Ifmt.edu.br", Password: "12345678", Role: entity.RoleOperator})
	require.NoError(t, err)
	assert.Equal(t, "ana@ifmt.edu.br", u.Email)
	assert.Equal(t, entity.UserStatusActive, u.Status)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@ifmt.edu.br", Password: "12345678"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse("secreto", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, entity.RoleOperator, role)
}

func TestRegister_EmailDuplicadoYPerfilInvalido(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuth()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.c", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.C", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@b.c", Password: "12345678", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_PasswordIncorrectaOUsuarioInactivo(t *testing.T) {
	ctx := context.Background()
	uc, store := newAuth()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.c", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.c", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	user, err := store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	user.Status = entity.UserStatusInactive
	require.NoError(t, store.Users().Update(ctx, user))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.c", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
