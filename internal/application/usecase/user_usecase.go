package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return EntityToUserResponse(user), nil
}

// List lista usuarios por nombre.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *EntityToUserResponse(u))
	}
	return out, nil
}

// SetStatus activa o inactiva un usuario. Un usuario inactivo no puede iniciar sesión;
// sus movimientos históricos se conservan.
func (uc *UserUseCase) SetStatus(ctx context.Context, id, status string) (*dto.UserResponse, error) {
	if status != entity.UserStatusActive && status != entity.UserStatusInactive {
		return nil, domain.NewValidationError("status", "estado debe ser ATIVO o INATIVO")
	}
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Status = status
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return EntityToUserResponse(user), nil
}

func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// EntityToUserResponse convierte un usuario a su salida sin hash de password.
func EntityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
