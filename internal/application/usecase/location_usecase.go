package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

// LocationUseCase casos de uso para ubicaciones. CurrentTotal nunca se escribe por aquí.
type LocationUseCase struct {
	repo              repository.LocationRepository
	centralLocationID string
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, centralLocationID string) *LocationUseCase {
	return &LocationUseCase{repo: repo, centralLocationID: centralLocationID}
}

// Create crea una ubicación con total 0.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	now := time.Now()
	loc := &entity.Location{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		MinimumLevel: in.MinimumLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := validateLocation(loc); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return uc.toResponse(loc), nil
}

// GetByID obtiene una ubicación.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	loc, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(loc), nil
}

// List lista las ubicaciones por nombre.
func (uc *LocationUseCase) List(ctx context.Context) ([]dto.LocationResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, loc := range list {
		out = append(out, *uc.toResponse(loc))
	}
	return out, nil
}

// Update cambia nombre y nivel mínimo.
func (uc *LocationUseCase) Update(ctx context.Context, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	loc, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		loc.Name = strings.TrimSpace(*in.Name)
	}
	if in.MinimumLevel != nil {
		loc.MinimumLevel = *in.MinimumLevel
	}
	if err := validateLocation(loc); err != nil {
		return nil, err
	}
	loc.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return uc.toResponse(loc), nil
}

func (uc *LocationUseCase) get(ctx context.Context, id string) (*entity.Location, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	loc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	return loc, nil
}

func validateLocation(loc *entity.Location) error {
	switch {
	case loc.Name == "":
		return domain.NewValidationError("name", "nombre requerido")
	case utf8.RuneCountInString(loc.Name) > 120:
		return domain.NewValidationError("name", "el nombre supera 120 caracteres")
	case loc.MinimumLevel < 0:
		return domain.NewValidationError("minimum_level", "el nivel mínimo no puede ser negativo")
	}
	return nil
}

func (uc *LocationUseCase) toResponse(loc *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:           loc.ID,
		Name:         loc.Name,
		CurrentTotal: loc.CurrentTotal,
		MinimumLevel: loc.MinimumLevel,
		Central:      loc.ID == uc.centralLocationID,
		CreatedAt:    loc.CreatedAt,
		UpdatedAt:    loc.UpdatedAt,
	}
}
