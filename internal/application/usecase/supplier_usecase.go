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

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	now := time.Now()
	sp := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		CNPJ:      strings.TrimSpace(in.CNPJ),
		Contact:   strings.TrimSpace(in.Contact),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validateSupplier(sp); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, sp); err != nil {
		return nil, err
	}
	return toSupplierResponse(sp), nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	sp, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(sp), nil
}

// Update actualiza un proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	sp, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		sp.Name = strings.TrimSpace(*in.Name)
	}
	if in.CNPJ != nil {
		sp.CNPJ = strings.TrimSpace(*in.CNPJ)
	}
	if in.Contact != nil {
		sp.Contact = strings.TrimSpace(*in.Contact)
	}
	if err := validateSupplier(sp); err != nil {
		return nil, err
	}
	sp.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, sp); err != nil {
		return nil, err
	}
	return toSupplierResponse(sp), nil
}

// Delete elimina un proveedor; sus artículos quedan sin proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List lista proveedores por nombre.
func (uc *SupplierUseCase) List(ctx context.Context, limit, offset int) (*dto.SupplierListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, sp := range list {
		items = append(items, *toSupplierResponse(sp))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *SupplierUseCase) get(ctx context.Context, id string) (*entity.Supplier, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	sp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, domain.ErrNotFound
	}
	return sp, nil
}

func validateSupplier(sp *entity.Supplier) error {
	switch {
	case sp.Name == "":
		return domain.NewValidationError("name", "nombre requerido")
	case utf8.RuneCountInString(sp.Name) > 100:
		return domain.NewValidationError("name", "el nombre supera 100 caracteres")
	case utf8.RuneCountInString(sp.CNPJ) > 18:
		return domain.NewValidationError("cnpj", "el CNPJ supera 18 caracteres")
	case utf8.RuneCountInString(sp.Contact) > 100:
		return domain.NewValidationError("contact", "el contacto supera 100 caracteres")
	}
	return nil
}

func toSupplierResponse(sp *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        sp.ID,
		Name:      sp.Name,
		CNPJ:      sp.CNPJ,
		Contact:   sp.Contact,
		CreatedAt: sp.CreatedAt,
		UpdatedAt: sp.UpdatedAt,
	}
}
