package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para artículos. Los saldos solo cambian vía movimientos.
type ItemUseCase struct {
	repo              repository.ItemRepository
	supplierRepo      repository.SupplierRepository
	locationRepo      repository.LocationRepository
	balanceRepo       repository.BalanceRepository
	centralLocationID string
}

// NewItemUseCase construye el caso de uso. centralLocationID se usa cuando la consulta de saldo no indica ubicación.
func NewItemUseCase(
	repo repository.ItemRepository,
	supplierRepo repository.SupplierRepository,
	locationRepo repository.LocationRepository,
	balanceRepo repository.BalanceRepository,
	centralLocationID string,
) *ItemUseCase {
	return &ItemUseCase{
		repo:              repo,
		supplierRepo:      supplierRepo,
		locationRepo:      locationRepo,
		balanceRepo:       balanceRepo,
		centralLocationID: centralLocationID,
	}
}

// Create crea un artículo. Devuelve domain.ErrDuplicate si el código ya existe.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Code:        strings.TrimSpace(in.Code),
		Description: strings.TrimSpace(in.Description),
		UnitMeasure: strings.TrimSpace(in.UnitMeasure),
		UnitValue:   in.UnitValue,
		SupplierID:  in.SupplierID,
		MinStock:    in.MinStock,
		MaxStock:    in.MaxStock,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	if err := uc.ensureSupplier(ctx, item.SupplierID); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCode(ctx, item.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo por ID.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByCode obtiene un artículo por código (lector de código de barras).
func (uc *ItemUseCase) GetByCode(ctx context.Context, code string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// Update actualiza los datos de catálogo de un artículo.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Code != nil {
		item.Code = strings.TrimSpace(*in.Code)
	}
	if in.Description != nil {
		item.Description = strings.TrimSpace(*in.Description)
	}
	if in.UnitMeasure != nil {
		item.UnitMeasure = strings.TrimSpace(*in.UnitMeasure)
	}
	if in.UnitValue != nil {
		item.UnitValue = *in.UnitValue
	}
	if in.SupplierID != nil {
		if *in.SupplierID == "" {
			item.SupplierID = nil
		} else {
			item.SupplierID = in.SupplierID
		}
	}
	if in.MinStock != nil {
		item.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		item.MaxStock = *in.MaxStock
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	if err := uc.ensureSupplier(ctx, item.SupplierID); err != nil {
		return nil, err
	}
	if other, err := uc.repo.GetByCode(ctx, item.Code); err != nil {
		return nil, err
	} else if other != nil && other.ID != item.ID {
		return nil, domain.ErrDuplicate
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete elimina un artículo. Falla con domain.ErrConflict si tiene movimientos o conteos.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Search busca por código, descripción o unidad, sin distinguir acentos ni mayúsculas.
func (uc *ItemUseCase) Search(ctx context.Context, query, supplierID string, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.Search(ctx, repository.ItemFilter{
		Query:      strings.TrimSpace(query),
		SupplierID: supplierID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		resp := toItemResponse(it.Item)
		total := it.TotalQuantity
		resp.TotalQuantity = &total
		items = append(items, *resp)
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Balance devuelve el saldo del artículo en locationID (vacío = ubicación central) con sus límites.
func (uc *ItemUseCase) Balance(ctx context.Context, itemID, locationID string) (*dto.ItemBalanceResponse, error) {
	item, err := uc.get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if locationID == "" {
		locationID = uc.centralLocationID
	}
	if _, err := uuid.Parse(locationID); err != nil {
		return nil, domain.NewValidationError("location_id", "identificador de ubicación inválido")
	}
	loc, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	bal, err := uc.balanceRepo.Get(ctx, item.ID, loc.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ItemBalanceResponse{
		ItemID:       item.ID,
		LocationID:   loc.ID,
		Quantity:     bal.Quantity,
		UnitMeasure:  item.UnitMeasure,
		MinStock:     item.MinStock,
		MaxStock:     item.MaxStock,
		BelowMinimum: bal.Quantity < item.MinStock,
		Value:        item.StockValue(bal.Quantity),
	}, nil
}

func (uc *ItemUseCase) get(ctx context.Context, id string) (*entity.Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (uc *ItemUseCase) ensureSupplier(ctx context.Context, supplierID *string) error {
	if supplierID == nil {
		return nil
	}
	if _, err := uuid.Parse(*supplierID); err != nil {
		return domain.NewValidationError("supplier_id", "identificador de proveedor inválido")
	}
	sp, err := uc.supplierRepo.GetByID(ctx, *supplierID)
	if err != nil {
		return err
	}
	if sp == nil {
		return domain.NewValidationError("supplier_id", "proveedor inexistente")
	}
	return nil
}

func validateItem(item *entity.Item) error {
	switch {
	case item.Code == "":
		return domain.NewValidationError("code", "código requerido")
	case utf8.RuneCountInString(item.Code) > 50:
		return domain.NewValidationError("code", "el código supera 50 caracteres")
	case item.Description == "":
		return domain.NewValidationError("description", "descripción requerida")
	case utf8.RuneCountInString(item.Description) > 100:
		return domain.NewValidationError("description", "la descripción supera 100 caracteres")
	case item.UnitMeasure == "":
		return domain.NewValidationError("unit_measure", "unidad requerida")
	case utf8.RuneCountInString(item.UnitMeasure) > 20:
		return domain.NewValidationError("unit_measure", "la unidad supera 20 caracteres")
	case item.UnitValue.LessThan(decimal.Zero):
		return domain.NewValidationError("unit_value", "el valor unitario no puede ser negativo")
	case item.MinStock < 0:
		return domain.NewValidationError("min_stock", "el stock mínimo no puede ser negativo")
	case item.MaxStock < 0:
		return domain.NewValidationError("max_stock", "el stock máximo no puede ser negativo")
	case item.MaxStock > 0 && item.MaxStock < item.MinStock:
		return domain.NewValidationError("max_stock", "el stock máximo debe ser mayor o igual al mínimo")
	}
	return nil
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:          i.ID,
		Code:        i.Code,
		Description: i.Description,
		UnitMeasure: i.UnitMeasure,
		UnitValue:   i.UnitValue,
		SupplierID:  i.SupplierID,
		MinStock:    i.MinStock,
		MaxStock:    i.MaxStock,
		Active:      i.Active,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
