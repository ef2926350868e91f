package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo.
type CreateItemRequest struct {
	Code        string          `json:"code" validate:"required,max=50"`
	Description string          `json:"description" validate:"required,max=100"`
	UnitMeasure string          `json:"unit_measure" validate:"required,max=20"`
	UnitValue   decimal.Decimal `json:"unit_value"`
	SupplierID  *string         `json:"supplier_id,omitempty"`
	MinStock    int64           `json:"min_stock" validate:"min=0"`
	MaxStock    int64           `json:"max_stock" validate:"min=0"`
}

// UpdateItemRequest entrada para actualizar un artículo; campos nil no cambian.
type UpdateItemRequest struct {
	Code        *string          `json:"code" validate:"omitempty,max=50"`
	Description *string          `json:"description" validate:"omitempty,max=100"`
	UnitMeasure *string          `json:"unit_measure" validate:"omitempty,max=20"`
	UnitValue   *decimal.Decimal `json:"unit_value"`
	SupplierID  *string          `json:"supplier_id"`
	MinStock    *int64           `json:"min_stock"`
	MaxStock    *int64           `json:"max_stock"`
	Active      *bool            `json:"active"`
}

// ItemResponse salida de un artículo. TotalQuantity solo viene en búsquedas.
type ItemResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	UnitMeasure   string          `json:"unit_measure"`
	UnitValue     decimal.Decimal `json:"unit_value"`
	SupplierID    *string         `json:"supplier_id,omitempty"`
	MinStock      int64           `json:"min_stock"`
	MaxStock      int64           `json:"max_stock"`
	Active        bool            `json:"active"`
	TotalQuantity *int64          `json:"total_quantity,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ItemBalanceResponse saldo de un artículo en una ubicación con sus límites de stock.
type ItemBalanceResponse struct {
	ItemID       string          `json:"item_id"`
	LocationID   string          `json:"location_id"`
	Quantity     int64           `json:"quantity"`
	UnitMeasure  string          `json:"unit_measure"`
	MinStock     int64           `json:"min_stock"`
	MaxStock     int64           `json:"max_stock"`
	BelowMinimum bool            `json:"below_minimum"`
	Value        decimal.Decimal `json:"value"`
}
