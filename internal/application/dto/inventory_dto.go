package dto

import "time"

// RegisterMovementRequest body para POST /api/movements. Sin location_id se usa la ubicación central.
type RegisterMovementRequest struct {
	ItemID     string `json:"item_id" validate:"required,uuid"`
	LocationID string `json:"location_id,omitempty"`
	Type       string `json:"type" validate:"required,oneof=ENTRADA SAIDA AJUSTE"`
	Quantity   int64  `json:"quantity" validate:"required,min=1"`
	Note       string `json:"note" validate:"omitempty,max=100"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	ItemID        string    `json:"item_id"`
	LocationID    string    `json:"location_id"`
	UserID        string    `json:"user_id"`
	Quantity      int64     `json:"quantity"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateInventoryRequest abre un ciclo de inventario. Date vacío = hoy.
type CreateInventoryRequest struct {
	Date *time.Time `json:"date,omitempty"`
	Note string     `json:"note" validate:"omitempty,max=100"`
}

// InventoryResponse salida de un ciclo de inventario.
type InventoryResponse struct {
	ID               string     `json:"id"`
	Date             time.Time  `json:"date"`
	UserID           string     `json:"user_id"`
	Note             string     `json:"note,omitempty"`
	Status           string     `json:"status"`
	TargetLocationID *string    `json:"target_location_id,omitempty"`
	ClosedAt         *time.Time `json:"closed_at,omitempty"`
	ClosedBy         *string    `json:"closed_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// InventoryListResponse lista paginada de ciclos.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// InventoryItemResponse cantidad contada de un artículo.
type InventoryItemResponse struct {
	ItemID     string    `json:"item_id"`
	CountedQty int64     `json:"counted_qty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// InventoryDetailResponse ciclo con sus conteos.
type InventoryDetailResponse struct {
	InventoryResponse
	Items []InventoryItemResponse `json:"items"`
}

// RecordCountRequest body para POST /api/inventories/:id/counts.
type RecordCountRequest struct {
	ItemID     string `json:"item_id" validate:"required,uuid"`
	CountedQty int64  `json:"counted_qty" validate:"min=0"`
}

// RecordCountByCodeRequest body para POST /api/inventories/:id/counts/code (lector de código).
type RecordCountByCodeRequest struct {
	Code       string `json:"code" validate:"required"`
	CountedQty int64  `json:"counted_qty" validate:"min=0"`
}

// ImportCountsResponse resultado de importar una planilla de conteos.
type ImportCountsResponse struct {
	Applied  int                  `json:"applied"`
	Failures []RowFailureResponse `json:"failures"`
}

// RowFailureResponse fila de la planilla que no se pudo aplicar.
type RowFailureResponse struct {
	Line  int    `json:"line"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

// CloseInventoryRequest body para POST /api/inventories/:id/close.
type CloseInventoryRequest struct {
	LocationID string `json:"location_id" validate:"required,uuid"`
}

// ItemFailureResponse artículo que no se pudo conciliar al cerrar.
type ItemFailureResponse struct {
	ItemID string `json:"item_id"`
	Code   string `json:"code"`
	Error  string `json:"error"`
}

// CloseInventoryResponse resultado del cierre: ajustes emitidos y fallos por artículo.
type CloseInventoryResponse struct {
	Inventory   InventoryResponse     `json:"inventory"`
	Closed      bool                  `json:"closed"`
	Adjustments []MovementResponse    `json:"adjustments"`
	Failures    []ItemFailureResponse `json:"failures"`
}
