package dto

import "time"

// CreateLocationRequest entrada para crear una ubicación. El total nunca se informa: lo mantiene el ledger.
type CreateLocationRequest struct {
	Name         string `json:"name" validate:"required,max=120"`
	MinimumLevel int64  `json:"minimum_level" validate:"min=0"`
}

// UpdateLocationRequest entrada para actualizar una ubicación.
type UpdateLocationRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=120"`
	MinimumLevel *int64  `json:"minimum_level"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CurrentTotal int64     `json:"current_total"`
	MinimumLevel int64     `json:"minimum_level"`
	Central      bool      `json:"central"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
