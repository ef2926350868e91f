package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	CNPJ    string `json:"cnpj" validate:"omitempty,max=18"`
	Contact string `json:"contact" validate:"omitempty,max=100"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor.
type UpdateSupplierRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=100"`
	CNPJ    *string `json:"cnpj" validate:"omitempty,max=18"`
	Contact *string `json:"contact" validate:"omitempty,max=100"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
