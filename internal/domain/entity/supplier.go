package entity

import "time"

// Supplier representa un proveedor (fornecedor) de artículos.
type Supplier struct {
	ID        string
	Name      string
	CNPJ      string
	Contact   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
