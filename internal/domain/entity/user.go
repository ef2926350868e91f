package entity

import "time"

// Perfiles válidos para User.
const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERADOR"
	RoleViewer   = "VISUALIZADOR"
)

// Estados de User.
const (
	UserStatusActive   = "ATIVO"
	UserStatusInactive = "INATIVO"
)

// User representa el principal autenticado que firma movimientos e inventarios.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // ADMIN, OPERADOR, VISUALIZADOR
	Status       string // ATIVO, INATIVO
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si r es un perfil conocido.
func IsValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleViewer:
		return true
	}
	return false
}
