package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientBalance = errors.New("saldo insuficiente: la salida dejaría el stock negativo")
	ErrLockTimeout         = errors.New("tiempo de espera agotado por bloqueo del saldo, reintente")
	ErrBusy                = errors.New("sin conexiones libres con la base de datos, reintente")
	ErrInventoryClosed     = errors.New("el inventario ya está cerrado")
	ErrCountsChanged       = errors.New("los conteos del inventario cambiaron durante el cierre")
)

// ValidationError indica entrada mal formada, detectada antes de tomar cualquier bloqueo.
// Field permite a la capa de presentación asociar el error al campo del formulario.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError para el campo indicado.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
