// Package stock contiene la aritmética de saldos del almoxarifado (servicio de dominio puro).
package stock

import (
	"math"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
)

// Apply devuelve el saldo resultante de aplicar un movimiento sobre current.
// ENTRADA y AJUSTE suman; SAIDA resta y falla con ErrInsufficientBalance si qty > current.
func Apply(current int64, movementType string, qty int64) (int64, error) {
	if qty <= 0 {
		return current, domain.NewValidationError("quantity", "la cantidad debe ser mayor que cero")
	}
	switch movementType {
	case entity.MovementTypeEntry, entity.MovementTypeAdjustment:
		if qty > math.MaxInt64-current {
			return current, domain.NewValidationError("quantity", "la cantidad excede el saldo máximo representable")
		}
		return current + qty, nil
	case entity.MovementTypeExit:
		if qty > current {
			return current, domain.ErrInsufficientBalance
		}
		return current - qty, nil
	}
	return current, domain.NewValidationError("type", "tipo de movimiento desconocido")
}

// Reconciliation calcula el movimiento compensatorio para que el saldo registrado
// iguale la cantidad contada: diff > 0 → AJUSTE de diff; diff < 0 → SAIDA de |diff|.
// ok es false cuando no hay diferencia.
func Reconciliation(counted, current int64) (movementType string, qty int64, ok bool) {
	diff := counted - current
	switch {
	case diff > 0:
		return entity.MovementTypeAdjustment, diff, true
	case diff < 0:
		return entity.MovementTypeExit, -diff, true
	}
	return "", 0, false
}
