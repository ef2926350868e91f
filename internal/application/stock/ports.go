package stock

import (
	"context"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback: ni saldo, ni movimiento, ni total de ubicación quedan escritos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
		locationRepo repository.LocationRepository,
	) error) error
}
