package stock

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

// Synchronizer mantiene locations.current_total igual a la suma de los saldos de la ubicación.
// Se invoca de forma explícita desde el ledger, nunca como efecto colateral de guardar un saldo.
type Synchronizer struct {
	txRunner     TxRunner
	locationRepo repository.LocationRepository
	log          zerolog.Logger
}

// NewSynchronizer construye el sincronizador.
func NewSynchronizer(txRunner TxRunner, locationRepo repository.LocationRepository, log zerolog.Logger) *Synchronizer {
	return &Synchronizer{
		txRunner:     txRunner,
		locationRepo: locationRepo,
		log:          log,
	}
}

// Resync recalcula el total de locationID con los repositorios de la transacción del llamador.
// Bloquea primero la fila de la ubicación para que la suma vea los saldos ya confirmados
// por otros escritores de la misma ubicación. Es idempotente.
func (s *Synchronizer) Resync(
	ctx context.Context,
	balanceRepo repository.BalanceRepository,
	locationRepo repository.LocationRepository,
	locationID string,
) (int64, error) {
	loc, err := locationRepo.LockForUpdate(ctx, locationID)
	if err != nil {
		return 0, err
	}
	if loc == nil {
		return 0, domain.ErrNotFound
	}
	total, err := balanceRepo.SumByLocation(ctx, locationID)
	if err != nil {
		return 0, err
	}
	if total == loc.CurrentTotal {
		return total, nil
	}
	if err := locationRepo.UpdateCurrentTotal(ctx, locationID, total); err != nil {
		return 0, err
	}
	return total, nil
}

// ResyncAll recalcula todas las ubicaciones, una transacción por ubicación.
// Devuelve los totales resultantes por ID de ubicación.
func (s *Synchronizer) ResyncAll(ctx context.Context) (map[string]int64, error) {
	locations, err := s.locationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]int64, len(locations))
	for _, loc := range locations {
		var total int64
		err := s.txRunner.Run(ctx, func(
			_ repository.MovementRepository,
			balanceRepo repository.BalanceRepository,
			locationRepo repository.LocationRepository,
		) error {
			t, err := s.Resync(ctx, balanceRepo, locationRepo, loc.ID)
			total = t
			return err
		})
		if err != nil {
			return totals, fmt.Errorf("resync ubicación %s: %w", loc.ID, err)
		}
		if total != loc.CurrentTotal {
			s.log.Warn().
				Str("location_id", loc.ID).
				Int64("stored", loc.CurrentTotal).
				Int64("computed", total).
				Msg("total de ubicación corregido")
		}
		totals[loc.ID] = total
	}
	return totals, nil
}
