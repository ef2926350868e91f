package repository

import (
	"context"
	"time"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
)

// MovementFilter criterios de listado de movimientos (orden: fecha descendente).
type MovementFilter struct {
	ItemID     string
	LocationID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// MovementRepository define el puerto de persistencia para movimientos (solo inserción).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	Count(ctx context.Context, filter MovementFilter) (int, error)
}
