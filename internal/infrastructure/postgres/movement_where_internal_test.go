package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

func TestMovementWhere(t *testing.T) {
	where, args := movementWhere(repository.MovementFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	where, args = movementWhere(repository.MovementFilter{ItemID: "i", From: &from})
	assert.Equal(t, " WHERE item_id = $1 AND created_at >= $2", where)
	assert.Equal(t, []any{"i", from}, args)
}
