package inventory

import (
	"context"
	"io"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/stock"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
)

// Reconciler lleva el saldo de (item, ubicación) a la cantidad contada con su propio bloqueo
// y transacción. Lo implementa stock.Ledger.
type Reconciler interface {
	Reconcile(ctx context.Context, in stock.ReconcileInput) (*entity.Movement, error)
}

// CountRow fila válida de una planilla de conteo.
type CountRow struct {
	Line     int
	Code     string
	Quantity int64
}

// RowFailure fila que no se pudo leer o aplicar.
type RowFailure struct {
	Line int
	Code string
	Err  error
}

// CountSheetParser lee una planilla de conteos (código, cantidad).
// Las filas mal formadas se devuelven como RowFailure; error solo si el archivo es ilegible.
type CountSheetParser interface {
	Parse(r io.Reader) ([]CountRow, []RowFailure, error)
}
