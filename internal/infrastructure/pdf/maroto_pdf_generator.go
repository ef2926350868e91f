// Package pdf genera el reporte de valoración del almoxarifado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + institución  │  Fecha de corte            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Descripción | Un. | Cant. | V.Unit | Valor │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: historial / saldos                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DIFERENCIAS: artículos con historial != saldo              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.ValuationPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	institution string
}

// NewMarotoPDFGenerator construye el generador. institution aparece en la cabecera.
func NewMarotoPDFGenerator(institution string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{institution: institution}
}

// GenerateValuationPDF genera el PDF y devuelve sus bytes. La tabla usa los saldos;
// el total del historial se muestra al lado para comparar.
func (g *MarotoPDFGenerator) GenerateValuationPDF(_ context.Context, v *dto.ValuationResponse) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("pdf: valoración vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Valoração do almoxarifado", true).
		WithAuthor(g.institution, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.institution, v))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(v.Balance.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(v))

	if v.DriftChecked && len(v.Drift) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(driftRows(v.Drift)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(institution string, v *dto.ValuationResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("VALORAÇÃO DO ESTOQUE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(institution, "Almoxarifado"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Data de corte", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(v.At.Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Descrição", 4, align.Left),
		h("Un.", 1, align.Center),
		h("Qtd.", 1, align.Right),
		h("V. unit.", 2, align.Right),
		h("Valor", 2, align.Right),
	)
}

func tableDetailRows(lines []dto.ValuationLineResponse) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(l.ItemCode, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(l.UnitMeasure, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(l.UnitValue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(l.Value), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(v *dto.ValuationResponse) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 6,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 6,
		})
	}

	return row.New(16).Add(
		col.New(4),
		col.New(4).Add(
			label("Total pelo histórico:"),
			grandLabel("Total pelos saldos:"),
		),
		col.New(4).Add(
			value(formatMoney(v.Ledger.Total)),
			grandValue(formatMoney(v.Balance.Total)),
		),
	)
}

func driftRows(drift []dto.DriftLine) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("DIVERGÊNCIAS ENTRE HISTÓRICO E SALDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorAlert, Top: 1,
			}),
		)),
	}
	for _, d := range drift {
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(d.ItemCode, props.Text{Size: 8, Top: 0.5, Left: 1})),
			col.New(4).Add(text.New(fmt.Sprintf("histórico: %d", d.LedgerQty), props.Text{Size: 8, Top: 0.5, Align: align.Right})),
			col.New(4).Add(text.New(fmt.Sprintf("saldo: %d", d.BalanceQty), props.Text{Size: 8, Top: 0.5, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea en reales con punto de miles y coma decimal.
// Ej: 1234567.5 → "R$ 1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "R$ " + string(buf) + "," + frac
}
