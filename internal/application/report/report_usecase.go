// Package report expone consultas de solo lectura: panel, stock bajo, historial y valoración.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

// RecentMovementsLimit cantidad de movimientos que muestra el panel.
const RecentMovementsLimit = 8

// ValuationPDFGenerator genera el PDF de la valoración.
type ValuationPDFGenerator interface {
	GenerateValuationPDF(ctx context.Context, report *dto.ValuationResponse) ([]byte, error)
}

// ReportUseCase consultas de reportes.
type ReportUseCase struct {
	reportRepo   repository.ReportRepository
	balanceRepo  repository.BalanceRepository
	movementRepo repository.MovementRepository
	pdf          ValuationPDFGenerator
	now          func() time.Time
}

// NewReportUseCase construye el caso de uso. pdf puede ser nil si no se exporta PDF.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	balanceRepo repository.BalanceRepository,
	movementRepo repository.MovementRepository,
	pdf ValuationPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:   reportRepo,
		balanceRepo:  balanceRepo,
		movementRepo: movementRepo,
		pdf:          pdf,
		now:          time.Now,
	}
}

// Dashboard cantidad de artículos, valor total, saldos críticos y últimos movimientos.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	summary, err := uc.reportRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	low, err := uc.balanceRepo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := uc.movementRepo.List(ctx, repository.MovementFilter{Limit: RecentMovementsLimit})
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		ItemCount:       summary.ItemCount,
		TotalValue:      summary.TotalValue,
		Critical:        dto.FromLowStock(low),
		RecentMovements: dto.FromMovements(recent),
	}, nil
}

// LowStock saldos por debajo del mínimo de su ubicación.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.LowStockResponse, error) {
	low, err := uc.balanceRepo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromLowStock(low), nil
}

// Movements historial paginado, más recientes primero.
func (uc *ReportUseCase) Movements(ctx context.Context, filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, errInvalidRange
	}
	list, err := uc.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.movementRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Items: dto.FromMovements(list),
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

// Valuation calcula la valoración por dos vías independientes, leídas de una misma instantánea:
// sumando el historial de movimientos hasta at y usando los saldos actuales. Si at no es
// anterior a ahora se suma todo el historial y se informan los artículos en que ambas difieren.
func (uc *ReportUseCase) Valuation(ctx context.Context, at *time.Time) (*dto.ValuationResponse, error) {
	now := uc.now()
	when := now
	if at != nil && !at.IsZero() {
		when = *at
	}
	current := !when.Before(now)
	cutoff := &when
	if current {
		cutoff = nil
	}
	ledger, balance, err := uc.reportRepo.Valuation(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	resp := &dto.ValuationResponse{
		At:      when,
		Ledger:  toSection(ledger),
		Balance: toSection(balance),
		Drift:   []dto.DriftLine{},
	}
	if current {
		resp.DriftChecked = true
		resp.Drift = drift(ledger, balance)
	}
	return resp, nil
}

// ValuationPDF genera el PDF de la valoración en at.
func (uc *ReportUseCase) ValuationPDF(ctx context.Context, at *time.Time) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("generador de PDF no configurado")
	}
	v, err := uc.Valuation(ctx, at)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateValuationPDF(ctx, v)
}

func toSection(lines []repository.ValuationLine) dto.ValuationSection {
	sec := dto.ValuationSection{
		Lines: make([]dto.ValuationLineResponse, 0, len(lines)),
		Total: decimal.Zero,
	}
	for _, l := range lines {
		sec.Lines = append(sec.Lines, dto.ValuationLineResponse{
			ItemID:      l.ItemID,
			ItemCode:    l.ItemCode,
			Description: l.Description,
			UnitMeasure: l.UnitMeasure,
			UnitValue:   l.UnitValue,
			Quantity:    l.Quantity,
			Value:       l.Value,
		})
		sec.Total = sec.Total.Add(l.Value)
	}
	return sec
}

func drift(ledger, balance []repository.ValuationLine) []dto.DriftLine {
	type pair struct {
		code    string
		ledger  int64
		balance int64
	}
	byItem := make(map[string]*pair)
	order := make([]string, 0, len(ledger))
	get := func(id, code string) *pair {
		p, ok := byItem[id]
		if !ok {
			p = &pair{code: code}
			byItem[id] = p
			order = append(order, id)
		}
		return p
	}
	for _, l := range ledger {
		get(l.ItemID, l.ItemCode).ledger = l.Quantity
	}
	for _, l := range balance {
		get(l.ItemID, l.ItemCode).balance = l.Quantity
	}
	out := []dto.DriftLine{}
	for _, id := range order {
		p := byItem[id]
		if p.ledger != p.balance {
			out = append(out, dto.DriftLine{ItemID: id, ItemCode: p.code, LedgerQty: p.ledger, BalanceQty: p.balance})
		}
	}
	return out
}
