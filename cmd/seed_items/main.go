// seed_items carga el catálogo de artículos desde una planilla CSV separada por ';'
// (codigo;descricao;unidade;valor), tal como la exporta el sistema de patrimonio.
//
// Uso: go run ./cmd/seed_items [-utf8] [ruta/catalogo.csv]
// Por defecto lee catalogo.csv en ISO-8859-1. Los artículos existentes (mismo código) se actualizan.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/usecase"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/infrastructure/postgres"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/pkg/config"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/pkg/logger"
)

func main() {
	isUTF8 := flag.Bool("utf8", false, "el archivo ya está en UTF-8")
	flag.Parse()
	path := "catalogo.csv"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "seed_items"})

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("abrir CSV")
	}
	defer f.Close()

	rows, failures := parseCatalog(f, *isUTF8)
	for _, e := range failures {
		log.Warn().Err(e).Msg("fila ignorada")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, "seed_items")
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	uc := usecase.NewItemUseCase(
		itemRepo,
		postgres.NewSupplierRepository(pool),
		postgres.NewLocationRepository(pool),
		postgres.NewBalanceRepository(pool),
		cfg.Almox.CentralLocationID,
	)

	var created, updated, failed int
	for _, r := range rows {
		isNew, err := upsert(ctx, uc, r)
		switch {
		case err != nil:
			failed++
			log.Warn().Err(err).Str("code", r.Code).Msg("artículo no cargado")
		case isNew:
			created++
		default:
			updated++
		}
	}
	log.Info().
		Int("created", created).
		Int("updated", updated).
		Int("failed", failed+len(failures)).
		Msg("catálogo cargado")
}

func upsert(ctx context.Context, uc *usecase.ItemUseCase, in dto.CreateItemRequest) (bool, error) {
	existing, err := uc.GetByCode(ctx, in.Code)
	if errors.Is(err, domain.ErrNotFound) {
		_, err = uc.Create(ctx, in)
		return true, err
	}
	if err != nil {
		return false, err
	}
	_, err = uc.Update(ctx, existing.ID, dto.UpdateItemRequest{
		Description: &in.Description,
		UnitMeasure: &in.UnitMeasure,
		UnitValue:   &in.UnitValue,
	})
	return false, err
}

// parseCatalog lee las filas del CSV. La primera fila es encabezado si su última columna no es un valor.
func parseCatalog(r io.Reader, isUTF8 bool) ([]dto.CreateItemRequest, []error) {
	if !isUTF8 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		out      []dto.CreateItemRequest
		failures []error
	)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			failures = append(failures, fmt.Errorf("línea %d: %w", line, err))
			continue
		}
		if len(rec) < 4 {
			if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
				continue
			}
			failures = append(failures, fmt.Errorf("línea %d: se esperaban 4 columnas, hay %d", line, len(rec)))
			continue
		}
		value, err := parseMoney(rec[3])
		if err != nil {
			if line == 1 {
				continue
			}
			failures = append(failures, fmt.Errorf("línea %d: valor %q inválido", line, rec[3]))
			continue
		}
		out = append(out, dto.CreateItemRequest{
			Code:        strings.TrimSpace(rec[0]),
			Description: strings.TrimSpace(rec[1]),
			UnitMeasure: strings.ToUpper(strings.TrimSpace(rec[2])),
			UnitValue:   value,
		})
	}
	return out, failures
}

// parseMoney acepta "1.234,56", "R$ 12,50" y "12.50".
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
