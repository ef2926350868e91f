package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/docs"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/auth"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/inventory"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/report"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/stock"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/usecase"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/infrastructure/excel"
	infrapdf "github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/infrastructure/pdf"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/infrastructure/postgres"
	httpRouter "github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/interfaces/http"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/pkg/config"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/pkg/logger"
)

// @title                       Almoxarifado API
// @version                     1.0
// @description                 Gestión de almoxarifado: artículos, ubicaciones, movimientos, inventarios y reportes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("central_location_id", cfg.Almox.CentralLocationID).
		Int("lock_timeout_ms", cfg.Almox.LockTimeoutMS).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(ctx, pool, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.Almox.LockTimeout())

	sync := stock.NewSynchronizer(txRunner, locationRepo, log.Component("sync"))
	ledger := stock.NewLedger(
		txRunner, itemRepo, locationRepo, balanceRepo, sync,
		cfg.Almox.CentralLocationID, log.Component("ledger"),
	)
	if cfg.Almox.ResyncOnStart {
		if _, err := sync.ResyncAll(ctx); err != nil {
			log.Fatal().Err(err).Msg("recalcular totales de ubicaciones")
		}
	}

	inventoryUC := inventory.NewReconciliationUseCase(
		inventoryRepo, itemRepo, locationRepo, ledger,
		excel.NewCountParser(), log.Component("inventory"),
	)
	reportUC := report.NewReportUseCase(
		reportRepo, balanceRepo, movementRepo,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almoxarifado API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      usecase.NewUserUseCase(userRepo),
		ItemUC:      usecase.NewItemUseCase(itemRepo, supplierRepo, locationRepo, balanceRepo, cfg.Almox.CentralLocationID),
		SupplierUC:  usecase.NewSupplierUseCase(supplierRepo),
		LocationUC:  usecase.NewLocationUseCase(locationRepo, cfg.Almox.CentralLocationID),
		Ledger:      ledger,
		InventoryUC: inventoryUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
