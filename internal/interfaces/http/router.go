package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/auth"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/inventory"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/report"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/stock"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/usecase"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ItemUC      *usecase.ItemUseCase
	SupplierUC  *usecase.SupplierUseCase
	LocationUC  *usecase.LocationUseCase
	Ledger      *stock.Ledger
	InventoryUC *inventory.ReconciliationUseCase
	ReportUC    *report.ReportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	readers := RequireRole(entity.RoleAdmin, entity.RoleOperator, entity.RoleViewer)
	operators := RequireRole(entity.RoleAdmin, entity.RoleOperator)
	admins := RequireRole(entity.RoleAdmin)

	// Auth: login público, alta de usuarios solo ADMIN
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), admins, authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), readers)

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", admins, userHandler.List)
	users.Patch("/:id/status", admins, userHandler.SetStatus)

	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.Search)
	items.Get("/code/:code", itemHandler.GetByCode)
	items.Get("/:id", itemHandler.GetByID)
	items.Get("/:id/balance", itemHandler.Balance)
	items.Post("/", admins, itemHandler.Create)
	items.Put("/:id", admins, itemHandler.Update)
	items.Delete("/:id", admins, itemHandler.Delete)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", admins, supplierHandler.Create)
	suppliers.Put("/:id", admins, supplierHandler.Update)
	suppliers.Delete("/:id", admins, supplierHandler.Delete)

	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Post("/", admins, locationHandler.Create)
	locations.Put("/:id", admins, locationHandler.Update)

	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.Ledger, deps.ReportUC)
	movements.Get("/", movementHandler.List)
	movements.Post("/", operators, movementHandler.Register)

	inventories := protected.Group("/inventories")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventories.Get("/", inventoryHandler.List)
	inventories.Get("/:id", inventoryHandler.Get)
	inventories.Post("/", operators, inventoryHandler.Create)
	inventories.Post("/:id/counts", operators, inventoryHandler.RecordCount)
	inventories.Post("/:id/counts/code", operators, inventoryHandler.RecordCountByCode)
	inventories.Post("/:id/counts/import", operators, inventoryHandler.ImportCounts)
	inventories.Post("/:id/close", operators, inventoryHandler.Close)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/valuation", reportHandler.Valuation)
	reports.Get("/valuation.pdf", reportHandler.ValuationPDF)
}
