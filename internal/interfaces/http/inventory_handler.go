package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/inventory"
)

// InventoryHandler maneja ciclos de inventario físico (protegido).
type InventoryHandler struct {
	uc *inventory.ReconciliationUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.ReconciliationUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir ciclo de inventario
// @Tags         inventories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "fecha (opcional) y observación"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventories [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.uc.Create(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromInventory(inv))
}

// List godoc
// @Summary      Listar ciclos de inventario
// @Tags         inventories
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventories [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	p := page(c)
	list, err := h.uc.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.InventoryListResponse{
		Items: make([]dto.InventoryResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: p.Limit, Offset: p.Offset},
	}
	for _, inv := range list {
		out.Items = append(out.Items, dto.FromInventory(inv))
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener ciclo con sus conteos
// @Tags         inventories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ciclo"
// @Success      200  {object}  dto.InventoryDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	inv, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.uc.Items(c.UserContext(), inv.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InventoryDetailResponse{
		InventoryResponse: dto.FromInventory(inv),
		Items:             dto.FromInventoryItems(items),
	})
}

// RecordCount godoc
// @Summary      Registrar conteo
// @Description  Un nuevo conteo del mismo artículo reemplaza al anterior. No modifica saldos.
// @Tags         inventories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del ciclo"
// @Param        body  body  dto.RecordCountRequest  true  "item_id, counted_qty"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/counts [post]
func (h *InventoryHandler) RecordCount(c *fiber.Ctx) error {
	var in dto.RecordCountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ii, err := h.uc.RecordCount(c.UserContext(), c.Params("id"), in.ItemID, in.CountedQty)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InventoryItemResponse{ItemID: ii.ItemID, CountedQty: ii.CountedQty, UpdatedAt: ii.UpdatedAt})
}

// RecordCountByCode godoc
// @Summary      Registrar conteo por código
// @Tags         inventories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del ciclo"
// @Param        body  body  dto.RecordCountByCodeRequest  true  "code, counted_qty"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/counts/code [post]
func (h *InventoryHandler) RecordCountByCode(c *fiber.Ctx) error {
	var in dto.RecordCountByCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ii, err := h.uc.RecordCountByCode(c.UserContext(), c.Params("id"), in.Code, in.CountedQty)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InventoryItemResponse{ItemID: ii.ItemID, CountedQty: ii.CountedQty, UpdatedAt: ii.UpdatedAt})
}

// ImportCounts godoc
// @Summary      Importar planilla de conteos
// @Description  Planilla xlsx con columnas código y quantidade. Las filas con error se informan sin abortar el resto.
// @Tags         inventories
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID del ciclo"
// @Param        file  formData  file    true  "Planilla xlsx"
// @Success      200   {object}  dto.ImportCountsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/counts/import [post]
func (h *InventoryHandler) ImportCounts(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo requerido", Field: "file"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	res, err := h.uc.ImportCounts(c.UserContext(), c.Params("id"), f)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ImportCountsResponse{Applied: res.Applied, Failures: make([]dto.RowFailureResponse, 0, len(res.Failures))}
	for _, rf := range res.Failures {
		out.Failures = append(out.Failures, dto.RowFailureResponse{Line: rf.Line, Code: rf.Code, Error: rf.Err.Error()})
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar ciclo de inventario
// @Description  Concilia cada conteo contra el saldo de la ubicación: sobrante genera AJUSTE,
// @Description  faltante genera SAIDA. Con fallos el ciclo sigue abierto y puede cerrarse de nuevo.
// @Tags         inventories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del ciclo"
// @Param        body  body  dto.CloseInventoryRequest  true  "location_id"
// @Success      200   {object}  dto.CloseInventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/close [post]
func (h *InventoryHandler) Close(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CloseInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.Close(c.UserContext(), c.Params("id"), in.LocationID, userID)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.CloseInventoryResponse{
		Inventory:   dto.FromInventory(res.Inventory),
		Closed:      res.Closed,
		Adjustments: dto.FromMovements(res.Adjustments),
		Failures:    make([]dto.ItemFailureResponse, 0, len(res.Failures)),
	}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, dto.ItemFailureResponse{ItemID: f.ItemID, Code: f.Code, Error: f.Err.Error()})
	}
	return c.JSON(out)
}
