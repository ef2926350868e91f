package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/usecase"
)

// ItemHandler maneja el catálogo de artículos (protegido).
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear artículo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByCode godoc
// @Summary      Obtener artículo por código
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del artículo"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/code/{code} [get]
func (h *ItemHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del artículo"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar artículo
// @Description  Falla con 409 mientras existan movimientos o conteos del artículo.
// @Tags         items
// @Security     Bearer
// @Param        id   path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Search godoc
// @Summary      Buscar artículos
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        q            query  string  false  "Texto (código, descripción o unidad; sin acentos)"
// @Param        supplier_id  query  string  false  "Proveedor"
// @Param        limit        query  int     false  "Límite"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) Search(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.uc.Search(c.UserContext(), c.Query("q"), c.Query("supplier_id"), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Balance godoc
// @Summary      Saldo de un artículo en una ubicación
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id           path   string  true   "ID del artículo"
// @Param        location_id  query  string  false  "Ubicación (vacío = central)"
// @Success      200  {object}  dto.ItemBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/balance [get]
func (h *ItemHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.Balance(c.UserContext(), c.Params("id"), c.Query("location_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
