package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/report"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/stock"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain/repository"
)

// MovementHandler registra movimientos y lista el historial (protegido).
type MovementHandler struct {
	ledger  *stock.Ledger
	reports *report.ReportUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(ledger *stock.Ledger, reports *report.ReportUseCase) *MovementHandler {
	return &MovementHandler{ledger: ledger, reports: reports}
}

// Register godoc
// @Summary      Registrar movimiento
// @Description  Entrada, salida o ajuste en la ubicación central. Una salida mayor que el saldo
// @Description  devuelve 409 INSUFFICIENT_BALANCE; un saldo bloqueado por otra operación, 503 LOCK_TIMEOUT.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "item_id, type, quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.ledger.RecordCentralMovement(c.UserContext(), stock.MovementInput{
		UserID:     userID,
		ItemID:     in.ItemID,
		LocationID: in.LocationID,
		Type:       in.Type,
		Quantity:   in.Quantity,
		Note:       in.Note,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovement(mov))
}

// List godoc
// @Summary      Historial de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        item_id      query  string  false  "Artículo"
// @Param        location_id  query  string  false  "Ubicación"
// @Param        from         query  string  false  "Desde (RFC3339 o AAAA-MM-DD)"
// @Param        to           query  string  false  "Hasta (RFC3339 o AAAA-MM-DD, inclusive)"
// @Param        limit        query  int     false  "Límite"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	p := page(c)
	from, err := queryTime(c, "from", false)
	if err != nil {
		return writeError(c, err)
	}
	to, err := queryTime(c, "to", true)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.reports.Movements(c.UserContext(), repository.MovementFilter{
		ItemID:     c.Query("item_id"),
		LocationID: c.Query("location_id"),
		From:       from,
		To:         to,
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// queryTime lee un instante de la query. Con una fecha sola y endOfDay, devuelve el último
// instante de ese día.
func queryTime(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		return nil, domain.NewValidationError(key, "fecha inválida, use RFC3339 o AAAA-MM-DD")
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}
