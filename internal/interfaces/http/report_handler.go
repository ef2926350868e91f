package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/report"
)

// ReportHandler expone el panel y los reportes (protegido).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Panel del almoxarifado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Saldos por debajo del mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Valuation godoc
// @Summary      Valoración del stock
// @Description  Valoración por historial y por saldos lado a lado; con at vacío o futuro incluye las diferencias.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        at   query  string  false  "Fecha de corte (RFC3339 o AAAA-MM-DD)"
// @Success      200  {object}  dto.ValuationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/valuation [get]
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	at, err := queryTime(c, "at", true)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Valuation(c.UserContext(), at)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ValuationPDF godoc
// @Summary      Valoración del stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        at   query  string  false  "Fecha de corte (RFC3339 o AAAA-MM-DD)"
// @Success      200  {file}  binary
// @Router       /api/reports/valuation.pdf [get]
func (h *ReportHandler) ValuationPDF(c *fiber.Ctx) error {
	at, err := queryTime(c, "at", true)
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.uc.ValuationPDF(c.UserContext(), at)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="valoracao.pdf"`)
	return c.Send(pdf)
}
