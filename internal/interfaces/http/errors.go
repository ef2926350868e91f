package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
)

// LockRetryAfterSeconds valor de Retry-After cuando un saldo sigue bloqueado.
const LockRetryAfterSeconds = 1

// writeError traduce errores de dominio a la respuesta HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	if status == fiber.StatusServiceUnavailable {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(LockRetryAfterSeconds))
	}
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: verr.Message, Field: verr.Field}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"}
	case errors.Is(err, domain.ErrInsufficientBalance):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_BALANCE", Message: domain.ErrInsufficientBalance.Error()}
	case errors.Is(err, domain.ErrInventoryClosed):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INVENTORY_CLOSED", Message: domain.ErrInventoryClosed.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: domain.ErrDuplicate.Error()}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: domain.ErrEmailAlreadyExists.Error()}
	case errors.Is(err, domain.ErrCountsChanged):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "COUNTS_CHANGED", Message: domain.ErrCountsChanged.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: domain.ErrConflict.Error()}
	case errors.Is(err, domain.ErrLockTimeout):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "LOCK_TIMEOUT", Message: domain.ErrLockTimeout.Error()}
	case errors.Is(err, domain.ErrBusy):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "BUSY", Message: domain.ErrBusy.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: domain.ErrForbidden.Error()}
	}
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return ferr.Code, dto.ErrorResponse{Code: "HTTP", Message: ferr.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

// ErrorHandler es el fiber.ErrorHandler de la aplicación: todo error sin manejar pasa por writeError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return writeError(c, err)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}

// page lee limit y offset de la query con valores por defecto.
func page(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}
