package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/application/pos"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/venta"
)

// respondError mapea errores de dominio a códigos HTTP con cuerpo uniforme.
func respondError(c *fiber.Ctx, err error) error {
	var validacion *domain.ErrorValidacion
	if errors.As(err, &validacion) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "validación fallida", Detalles: validacion.Errores,
		})
	}
	var cobro *pos.ErrorCobroBloqueado
	if errors.As(err, &cobro) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "COBRO_BLOQUEADO", Message: "la venta no puede cobrarse", Detalles: cobro.Razones,
		})
	}
	var sinLote *venta.ErrorSinLoteElegible
	if errors.As(err, &sinLote) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SIN_LOTE", Message: err.Error()})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_INSUFICIENTE", Message: err.Error()})
	case errors.Is(err, domain.ErrVentaFinalizando):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "VENTA_FINALIZANDO", Message: err.Error()})
	case errors.Is(err, domain.ErrVentaVacia):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VENTA_VACIA", Message: err.Error()})
	case errors.Is(err, domain.ErrCorteCerrado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CORTE_CERRADO", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
