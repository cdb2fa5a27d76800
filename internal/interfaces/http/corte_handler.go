package http

import (
	"github.com/gofiber/fiber/v2"

	appcorte "github.com/tu-usuario/farmacia-pos/internal/application/corte"
	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
)

// CorteHandler maneja las peticiones HTTP del corte de caja.
type CorteHandler struct {
	uc *appcorte.UseCase
}

// NewCorteHandler construye el handler.
func NewCorteHandler(uc *appcorte.UseCase) *CorteHandler {
	return &CorteHandler{uc: uc}
}

// Actual godoc
// @Summary      Corte abierto de la caja (se abre si no existe)
// @Tags         corte
// @Produce      json
// @Success      200  {object}  dto.CorteResponse
// @Router       /api/corte/actual [get]
func (h *CorteHandler) Actual(c *fiber.Ctx) error {
	corte, err := h.uc.Actual(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCorteResponse(corte))
}

// AlertaRetiro godoc
// @Summary      Alerta de exceso de efectivo en el cajón
// @Tags         corte
// @Produce      json
// @Success      200  {object}  dto.AlertaEfectivoResponse
// @Router       /api/corte/alerta-retiro [get]
func (h *CorteHandler) AlertaRetiro(c *fiber.Ctx) error {
	alerta, err := h.uc.AlertaRetiro(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AlertaEfectivoResponse{Activa: alerta.Activa, Limite: alerta.Limite})
}

// RegistrarRetiro godoc
// @Summary      Registrar retiro de efectivo autorizado
// @Tags         corte
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RetiroRequest  true  "Datos del retiro"
// @Success      201   {object}  dto.RetiroResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/corte/retiros [post]
func (h *CorteHandler) RegistrarRetiro(c *fiber.Ctx) error {
	var in dto.RetiroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	retiro, err := h.uc.RegistrarRetiro(c.Context(), appcorte.RetiroInput{
		Monto:         in.Monto,
		Motivo:        in.Motivo,
		AutorizadoPor: in.AutorizadoPor,
		PinSupervisor: in.PinSupervisor,
		Observaciones: in.Observaciones,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToRetiroResponse(retiro))
}

// Cerrar godoc
// @Summary      Cerrar el corte con conteo ciego
// @Tags         corte
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CierreCorteRequest  true  "Desglose de denominaciones"
// @Success      200   {object}  dto.CorteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/corte/cerrar [post]
func (h *CorteHandler) Cerrar(c *fiber.Ctx) error {
	var in dto.CierreCorteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	corte, err := h.uc.Cerrar(c.Context(), appcorte.CierreInput{
		Desglose:      in.Desglose.ToDesglose(),
		Observaciones: in.Observaciones,
		CajeroNombre:  in.CajeroNombre,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCorteResponse(corte))
}

// Historial godoc
// @Summary      Historial de cortes cerrados
// @Tags         corte
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.CorteListResponse
// @Router       /api/corte/historial [get]
func (h *CorteHandler) Historial(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	cortes, err := h.uc.Historial(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.CorteResponse, 0, len(cortes))
	for _, corte := range cortes {
		items = append(items, *dto.ToCorteResponse(corte))
	}
	return c.JSON(dto.CorteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// Retiros godoc
// @Summary      Retiros de un corte
// @Tags         corte
// @Produce      json
// @Param        id   path  string  true  "ID del corte"
// @Success      200  {array}  dto.RetiroResponse
// @Router       /api/corte/{id}/retiros [get]
func (h *CorteHandler) Retiros(c *fiber.Ctx) error {
	retiros, err := h.uc.Retiros(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.RetiroResponse, 0, len(retiros))
	for _, r := range retiros {
		items = append(items, *dto.ToRetiroResponse(r))
	}
	return c.JSON(items)
}
