package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// InventarioHandler maneja las peticiones HTTP del kardex de inventario.
type InventarioHandler struct {
	registrar *inventory.RegistrarMovimientoUseCase
	consulta  *inventory.ConsultaMovimientosUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(registrar *inventory.RegistrarMovimientoUseCase, consulta *inventory.ConsultaMovimientosUseCase) *InventarioHandler {
	return &InventarioHandler{registrar: registrar, consulta: consulta}
}

// RegistrarMovimiento godoc
// @Summary      Registrar movimiento de inventario (ENTRADA, SALIDA, AJUSTE)
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovimientoRequest  true  "Datos del movimiento"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [post]
func (h *InventarioHandler) RegistrarMovimiento(c *fiber.Ctx) error {
	var in dto.CreateMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.registrar.Registrar(c.Context(), inventory.MovimientoInput{
		ProductoID:    in.ProductoID,
		LoteID:        in.LoteID,
		Tipo:          entity.TipoMovimiento(in.Tipo),
		Cantidad:      in.Cantidad,
		Motivo:        in.Motivo,
		Referencia:    in.Referencia,
		Observaciones: in.Observaciones,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovimientoResponse(mov))
}

// List godoc
// @Summary      Kardex general
// @Tags         inventario
// @Produce      json
// @Param        producto_id  query  string  false  "Filtrar por producto"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {object}  dto.MovimientoListResponse
// @Router       /api/inventario/movimientos [get]
func (h *InventarioHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	productoID := c.Query("producto_id")

	var (
		movimientos []*entity.MovimientoInventario
		err         error
	)
	if productoID != "" {
		movimientos, err = h.consulta.ListByProducto(productoID, limit, offset)
	} else {
		movimientos, err = h.consulta.List(limit, offset)
	}
	if err != nil {
		return respondError(c, err)
	}

	items := make([]dto.MovimientoResponse, 0, len(movimientos))
	for _, m := range movimientos {
		items = append(items, *dto.ToMovimientoResponse(m))
	}
	return c.JSON(dto.MovimientoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}
