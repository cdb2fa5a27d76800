package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/application/usecase"
)

// LoteHandler maneja las peticiones HTTP de lotes.
type LoteHandler struct {
	uc *usecase.LoteUseCase
}

// NewLoteHandler construye el handler.
func NewLoteHandler(uc *usecase.LoteUseCase) *LoteHandler {
	return &LoteHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar lote (genera movimiento ENTRADA)
// @Tags         lotes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLoteRequest  true  "Datos del lote"
// @Success      201   {object}  dto.LoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/lotes [post]
func (h *LoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByProducto godoc
// @Summary      Lotes de un producto (orden FEFO)
// @Tags         lotes
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.LoteListResponse
// @Router       /api/productos/{id}/lotes [get]
func (h *LoteHandler) ListByProducto(c *fiber.Ctx) error {
	out, err := h.uc.ListByProducto(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListPorCaducar godoc
// @Summary      Lotes con stock próximos a caducar
// @Tags         lotes
// @Produce      json
// @Param        dias  query  int  false  "Umbral en días"  default(30)
// @Success      200   {object}  dto.LoteListResponse
// @Router       /api/lotes/por-caducar [get]
func (h *LoteHandler) ListPorCaducar(c *fiber.Ctx) error {
	out, err := h.uc.ListPorCaducar(c.QueryInt("dias", 30))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
