package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/application/pos"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// POSHandler maneja las peticiones del punto de venta. Todas las rutas llevan
// el identificador de terminal: cada terminal tiene su carrito y su lista de
// ventas en espera.
type POSHandler struct {
	terminales *pos.Terminales
}

// NewPOSHandler construye el handler.
func NewPOSHandler(terminales *pos.Terminales) *POSHandler {
	return &POSHandler{terminales: terminales}
}

func (h *POSHandler) carrito(c *fiber.Ctx) *dto.CarritoResponse {
	return dto.ToCarritoResponse(h.terminales.Estado(c.Params("terminal")))
}

// Estado godoc
// @Summary      Estado del carrito de la terminal
// @Tags         pos
// @Produce      json
// @Param        terminal  path  string  true  "ID de la terminal"
// @Success      200       {object}  dto.CarritoResponse
// @Router       /api/pos/{terminal}/carrito [get]
func (h *POSHandler) Estado(c *fiber.Ctx) error {
	return c.JSON(h.carrito(c))
}

// AgregarProducto godoc
// @Summary      Agregar producto al carrito (lote FEFO o manual)
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        terminal  path  string  true  "ID de la terminal"
// @Param        body      body  dto.AgregarProductoRequest  true  "Producto y cantidad"
// @Success      200       {object}  dto.ResultadoAgregarResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Failure      409       {object}  dto.ErrorResponse
// @Router       /api/pos/{terminal}/productos [post]
func (h *POSHandler) AgregarProducto(c *fiber.Ctx) error {
	var in dto.AgregarProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Cantidad <= 0 {
		in.Cantidad = 1
	}
	res, err := h.terminales.AgregarProducto(c.Context(), c.Params("terminal"), in.ProductoID, in.Cantidad, in.LoteID)
	if err != nil {
		return respondError(c, err)
	}

	out := dto.ResultadoAgregarResponse{
		IndiceLinea:    res.IndiceLinea,
		RequiereReceta: res.RequiereReceta,
		TipoRegulacion: string(res.TipoRegulacion),
		Interacciones:  dto.ToAlertasResponse(res.Interacciones),
		Carrito:        *h.carrito(c),
	}
	if res.LoteSeleccionado != nil {
		out.NumeroLote = res.LoteSeleccionado.NumeroLote
	}
	return c.JSON(out)
}

// EliminarLinea godoc
// @Summary      Quitar una línea del carrito
// @Tags         pos
// @Produce      json
// @Param        terminal  path  string  true  "ID de la terminal"
// @Param        indice    path  int     true  "Índice de la línea"
// @Success      200       {object}  dto.CarritoResponse
// @Router       /api/pos/{terminal}/lineas/{indice} [delete]
func (h *POSHandler) EliminarLinea(c *fiber.Ctx) error {
	indice, err := c.ParamsInt("indice")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INDEX", Message: "índice inválido"})
	}
	h.terminales.EliminarLinea(c.Params("terminal"), indice)
	return c.JSON(h.carrito(c))
}

// ActualizarCantidad godoc
// @Summary      Cambiar cantidad de una línea (cero la elimina)
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        terminal  path  string  true  "ID de la terminal"
// @Param        indice    path  int     true  "Índice de la línea"
// @Param        body      body  dto.ActualizarCantidadRequest  true  "Cantidad"
// @Success      200       {object}  dto.CarritoResponse
// @Failure      409       {object}  dto.ErrorResponse
// @Router       /api/pos/{terminal}/lineas/{indice} [put]
func (h *POSHandler) ActualizarCantidad(c *fiber.Ctx) error {
	indice, err := c.ParamsInt("indice")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INDEX", Message: "índice inválido"})
	}
	var in dto.ActualizarCantidadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.terminales.ActualizarCantidad(c.Params("terminal"), indice, in.Cantidad); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.carrito(c))
}

// AsignarReceta godoc
// @Summary      Adjuntar receta médica a una línea
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        terminal  path  string  true  "ID de la terminal"
// @Param        indice    path  int     true  "Índice de la línea"
// @Param        body      body  dto.AsignarRecetaRequest  true  "Datos de la receta"
// @Success      200       {object}  dto.CarritoResponse
// @Router       /api/pos/{terminal}/lineas/{indice}/receta [post]
func (h *POSHandler) AsignarReceta(c *fiber.Ctx) error {
	indice, err := c.ParamsInt("indice")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INDEX", Message: "índice inválido"})
	}
	var in dto.AsignarRecetaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	h.terminales.AsignarReceta(c.Params("terminal"), indice, &entity.RecetaMedica{
		CedulaMedico:  in.CedulaMedico,
		NombreMedico:  in.NombreMedico,
		FolioReceta:   in.FolioReceta,
		FechaReceta:   in.FechaReceta,
		Institucion:   in.Institucion,
		Diagnostico:   in.Diagnostico,
		Observaciones: in.Observaciones,
	})
	return c.JSON(h.carrito(c))
}

// SeleccionarCliente godoc
// @Summary      Ligar cliente a la venta activa (ID vacío la desliga)
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        terminal  path  string  true  "ID de la terminal"
// @Param        body      body  dto.SeleccionarClienteRequest  true  "Cliente"
// @Success      200       {object}  dto.CarritoResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/pos/{terminal}/cliente [post]
func (h *POSHandler) SeleccionarCliente(c *fiber.Ctx) error {
	var in dto.SeleccionarClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.terminales.SeleccionarCliente(c.Context(), c.Params("terminal"), in.ClienteID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.carrito(c))
}

// Pago godoc
// @Summary      Establecer método de pago y monto recibido
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        terminal  path  string  true  "ID de la terminal"
// @Param        body      body  dto.PagoRequest  true  "Pago"
// @Success      200       {object}  dto.CarritoResponse
// @Router       /api/pos/{terminal}/pago [post]
func (h *POSHandler) Pago(c *fiber.Ctx) error {
	var in dto.PagoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	terminal := c.Params("terminal")
	if in.MetodoPago != "" {
		h.terminales.CambiarMetodoPago(terminal, entity.MetodoPago(in.MetodoPago))
	}
	if in.MontoPagado != nil {
		h.terminales.EstablecerMontoPagado(terminal, *in.MontoPagado)
	}
	return c.JSON(h.carrito(c))
}

// Validar godoc
// @Summary      Validar si la venta activa puede cobrarse
// @Tags         pos
// @Produce      json
// @Param        terminal  path  string  true  "ID de la terminal"
// @Success      200       {object}  dto.ValidacionCobroResponse
// @Router       /api/pos/{terminal}/validar [get]
func (h *POSHandler) Validar(c *fiber.Ctx) error {
	razones := h.terminales.Validar(c.Params("terminal"))
	return c.JSON(dto.ValidacionCobroResponse{
		Valida:  len(razones) == 0,
		Razones: razones,
	})
}

// Cobrar godoc
// @Summary      Finalizar la venta activa (descuenta stock y acumula en el corte)
// @Tags         pos
// @Produce      json
// @Param        terminal  path  string  true  "ID de la terminal"
// @Success      200       {object}  dto.VentaResponse
// @Failure      409       {object}  dto.ErrorResponse
// @Failure      422       {object}  dto.ErrorResponse
// @Router       /api/pos/{terminal}/cobrar [post]
func (h *POSHandler) Cobrar(c *fiber.Ctx) error {
	venta, err := h.terminales.Completar(c.Context(), c.Params("terminal"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToVentaResponse(venta))
}

// PonerEnEspera godoc
// @Summary      Apartar la venta activa
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        terminal  path  string  true  "ID de la terminal"
// @Param        body      body  dto.EsperaRequest  false  "Nombre para identificarla"
// @Success      200       {object}  dto.CarritoResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/pos/{terminal}/espera [post]
func (h *POSHandler) PonerEnEspera(c *fiber.Ctx) error {
	var in dto.EsperaRequest
	_ = c.BodyParser(&in) // cuerpo opcional
	if err := h.terminales.PonerEnEspera(c.Params("terminal"), in.Nombre); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.carrito(c))
}

// RecuperarDeEspera godoc
// @Summary      Recuperar una venta apartada (la activa se auto-aparta)
// @Tags         pos
// @Produce      json
// @Param        terminal  path  string  true  "ID de la terminal"
// @Param        indice    path  int     true  "Índice en la lista de espera"
// @Success      200       {object}  dto.CarritoResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/pos/{terminal}/espera/{indice}/recuperar [post]
func (h *POSHandler) RecuperarDeEspera(c *fiber.Ctx) error {
	indice, err := c.ParamsInt("indice")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INDEX", Message: "índice inválido"})
	}
	if err := h.terminales.RecuperarDeEspera(c.Params("terminal"), indice); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.carrito(c))
}

// Cancelar godoc
// @Summary      Cancelar la venta activa
// @Tags         pos
// @Produce      json
// @Param        terminal  path  string  true  "ID de la terminal"
// @Success      200       {object}  dto.CarritoResponse
// @Router       /api/pos/{terminal}/cancelar [post]
func (h *POSHandler) Cancelar(c *fiber.Ctx) error {
	if err := h.terminales.Cancelar(c.Context(), c.Params("terminal")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.carrito(c))
}

// LimpiarAlertas godoc
// @Summary      Descartar alertas de interacciones de la terminal
// @Tags         pos
// @Produce      json
// @Param        terminal  path  string  true  "ID de la terminal"
// @Success      200       {object}  dto.CarritoResponse
// @Router       /api/pos/{terminal}/alertas [delete]
func (h *POSHandler) LimpiarAlertas(c *fiber.Ctx) error {
	h.terminales.LimpiarAlertas(c.Params("terminal"))
	return c.JSON(h.carrito(c))
}
