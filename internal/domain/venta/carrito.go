// Package venta implementa el carrito del punto de venta: composición de
// líneas con selección de lote FEFO, verificación de stock e interacciones,
// compuerta de recetas y validación de cobro.
package venta

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/interaccion"
	"github.com/tu-usuario/farmacia-pos/internal/domain/lote"
	"github.com/tu-usuario/farmacia-pos/internal/domain/receta"
)

// ErrorSinLoteElegible ningún lote del producto puede surtir la línea.
type ErrorSinLoteElegible struct {
	Producto string
	Razon    lote.RazonSinLote
}

func (e *ErrorSinLoteElegible) Error() string {
	switch e.Razon {
	case lote.RazonTodosCaducados:
		return fmt.Sprintf("todos los lotes de %s están caducados", e.Producto)
	case lote.RazonSinStock:
		return fmt.Sprintf("ningún lote de %s tiene stock disponible", e.Producto)
	}
	return fmt.Sprintf("%s no tiene lotes configurados", e.Producto)
}

func (e *ErrorSinLoteElegible) Unwrap() error { return domain.ErrInsufficientStock }

// ErrorLoteCaducado el lote resuelto (automático o manual) está caducado.
// La selección manual de lote nunca brinca esta verificación.
type ErrorLoteCaducado struct {
	NumeroLote string
}

func (e *ErrorLoteCaducado) Error() string {
	return fmt.Sprintf("el lote %s está caducado, no se puede agregar al carrito", e.NumeroLote)
}

func (e *ErrorLoteCaducado) Unwrap() error { return domain.ErrConflict }

// ErrorStockInsuficiente el lote no alcanza para la cantidad solicitada,
// contando lo que el carrito ya tiene apartado de ese mismo lote.
type ErrorStockInsuficiente struct {
	NumeroLote string
	Disponible int
	Solicitado int
}

func (e *ErrorStockInsuficiente) Error() string {
	return fmt.Sprintf("stock insuficiente en lote %s: disponible %d, solicitado %d",
		e.NumeroLote, e.Disponible, e.Solicitado)
}

func (e *ErrorStockInsuficiente) Unwrap() error { return domain.ErrInsufficientStock }

// ResultadoAgregar respuesta estructurada de AgregarProducto.
type ResultadoAgregar struct {
	IndiceLinea      int
	RequiereReceta   bool
	TipoRegulacion   entity.TipoRegulacion
	Interacciones    []interaccion.Alerta
	LoteSeleccionado *entity.Lote // nil si el producto no maneja lotes
}

// Carrito la venta en captura de una terminal, con sus alertas de
// farmacovigilancia activas. Un carrito tiene exactamente un dueño lógico
// (la terminal); no es seguro para uso concurrente.
type Carrito struct {
	Venta   *entity.Venta
	Alertas []interaccion.Alerta
}

// Nuevo carrito vacío en proceso.
func Nuevo() *Carrito {
	return &Carrito{Venta: entity.NuevaVenta()}
}

// AgregarProducto agrega una línea al carrito:
//  1. Resuelve lote: el manual si se indicó, si no FEFO sobre los lotes del producto.
//  2. Con lotes configurados y ninguno elegible, falla distinguiendo caducidad de stock.
//  3. Rechaza lotes caducados aun en selección manual.
//  4. Verifica stock del lote contra la cantidad ya apartada en el carrito.
//  5. Congela precio y tasa de impuesto del producto en la línea.
//  6. Calcula las interacciones que el producto introduce (no bloquean).
// El carrito no se modifica si la operación falla.
func (c *Carrito) AgregarProducto(p *entity.Producto, cantidad int, loteManual *entity.Lote, hoy time.Time) (*ResultadoAgregar, error) {
	if c.Venta.Estado != entity.VentaEnProceso {
		return nil, fmt.Errorf("agregar producto: %w", domain.ErrConflict)
	}
	if cantidad <= 0 {
		return nil, fmt.Errorf("la cantidad debe ser mayor a 0: %w", domain.ErrInvalidInput)
	}

	loteSeleccionado := loteManual
	if loteSeleccionado == nil && len(p.Lotes) > 0 {
		loteSeleccionado = lote.SeleccionarFEFO(p.Lotes, hoy)
		if loteSeleccionado == nil {
			return nil, &ErrorSinLoteElegible{
				Producto: p.Nombre,
				Razon:    lote.RazonNoElegible(p.Lotes, hoy),
			}
		}
	}

	if loteSeleccionado != nil {
		// Segunda compuerta: aplica también a la selección manual.
		if lote.EstaCaducado(*loteSeleccionado, hoy) {
			return nil, &ErrorLoteCaducado{NumeroLote: loteSeleccionado.NumeroLote}
		}
		apartado := c.cantidadApartada(p.ID, loteSeleccionado.ID)
		if loteSeleccionado.CantidadDisponible < apartado+cantidad {
			return nil, &ErrorStockInsuficiente{
				NumeroLote: loteSeleccionado.NumeroLote,
				Disponible: loteSeleccionado.CantidadDisponible - apartado,
				Solicitado: cantidad,
			}
		}
	}

	grupos := c.gruposEnCarrito()
	alertas := interaccion.VerificarConNuevo(p.GrupoInteraccion, grupos)

	detalle := entity.DetalleVenta{
		ProductoID:       p.ID,
		ProductoNombre:   p.Nombre,
		SustanciaActiva:  p.SustanciaActiva,
		Cantidad:         cantidad,
		PrecioUnitario:   p.PrecioVenta,
		Descuento:        decimal.Zero,
		TasaImpuesto:     p.TasaImpuesto(),
		TipoRegulacion:   p.TipoRegulacion,
		GrupoInteraccion: p.GrupoInteraccion,
	}
	if loteSeleccionado != nil {
		detalle.LoteID = loteSeleccionado.ID
		detalle.NumeroLote = loteSeleccionado.NumeroLote
		detalle.FechaVencimientoLote = loteSeleccionado.FechaVencimiento
	}

	c.Venta.Detalles = append(c.Venta.Detalles, detalle)
	c.Venta.CalcularTotales()
	c.Alertas = append(c.Alertas, alertas...)

	return &ResultadoAgregar{
		IndiceLinea:      len(c.Venta.Detalles) - 1,
		RequiereReceta:   p.RequiereReceta(),
		TipoRegulacion:   p.TipoRegulacion,
		Interacciones:    alertas,
		LoteSeleccionado: loteSeleccionado,
	}, nil
}

// cantidadApartada unidades del mismo producto+lote ya capturadas en el carrito.
func (c *Carrito) cantidadApartada(productoID, loteID string) int {
	total := 0
	for i := range c.Venta.Detalles {
		d := &c.Venta.Detalles[i]
		if d.ProductoID == productoID && d.LoteID == loteID {
			total += d.Cantidad
		}
	}
	return total
}

func (c *Carrito) gruposEnCarrito() []entity.GrupoInteraccion {
	grupos := make([]entity.GrupoInteraccion, 0, len(c.Venta.Detalles))
	for i := range c.Venta.Detalles {
		grupos = append(grupos, c.Venta.Detalles[i].GrupoInteraccion)
	}
	return grupos
}

// EliminarDetalle quita la línea por posición y recalcula totales.
// Índice fuera de rango es no-op.
func (c *Carrito) EliminarDetalle(indice int) {
	if indice < 0 || indice >= len(c.Venta.Detalles) {
		return
	}
	c.Venta.Detalles = append(c.Venta.Detalles[:indice], c.Venta.Detalles[indice+1:]...)
	c.Venta.CalcularTotales()
}

// ActualizarCantidad cambia la cantidad de la línea. Cantidad <= 0 equivale a
// eliminarla. Revalida contra la capacidad del lote ya ligado a esa línea
// (solo esa línea, no el resto del carrito).
func (c *Carrito) ActualizarCantidad(indice, cantidad int, capacidadLote int) error {
	if indice < 0 || indice >= len(c.Venta.Detalles) {
		return nil
	}
	if cantidad <= 0 {
		c.EliminarDetalle(indice)
		return nil
	}
	d := &c.Venta.Detalles[indice]
	if d.LoteID != "" && cantidad > capacidadLote {
		return &ErrorStockInsuficiente{
			NumeroLote: d.NumeroLote,
			Disponible: capacidadLote,
			Solicitado: cantidad,
		}
	}
	d.Cantidad = cantidad
	c.Venta.CalcularTotales()
	return nil
}

// AsignarReceta adjunta la receta a la línea. No se valida aquí: la validez
// se verifica en la preparación de cobro (Validar), para que el operador
// pueda corregirla antes del cierre.
func (c *Carrito) AsignarReceta(indice int, r *entity.RecetaMedica) {
	if indice < 0 || indice >= len(c.Venta.Detalles) {
		return
	}
	c.Venta.Detalles[indice].Receta = r
}

// SeleccionarCliente liga el cliente y, si trae descuento, lo vuelve el
// descuento global de la venta (el último seleccionado gana; no se acumula).
func (c *Carrito) SeleccionarCliente(cliente *entity.Cliente) {
	if cliente == nil {
		c.Venta.ClienteID = ""
		c.Venta.ClienteNombre = ""
		c.Venta.CalcularTotales()
		return
	}
	c.Venta.ClienteID = cliente.ID
	c.Venta.ClienteNombre = cliente.NombreCompleto()
	if cliente.Descuento.GreaterThan(decimal.Zero) {
		c.Venta.DescuentoTotal = cliente.Descuento
	}
	c.Venta.CalcularTotales()
}

// CambiarMetodoPago establece la forma de pago.
func (c *Carrito) CambiarMetodoPago(metodo entity.MetodoPago) {
	c.Venta.MetodoPago = metodo
}

// EstablecerMontoPagado registra lo recibido y recalcula el cambio.
func (c *Carrito) EstablecerMontoPagado(monto decimal.Decimal) {
	c.Venta.MontoPagado = monto
	c.Venta.CalcularCambio()
}

// Validar verifica si la venta está lista para cobrarse. Devuelve todas las
// razones de bloqueo encontradas (no solo la primera), para que el operador
// vea completo lo que falta. Lista vacía = lista para cobrar.
//
// El monto pagado solo se valida si ya fue capturado (> 0): esta verificación
// corre tanto antes como después del modal de cobro.
func (c *Carrito) Validar(hoy time.Time) []string {
	v := c.Venta
	var errores []string
	if len(v.Detalles) == 0 {
		errores = append(errores, "Debe agregar al menos un producto")
	}
	if v.Total.LessThanOrEqual(decimal.Zero) {
		errores = append(errores, "El total debe ser mayor a $0")
	}
	for i := range v.Detalles {
		d := &v.Detalles[i]
		if d.RequiereReceta() && !receta.EstaSatisfecha(d, hoy) {
			errores = append(errores, d.ProductoNombre+" requiere receta médica")
		}
	}
	for i := range v.Detalles {
		if v.Detalles[i].Cantidad <= 0 {
			errores = append(errores, fmt.Sprintf("Cantidad inválida en línea %d", i+1))
		}
	}
	if v.MetodoPago == entity.PagoEfectivo &&
		v.MontoPagado.GreaterThan(decimal.Zero) &&
		v.MontoPagado.LessThan(v.Total) {
		errores = append(errores, "El monto pagado es insuficiente")
	}
	return errores
}

// PonerEnEspera marca la venta como apartada con una etiqueta visible.
// Solo es válido desde EN_PROCESO y con al menos una línea.
func (c *Carrito) PonerEnEspera(nombre string, ahora time.Time) error {
	if c.Venta.Estado != entity.VentaEnProceso {
		return fmt.Errorf("poner en espera: %w", domain.ErrConflict)
	}
	if len(c.Venta.Detalles) == 0 {
		return domain.ErrVentaVacia
	}
	if nombre == "" {
		nombre = fmt.Sprintf("Espera #%d", ahora.UnixMilli())
	}
	c.Venta.Estado = entity.VentaEnEspera
	c.Venta.NombreEspera = nombre
	c.Venta.FechaEspera = ahora
	return nil
}

// RecuperarDeEspera regresa la venta apartada a proceso.
func (c *Carrito) RecuperarDeEspera() error {
	if c.Venta.Estado != entity.VentaEnEspera {
		return fmt.Errorf("recuperar de espera: %w", domain.ErrConflict)
	}
	c.Venta.Estado = entity.VentaEnProceso
	c.Venta.FechaEspera = time.Time{}
	return nil
}

// Cancelar descarta la venta en proceso. El carrito queda vacío y utilizable.
func (c *Carrito) Cancelar() error {
	if c.Venta.Estado != entity.VentaEnProceso {
		return fmt.Errorf("cancelar venta: %w", domain.ErrConflict)
	}
	c.Venta = entity.NuevaVenta()
	c.Alertas = nil
	return nil
}

// LimpiarAlertas descarta las alertas de interacciones activas.
func (c *Carrito) LimpiarAlertas() {
	c.Alertas = nil
}
