package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoVenta ciclo de vida de una venta.
// EN_PROCESO -> {EN_ESPERA, COMPLETADA, CANCELADA}; EN_ESPERA -> EN_PROCESO.
// COMPLETADA y CANCELADA son terminales.
type EstadoVenta string

const (
	VentaEnProceso  EstadoVenta = "EN_PROCESO"
	VentaEnEspera   EstadoVenta = "EN_ESPERA"
	VentaCompletada EstadoVenta = "COMPLETADA"
	VentaCancelada  EstadoVenta = "CANCELADA"
)

// MetodoPago forma de pago de la venta.
type MetodoPago string

const (
	PagoEfectivo      MetodoPago = "EFECTIVO"
	PagoTarjeta       MetodoPago = "TARJETA"
	PagoTransferencia MetodoPago = "TRANSFERENCIA"
)

// DetalleVenta una línea de la venta. El precio unitario y la tasa de impuesto
// se congelan al momento de agregar el producto; cambios posteriores del
// catálogo no afectan líneas ya capturadas.
type DetalleVenta struct {
	ID                   string
	ProductoID           string
	ProductoNombre       string
	SustanciaActiva      string
	LoteID               string // vacío si el producto no maneja lotes
	NumeroLote           string
	FechaVencimientoLote time.Time
	Cantidad             int
	PrecioUnitario       decimal.Decimal
	Descuento            decimal.Decimal // % por línea, 0-100
	TasaImpuesto         decimal.Decimal // fracción IVA+IEPS congelada del producto (0.16)
	Subtotal             decimal.Decimal
	TipoRegulacion       TipoRegulacion
	GrupoInteraccion     GrupoInteraccion
	Receta               *RecetaMedica
}

// CalcularSubtotal recalcula y devuelve el subtotal de la línea:
// cantidad × precio unitario × (1 − descuento/100).
func (d *DetalleVenta) CalcularSubtotal() decimal.Decimal {
	bruto := d.PrecioUnitario.Mul(decimal.NewFromInt(int64(d.Cantidad)))
	factor := decimal.NewFromInt(1).Sub(d.Descuento.Div(decimal.NewFromInt(100)))
	d.Subtotal = bruto.Mul(factor)
	return d.Subtotal
}

// Impuesto de la línea: subtotal × tasa congelada.
func (d *DetalleVenta) Impuesto() decimal.Decimal {
	return d.Subtotal.Mul(d.TasaImpuesto)
}

// RequiereReceta indica si la línea exige receta por su tipo de regulación.
func (d *DetalleVenta) RequiereReceta() bool {
	switch d.TipoRegulacion {
	case RegulacionAntibiotico, RegulacionControladoII, RegulacionControladoIII, RegulacionControladoIV:
		return true
	}
	return false
}

// Venta agregado del carrito: líneas en orden de captura, cliente opcional,
// pago y totales. El orden de Detalles es significativo (se opera por índice).
type Venta struct {
	ID             string
	ClienteID      string
	ClienteNombre  string
	Fecha          time.Time
	Detalles       []DetalleVenta
	Subtotal       decimal.Decimal
	DescuentoTotal decimal.Decimal // % global, 0-100
	Impuesto       decimal.Decimal
	Total          decimal.Decimal
	MetodoPago     MetodoPago
	MontoPagado    decimal.Decimal
	Cambio         decimal.Decimal
	Estado         EstadoVenta
	Observaciones  string

	// Hold / park
	NombreEspera string
	FechaEspera  time.Time

	FechaCreacion time.Time
}

// NuevaVenta crea una venta vacía en proceso con pago en efectivo por defecto.
func NuevaVenta() *Venta {
	return &Venta{
		Estado:     VentaEnProceso,
		MetodoPago: PagoEfectivo,
	}
}

// CalcularTotales recalcula subtotal, impuesto y total de la venta.
// El impuesto se agrega por línea (tasa congelada de cada producto), no como
// tasa plana sobre el subtotal; el descuento global se aplica sobre el subtotal.
func (v *Venta) CalcularTotales() decimal.Decimal {
	subtotal := decimal.Zero
	impuesto := decimal.Zero
	for i := range v.Detalles {
		v.Detalles[i].CalcularSubtotal()
		subtotal = subtotal.Add(v.Detalles[i].Subtotal)
		impuesto = impuesto.Add(v.Detalles[i].Impuesto())
	}
	v.Subtotal = subtotal
	v.Impuesto = impuesto
	v.Total = subtotal.Add(impuesto)
	if v.DescuentoTotal.GreaterThan(decimal.Zero) {
		v.Total = v.Total.Sub(subtotal.Mul(v.DescuentoTotal.Div(decimal.NewFromInt(100))))
	}
	v.CalcularCambio()
	return v.Total
}

// CalcularCambio cambio a entregar: max(0, pagado − total).
func (v *Venta) CalcularCambio() decimal.Decimal {
	cambio := v.MontoPagado.Sub(v.Total)
	if cambio.IsNegative() {
		cambio = decimal.Zero
	}
	v.Cambio = cambio
	return cambio
}
