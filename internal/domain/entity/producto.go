package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoRegulacion clasificación legal de dispensación de un medicamento.
// Enumeración cerrada: toda lógica que dependa de ella debe hacer match exhaustivo.
type TipoRegulacion string

const (
	RegulacionVentaLibre    TipoRegulacion = "VENTA_LIBRE"
	RegulacionAntibiotico   TipoRegulacion = "ANTIBIOTICO"
	RegulacionControladoII  TipoRegulacion = "CONTROLADO_II"
	RegulacionControladoIII TipoRegulacion = "CONTROLADO_III"
	RegulacionControladoIV  TipoRegulacion = "CONTROLADO_IV"
)

// TiposRegulacion valores válidos del enum.
var TiposRegulacion = []TipoRegulacion{
	RegulacionVentaLibre,
	RegulacionAntibiotico,
	RegulacionControladoII,
	RegulacionControladoIII,
	RegulacionControladoIV,
}

// GrupoInteraccion clasificación farmacológica para vigilancia de
// interacciones medicamentosas entre artículos del carrito.
type GrupoInteraccion string

const (
	GrupoAnticoagulantes GrupoInteraccion = "ANTICOAGULANTES"
	GrupoAINES           GrupoInteraccion = "AINES"
	GrupoAntibioticos    GrupoInteraccion = "ANTIBIOTICOS"
	GrupoAntidepresivos  GrupoInteraccion = "ANTIDEPRESIVOS"
	GrupoAntihipertensivos GrupoInteraccion = "ANTIHIPERTENSIVOS"
	GrupoOpioides        GrupoInteraccion = "OPIOIDES"
	GrupoBenzodiacepinas GrupoInteraccion = "BENZODIACEPINAS"
	GrupoAlcohol         GrupoInteraccion = "ALCOHOL_INTERACCION"
	GrupoNinguno         GrupoInteraccion = "NINGUNO"
)

// SemaforoStock estado visual de existencias de un producto.
type SemaforoStock string

const (
	SemaforoRojo     SemaforoStock = "ROJO"
	SemaforoAmarillo SemaforoStock = "AMARILLO"
	SemaforoVerde    SemaforoStock = "VERDE"
)

// Producto representa un medicamento o artículo del catálogo de la farmacia.
// StockTotal es derivado: suma de CantidadDisponible de sus lotes cuando los lotes
// son la fuente autoritativa; los lotes se cargan por separado.
type Producto struct {
	ID                 string
	Nombre             string
	Descripcion        string
	Categoria          string
	PrecioVenta        decimal.Decimal
	PrecioCompra       decimal.Decimal
	PorcentajeIVA      decimal.Decimal // 0-100
	PorcentajeIEPS     decimal.Decimal // 0-100
	StockTotal         int
	StockMinimo        int
	StockOptimo        int
	CodigoBarras       string
	SKU                string
	Laboratorio        string
	SustanciaActiva    string
	Presentacion       string
	TipoRegulacion     TipoRegulacion
	GrupoInteraccion   GrupoInteraccion
	UbicacionAnaquel   string
	Activo             bool
	FechaCreacion      time.Time
	FechaActualizacion time.Time

	Lotes []Lote
}

// RequiereReceta indica si el tipo de regulación exige receta médica.
func (p *Producto) RequiereReceta() bool {
	switch p.TipoRegulacion {
	case RegulacionAntibiotico, RegulacionControladoII, RegulacionControladoIII, RegulacionControladoIV:
		return true
	case RegulacionVentaLibre:
		return false
	}
	return false
}

// EsControlado indica si pertenece a las fracciones II-IV de controlados.
func (p *Producto) EsControlado() bool {
	switch p.TipoRegulacion {
	case RegulacionControladoII, RegulacionControladoIII, RegulacionControladoIV:
		return true
	}
	return false
}

// TasaImpuesto devuelve la tasa combinada IVA+IEPS como fracción (16 -> 0.16).
func (p *Producto) TasaImpuesto() decimal.Decimal {
	cien := decimal.NewFromInt(100)
	return p.PorcentajeIVA.Add(p.PorcentajeIEPS).Div(cien)
}

// PrecioConImpuestos precio de venta más IVA e IEPS.
func (p *Producto) PrecioConImpuestos() decimal.Decimal {
	return p.PrecioVenta.Add(p.PrecioVenta.Mul(p.TasaImpuesto()))
}

// MargenGanancia porcentaje de ganancia sobre el precio de compra.
func (p *Producto) MargenGanancia() decimal.Decimal {
	if p.PrecioCompra.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return p.PrecioVenta.Sub(p.PrecioCompra).Div(p.PrecioCompra).Mul(decimal.NewFromInt(100))
}

// Semaforo estado de existencias contra el stock mínimo.
func (p *Producto) Semaforo() SemaforoStock {
	if p.StockTotal <= 0 {
		return SemaforoRojo
	}
	if p.StockTotal <= p.StockMinimo {
		return SemaforoAmarillo
	}
	return SemaforoVerde
}

// Validar aplica la validación estricta de campos farmacéuticos.
// Devuelve la lista de violaciones; vacía significa válido.
func (p *Producto) Validar() []string {
	var errores []string
	cien := decimal.NewFromInt(100)

	if esBlanco(p.Nombre) {
		errores = append(errores, "El nombre comercial es obligatorio")
	}
	if esBlanco(p.Categoria) {
		errores = append(errores, "La categoría es obligatoria")
	}
	if p.PrecioVenta.LessThanOrEqual(decimal.Zero) {
		errores = append(errores, "El precio de venta debe ser mayor a $0")
	}
	if p.PrecioCompra.IsNegative() {
		errores = append(errores, "El precio de compra no puede ser negativo")
	}
	if p.PrecioCompra.GreaterThan(decimal.Zero) && p.PrecioVenta.LessThanOrEqual(p.PrecioCompra) {
		errores = append(errores, "El precio de venta debe ser mayor al precio de compra")
	}
	if esBlanco(p.CodigoBarras) {
		errores = append(errores, "El código de barras es obligatorio")
	}
	if p.StockMinimo < 0 {
		errores = append(errores, "El stock mínimo no puede ser negativo")
	}
	if p.PorcentajeIVA.IsNegative() || p.PorcentajeIVA.GreaterThan(cien) {
		errores = append(errores, "El % IVA debe estar entre 0 y 100")
	}
	if p.PorcentajeIEPS.IsNegative() || p.PorcentajeIEPS.GreaterThan(cien) {
		errores = append(errores, "El % IEPS debe estar entre 0 y 100")
	}
	if esBlanco(p.SustanciaActiva) {
		errores = append(errores, "La sustancia activa es obligatoria")
	}
	return errores
}
