package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// RecetaResponse receta adjunta a una línea de venta.
type RecetaResponse struct {
	ID             string     `json:"id,omitempty"`
	CedulaMedico   string     `json:"cedula_medico"`
	NombreMedico   string     `json:"nombre_medico"`
	FolioReceta    string     `json:"folio_receta"`
	FechaReceta    *time.Time `json:"fecha_receta,omitempty"`
	Institucion    string     `json:"institucion,omitempty"`
	Diagnostico    string     `json:"diagnostico,omitempty"`
	ProductoNombre string     `json:"producto_nombre,omitempty"`
	Verificada     bool       `json:"verificada"`
}

// DetalleVentaResponse una línea de la venta.
type DetalleVentaResponse struct {
	ProductoID       string          `json:"producto_id"`
	ProductoNombre   string          `json:"producto_nombre"`
	SustanciaActiva  string          `json:"sustancia_activa,omitempty"`
	LoteID           string          `json:"lote_id,omitempty"`
	NumeroLote       string          `json:"numero_lote,omitempty"`
	Cantidad         int             `json:"cantidad"`
	PrecioUnitario   decimal.Decimal `json:"precio_unitario"`
	Descuento        decimal.Decimal `json:"descuento"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	TipoRegulacion   string          `json:"tipo_regulacion"`
	RequiereReceta   bool            `json:"requiere_receta"`
	Receta           *RecetaResponse `json:"receta,omitempty"`
}

// VentaResponse salida de una venta (activa o persistida).
type VentaResponse struct {
	ID             string                 `json:"id,omitempty"`
	ClienteID      string                 `json:"cliente_id,omitempty"`
	ClienteNombre  string                 `json:"cliente_nombre,omitempty"`
	Fecha          *time.Time             `json:"fecha,omitempty"`
	Detalles       []DetalleVentaResponse `json:"detalles"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	DescuentoTotal decimal.Decimal        `json:"descuento_total"`
	Impuesto       decimal.Decimal        `json:"impuesto"`
	Total          decimal.Decimal        `json:"total"`
	MetodoPago     string                 `json:"metodo_pago"`
	MontoPagado    decimal.Decimal        `json:"monto_pagado"`
	Cambio         decimal.Decimal        `json:"cambio"`
	Estado         string                 `json:"estado"`
	NombreEspera   string                 `json:"nombre_espera,omitempty"`
}

// VentaListResponse lista paginada de ventas.
type VentaListResponse struct {
	Items []VentaResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ToRecetaResponse mapea la receta a su DTO.
func ToRecetaResponse(r *entity.RecetaMedica) *RecetaResponse {
	if r == nil {
		return nil
	}
	resp := &RecetaResponse{
		ID:             r.ID,
		CedulaMedico:   r.CedulaMedico,
		NombreMedico:   r.NombreMedico,
		FolioReceta:    r.FolioReceta,
		Institucion:    r.Institucion,
		Diagnostico:    r.Diagnostico,
		ProductoNombre: r.ProductoNombre,
		Verificada:     r.Verificada,
	}
	if !r.FechaReceta.IsZero() {
		f := r.FechaReceta
		resp.FechaReceta = &f
	}
	return resp
}

// ToVentaResponse mapea la entidad a su DTO de salida.
func ToVentaResponse(v *entity.Venta) *VentaResponse {
	resp := &VentaResponse{
		ID:             v.ID,
		ClienteID:      v.ClienteID,
		ClienteNombre:  v.ClienteNombre,
		Subtotal:       v.Subtotal,
		DescuentoTotal: v.DescuentoTotal,
		Impuesto:       v.Impuesto,
		Total:          v.Total,
		MetodoPago:     string(v.MetodoPago),
		MontoPagado:    v.MontoPagado,
		Cambio:         v.Cambio,
		Estado:         string(v.Estado),
		NombreEspera:   v.NombreEspera,
		Detalles:       make([]DetalleVentaResponse, 0, len(v.Detalles)),
	}
	if !v.Fecha.IsZero() {
		f := v.Fecha
		resp.Fecha = &f
	}
	for i := range v.Detalles {
		d := &v.Detalles[i]
		resp.Detalles = append(resp.Detalles, DetalleVentaResponse{
			ProductoID:      d.ProductoID,
			ProductoNombre:  d.ProductoNombre,
			SustanciaActiva: d.SustanciaActiva,
			LoteID:          d.LoteID,
			NumeroLote:      d.NumeroLote,
			Cantidad:        d.Cantidad,
			PrecioUnitario:  d.PrecioUnitario,
			Descuento:       d.Descuento,
			Subtotal:        d.Subtotal,
			TipoRegulacion:  string(d.TipoRegulacion),
			RequiereReceta:  d.RequiereReceta(),
			Receta:          ToRecetaResponse(d.Receta),
		})
	}
	return resp
}
