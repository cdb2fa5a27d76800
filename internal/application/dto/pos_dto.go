package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pos/internal/application/pos"
	"github.com/tu-usuario/farmacia-pos/internal/domain/interaccion"
)

// AgregarProductoRequest entrada para agregar un producto al carrito.
// LoteID permite forzar un lote distinto al que elegiría la rotación FEFO.
type AgregarProductoRequest struct {
	ProductoID string `json:"producto_id" validate:"required"`
	Cantidad   int    `json:"cantidad" validate:"min=1"`
	LoteID     string `json:"lote_id"`
}

// ActualizarCantidadRequest entrada para cambiar la cantidad de una línea.
// Cantidad cero o negativa elimina la línea.
type ActualizarCantidadRequest struct {
	Cantidad int `json:"cantidad"`
}

// AsignarRecetaRequest receta capturada para una línea que la exige.
type AsignarRecetaRequest struct {
	CedulaMedico  string    `json:"cedula_medico" validate:"required"`
	NombreMedico  string    `json:"nombre_medico" validate:"required"`
	FolioReceta   string    `json:"folio_receta" validate:"required"`
	FechaReceta   time.Time `json:"fecha_receta"`
	Institucion   string    `json:"institucion"`
	Diagnostico   string    `json:"diagnostico"`
	Observaciones string    `json:"observaciones"`
}

// SeleccionarClienteRequest liga (o desliga, con ID vacío) un cliente a la venta.
type SeleccionarClienteRequest struct {
	ClienteID string `json:"cliente_id"`
}

// PagoRequest método de pago y monto recibido.
type PagoRequest struct {
	MetodoPago  string           `json:"metodo_pago"`
	MontoPagado *decimal.Decimal `json:"monto_pagado"`
}

// EsperaRequest nombre opcional para apartar la venta activa.
type EsperaRequest struct {
	Nombre string `json:"nombre"`
}

// AlertaInteraccionResponse una interacción medicamentosa detectada.
type AlertaInteraccionResponse struct {
	Severidad     string `json:"severidad"`
	Pares         string `json:"pares"`
	Mensaje       string `json:"mensaje"`
	Recomendacion string `json:"recomendacion"`
}

// VentaEnEsperaResponse renglón de la lista de ventas apartadas.
type VentaEnEsperaResponse struct {
	Indice        int             `json:"indice"`
	Nombre        string          `json:"nombre"`
	Lineas        int             `json:"lineas"`
	Total         decimal.Decimal `json:"total"`
	ClienteNombre string          `json:"cliente_nombre,omitempty"`
}

// CarritoResponse estado completo de la terminal: venta activa, alertas de
// interacciones y ventas en espera.
type CarritoResponse struct {
	Venta    VentaResponse               `json:"venta"`
	Alertas  []AlertaInteraccionResponse `json:"alertas"`
	EnEspera []VentaEnEsperaResponse     `json:"en_espera"`
}

// ResultadoAgregarResponse resultado de agregar un producto: línea afectada,
// lote asignado y las interacciones que disparó.
type ResultadoAgregarResponse struct {
	IndiceLinea    int                         `json:"indice_linea"`
	RequiereReceta bool                        `json:"requiere_receta"`
	TipoRegulacion string                      `json:"tipo_regulacion"`
	NumeroLote     string                      `json:"numero_lote,omitempty"`
	Interacciones  []AlertaInteraccionResponse `json:"interacciones"`
	Carrito        CarritoResponse             `json:"carrito"`
}

// ValidacionCobroResponse razones que bloquean el cobro (vacía = cobrable).
type ValidacionCobroResponse struct {
	Valida  bool     `json:"valida"`
	Razones []string `json:"razones"`
}

// ToAlertasResponse mapea las alertas de interacciones a DTO.
func ToAlertasResponse(alertas []interaccion.Alerta) []AlertaInteraccionResponse {
	res := make([]AlertaInteraccionResponse, 0, len(alertas))
	for _, a := range alertas {
		res = append(res, AlertaInteraccionResponse{
			Severidad:     string(a.Severidad),
			Pares:         a.Pares,
			Mensaje:       a.Mensaje,
			Recomendacion: a.Recomendacion,
		})
	}
	return res
}

// ToCarritoResponse mapea el estado de la terminal a DTO.
func ToCarritoResponse(e pos.Estado) *CarritoResponse {
	resp := &CarritoResponse{
		Venta:    *ToVentaResponse(&e.Venta),
		Alertas:  ToAlertasResponse(e.Alertas),
		EnEspera: make([]VentaEnEsperaResponse, 0, len(e.EnEspera)),
	}
	for _, espera := range e.EnEspera {
		resp.EnEspera = append(resp.EnEspera, VentaEnEsperaResponse{
			Indice:        espera.Indice,
			Nombre:        espera.Nombre,
			Lineas:        espera.Lineas,
			Total:         espera.Total,
			ClienteNombre: espera.ClienteNombre,
		})
	}
	return resp
}
