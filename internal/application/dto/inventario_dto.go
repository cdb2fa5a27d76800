package dto

import (
	"time"

	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// CreateMovimientoRequest entrada para registrar un movimiento de inventario.
// En AJUSTE la cantidad es el stock final del lote, no un delta.
type CreateMovimientoRequest struct {
	ProductoID    string `json:"producto_id" validate:"required"`
	LoteID        string `json:"lote_id"`
	Tipo          string `json:"tipo" validate:"required,oneof=ENTRADA SALIDA AJUSTE"`
	Cantidad      int    `json:"cantidad"`
	Motivo        string `json:"motivo" validate:"required"`
	Referencia    string `json:"referencia"`
	Observaciones string `json:"observaciones"`
}

// MovimientoResponse registro de kardex.
type MovimientoResponse struct {
	ID             string    `json:"id"`
	ProductoID     string    `json:"producto_id"`
	ProductoNombre string    `json:"producto_nombre"`
	LoteID         string    `json:"lote_id,omitempty"`
	NumeroLote     string    `json:"numero_lote,omitempty"`
	Tipo           string    `json:"tipo"`
	Cantidad       int       `json:"cantidad"`
	StockAnterior  int       `json:"stock_anterior"`
	StockNuevo     int       `json:"stock_nuevo"`
	Motivo         string    `json:"motivo"`
	Referencia     string    `json:"referencia,omitempty"`
	Fecha          time.Time `json:"fecha"`
	Observaciones  string    `json:"observaciones,omitempty"`
}

// MovimientoListResponse kardex paginado.
type MovimientoListResponse struct {
	Items []MovimientoResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// ToMovimientoResponse mapea el movimiento a DTO.
func ToMovimientoResponse(m *entity.MovimientoInventario) *MovimientoResponse {
	return &MovimientoResponse{
		ID:             m.ID,
		ProductoID:     m.ProductoID,
		ProductoNombre: m.ProductoNombre,
		LoteID:         m.LoteID,
		NumeroLote:     m.NumeroLote,
		Tipo:           string(m.Tipo),
		Cantidad:       m.Cantidad,
		StockAnterior:  m.StockAnterior,
		StockNuevo:     m.StockNuevo,
		Motivo:         m.Motivo,
		Referencia:     m.Referencia,
		Fecha:          m.Fecha,
		Observaciones:  m.Observaciones,
	}
}
