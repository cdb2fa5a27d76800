package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/lote"
)

// CreateLoteRequest entrada para registrar un lote de un producto.
// La cantidad disponible inicia igual a la inicial.
type CreateLoteRequest struct {
	ProductoID       string          `json:"producto_id" validate:"required"`
	NumeroLote       string          `json:"numero_lote" validate:"required"`
	FechaVencimiento time.Time       `json:"fecha_vencimiento"`
	CantidadInicial  int             `json:"cantidad_inicial" validate:"min=1"`
	PrecioCompra     decimal.Decimal `json:"precio_compra"`
	Proveedor        string          `json:"proveedor"`
	UbicacionAnaquel string          `json:"ubicacion_anaquel"`
}

// LoteResponse salida de un lote con su estado de caducidad calculado.
type LoteResponse struct {
	ID                 string          `json:"id"`
	ProductoID         string          `json:"producto_id"`
	NumeroLote         string          `json:"numero_lote"`
	FechaVencimiento   *time.Time      `json:"fecha_vencimiento,omitempty"`
	FechaIngreso       time.Time       `json:"fecha_ingreso"`
	CantidadInicial    int             `json:"cantidad_inicial"`
	CantidadDisponible int             `json:"cantidad_disponible"`
	PrecioCompra       decimal.Decimal `json:"precio_compra"`
	Proveedor          string          `json:"proveedor"`
	UbicacionAnaquel   string          `json:"ubicacion_anaquel"`
	Estado             string          `json:"estado"`
	DiasParaVencer     *int            `json:"dias_para_vencer,omitempty"`
	Activo             bool            `json:"activo"`
}

// LoteListResponse lotes de un producto.
type LoteListResponse struct {
	Items []LoteResponse `json:"items"`
}

// ToLoteResponse mapea la entidad a su DTO con el estado al día de hoy.
func ToLoteResponse(l *entity.Lote) *LoteResponse {
	hoy := time.Now()
	resp := &LoteResponse{
		ID:                 l.ID,
		ProductoID:         l.ProductoID,
		NumeroLote:         l.NumeroLote,
		FechaIngreso:       l.FechaIngreso,
		CantidadInicial:    l.CantidadInicial,
		CantidadDisponible: l.CantidadDisponible,
		PrecioCompra:       l.PrecioCompra,
		Proveedor:          l.Proveedor,
		UbicacionAnaquel:   l.UbicacionAnaquel,
		Estado:             string(lote.EstadoDe(*l, hoy)),
		Activo:             l.Activo,
	}
	if !l.FechaVencimiento.IsZero() {
		fv := l.FechaVencimiento
		resp.FechaVencimiento = &fv
		dias := lote.DiasParaVencimiento(*l, hoy)
		resp.DiasParaVencer = &dias
	}
	return resp
}
