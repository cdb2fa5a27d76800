package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// CreateProductoRequest entrada para dar de alta un producto del catálogo.
type CreateProductoRequest struct {
	Nombre           string          `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion      string          `json:"descripcion"`
	Categoria        string          `json:"categoria" validate:"required"`
	PrecioVenta      decimal.Decimal `json:"precio_venta"`
	PrecioCompra     decimal.Decimal `json:"precio_compra"`
	PorcentajeIVA    decimal.Decimal `json:"porcentaje_iva"`
	PorcentajeIEPS   decimal.Decimal `json:"porcentaje_ieps"`
	StockMinimo      int             `json:"stock_minimo"`
	StockOptimo      int             `json:"stock_optimo"`
	CodigoBarras     string          `json:"codigo_barras" validate:"required"`
	SKU              string          `json:"sku"`
	Laboratorio      string          `json:"laboratorio"`
	SustanciaActiva  string          `json:"sustancia_activa" validate:"required"`
	Presentacion     string          `json:"presentacion"`
	TipoRegulacion   string          `json:"tipo_regulacion"`
	GrupoInteraccion string          `json:"grupo_interaccion"`
	UbicacionAnaquel string          `json:"ubicacion_anaquel"`
}

// UpdateProductoRequest entrada para actualizar un producto. El stock no se
// toca aquí: se ajusta vía movimientos de inventario.
type UpdateProductoRequest struct {
	Nombre           *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Descripcion      *string          `json:"descripcion"`
	Categoria        *string          `json:"categoria"`
	PrecioVenta      *decimal.Decimal `json:"precio_venta"`
	PrecioCompra     *decimal.Decimal `json:"precio_compra"`
	PorcentajeIVA    *decimal.Decimal `json:"porcentaje_iva"`
	PorcentajeIEPS   *decimal.Decimal `json:"porcentaje_ieps"`
	StockMinimo      *int             `json:"stock_minimo"`
	StockOptimo      *int             `json:"stock_optimo"`
	CodigoBarras     *string          `json:"codigo_barras"`
	SKU              *string          `json:"sku"`
	Laboratorio      *string          `json:"laboratorio"`
	SustanciaActiva  *string          `json:"sustancia_activa"`
	Presentacion     *string          `json:"presentacion"`
	TipoRegulacion   *string          `json:"tipo_regulacion"`
	GrupoInteraccion *string          `json:"grupo_interaccion"`
	UbicacionAnaquel *string          `json:"ubicacion_anaquel"`
	Activo           *bool            `json:"activo"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID                string          `json:"id"`
	Nombre            string          `json:"nombre"`
	Descripcion       string          `json:"descripcion"`
	Categoria         string          `json:"categoria"`
	PrecioVenta       decimal.Decimal `json:"precio_venta"`
	PrecioCompra      decimal.Decimal `json:"precio_compra"`
	PrecioConImpuestos decimal.Decimal `json:"precio_con_impuestos"`
	PorcentajeIVA     decimal.Decimal `json:"porcentaje_iva"`
	PorcentajeIEPS    decimal.Decimal `json:"porcentaje_ieps"`
	StockTotal        int             `json:"stock_total"`
	StockMinimo       int             `json:"stock_minimo"`
	StockOptimo       int             `json:"stock_optimo"`
	Semaforo          string          `json:"semaforo"`
	CodigoBarras      string          `json:"codigo_barras"`
	SKU               string          `json:"sku"`
	Laboratorio       string          `json:"laboratorio"`
	SustanciaActiva   string          `json:"sustancia_activa"`
	Presentacion      string          `json:"presentacion"`
	TipoRegulacion    string          `json:"tipo_regulacion"`
	RequiereReceta    bool            `json:"requiere_receta"`
	GrupoInteraccion  string          `json:"grupo_interaccion"`
	UbicacionAnaquel  string          `json:"ubicacion_anaquel"`
	Activo            bool            `json:"activo"`
	Lotes             []LoteResponse  `json:"lotes,omitempty"`
	FechaCreacion     time.Time       `json:"fecha_creacion"`
}

// ProductoListResponse lista paginada de productos.
type ProductoListResponse struct {
	Items []ProductoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ToProductoResponse mapea la entidad a su DTO de salida.
func ToProductoResponse(p *entity.Producto) *ProductoResponse {
	resp := &ProductoResponse{
		ID:                 p.ID,
		Nombre:             p.Nombre,
		Descripcion:        p.Descripcion,
		Categoria:          p.Categoria,
		PrecioVenta:        p.PrecioVenta,
		PrecioCompra:       p.PrecioCompra,
		PrecioConImpuestos: p.PrecioConImpuestos(),
		PorcentajeIVA:      p.PorcentajeIVA,
		PorcentajeIEPS:     p.PorcentajeIEPS,
		StockTotal:         p.StockTotal,
		StockMinimo:        p.StockMinimo,
		StockOptimo:        p.StockOptimo,
		Semaforo:           string(p.Semaforo()),
		CodigoBarras:       p.CodigoBarras,
		SKU:                p.SKU,
		Laboratorio:        p.Laboratorio,
		SustanciaActiva:    p.SustanciaActiva,
		Presentacion:       p.Presentacion,
		TipoRegulacion:     string(p.TipoRegulacion),
		RequiereReceta:     p.RequiereReceta(),
		GrupoInteraccion:   string(p.GrupoInteraccion),
		UbicacionAnaquel:   p.UbicacionAnaquel,
		Activo:             p.Activo,
		FechaCreacion:      p.FechaCreacion,
	}
	for i := range p.Lotes {
		resp.Lotes = append(resp.Lotes, *ToLoteResponse(&p.Lotes[i]))
	}
	return resp
}
