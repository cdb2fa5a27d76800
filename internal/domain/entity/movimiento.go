package entity

import "time"

// TipoMovimiento clase de movimiento de inventario.
type TipoMovimiento string

const (
	MovimientoEntrada TipoMovimiento = "ENTRADA"
	MovimientoSalida  TipoMovimiento = "SALIDA"
	MovimientoAjuste  TipoMovimiento = "AJUSTE" // Cantidad es el stock final, no un delta
)

// MovimientoInventario registro de kardex de un producto (y lote, si aplica).
// StockAnterior/StockNuevo se capturan al aplicar el movimiento para auditoría.
type MovimientoInventario struct {
	ID             string
	ProductoID     string
	ProductoNombre string
	LoteID         string
	NumeroLote     string
	Tipo           TipoMovimiento
	Cantidad       int
	StockAnterior  int
	StockNuevo     int
	Motivo         string
	Referencia     string // "Venta ID: x", orden de compra, etc.
	UsuarioID      string
	UsuarioNombre  string
	Fecha          time.Time
	Observaciones  string
	FechaCreacion  time.Time
}

// Validar devuelve la lista de violaciones; vacía significa válido.
func (m *MovimientoInventario) Validar() []string {
	var errores []string
	if m.ProductoID == "" {
		errores = append(errores, "Debe seleccionar un producto")
	}
	if m.Cantidad <= 0 && m.Tipo != MovimientoAjuste {
		errores = append(errores, "La cantidad debe ser mayor a 0")
	}
	if m.Tipo == MovimientoAjuste && m.Cantidad < 0 {
		errores = append(errores, "El stock ajustado no puede ser negativo")
	}
	if esBlanco(m.Motivo) {
		errores = append(errores, "El motivo es obligatorio")
	}
	switch m.Tipo {
	case MovimientoEntrada, MovimientoSalida, MovimientoAjuste:
	default:
		errores = append(errores, "Tipo de movimiento no válido")
	}
	return errores
}
