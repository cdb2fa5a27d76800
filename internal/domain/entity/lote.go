package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Lote es una partida fechada del stock de un producto.
// Invariantes: CantidadDisponible >= 0 y CantidadDisponible <= CantidadInicial.
// La cantidad disponible solo decrece por movimientos de SALIDA (ventas, mermas).
type Lote struct {
	ID                 string
	ProductoID         string
	NumeroLote         string
	FechaVencimiento   time.Time // cero = sin fecha de vencimiento registrada
	FechaIngreso       time.Time
	CantidadInicial    int
	CantidadDisponible int
	PrecioCompra       decimal.Decimal
	Proveedor          string
	UbicacionAnaquel   string
	Activo             bool
	FechaCreacion      time.Time
	FechaActualizacion time.Time
}

// TieneStock indica si queda cantidad disponible.
func (l *Lote) TieneStock() bool {
	return l.CantidadDisponible > 0
}

// Validar devuelve la lista de violaciones del lote; vacía significa válido.
func (l *Lote) Validar() []string {
	var errores []string
	if esBlanco(l.NumeroLote) {
		errores = append(errores, "El número de lote es obligatorio")
	}
	if l.FechaVencimiento.IsZero() {
		errores = append(errores, "La fecha de vencimiento es obligatoria")
	}
	if l.CantidadInicial <= 0 {
		errores = append(errores, "La cantidad inicial debe ser mayor a 0")
	}
	if l.CantidadDisponible < 0 {
		errores = append(errores, "La cantidad disponible no puede ser negativa")
	}
	if l.CantidadDisponible > l.CantidadInicial {
		errores = append(errores, "La cantidad disponible no puede exceder la inicial")
	}
	if l.PrecioCompra.IsNegative() {
		errores = append(errores, "El precio de compra no puede ser negativo")
	}
	return errores
}

func esBlanco(s string) bool {
	return strings.TrimSpace(s) == ""
}
