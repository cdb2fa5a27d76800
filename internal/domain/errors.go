package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas). Ninguno es fatal:
// todos dejan el estado previo válido para reintentar la operación.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrVentaFinalizando  = errors.New("la venta ya se está finalizando")
	ErrVentaVacia        = errors.New("la venta no tiene productos")
	ErrCorteCerrado      = errors.New("el corte de caja ya está cerrado")
)

// ErrorValidacion agrupa las violaciones de un Validar() de entidad para que
// la capa HTTP pueda mostrarlas todas de una vez.
type ErrorValidacion struct {
	Errores []string
}

func (e *ErrorValidacion) Error() string {
	return "validación fallida: " + strings.Join(e.Errores, "; ")
}

func (e *ErrorValidacion) Unwrap() error { return ErrInvalidInput }

// NuevaValidacion devuelve nil si no hay violaciones.
func NuevaValidacion(errores []string) error {
	if len(errores) == 0 {
		return nil
	}
	return &ErrorValidacion{Errores: errores}
}
