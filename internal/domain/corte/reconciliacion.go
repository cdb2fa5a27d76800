// Package corte implementa la reconciliación del corte de caja: acumulados
// del turno, conteo ciego por denominaciones y clasificación de la diferencia.
//
// Propiedad de auditoría del conteo ciego: el efectivo esperado no debe
// mostrarse al cajero antes de capturar el desglose. EfectivoEsperado existe
// para el cálculo del cierre; la capa HTTP no lo expone en cortes abiertos.
package corte

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// Abrir crea un corte abierto con el fondo inicial indicado.
func Abrir(numeroCaja int, fondoInicial decimal.Decimal, ahora time.Time) *entity.CorteCaja {
	return &entity.CorteCaja{
		NumeroCaja:    numeroCaja,
		FondoInicial:  fondoInicial,
		FechaApertura: ahora,
		Estado:        entity.CorteAbierto,
		Desglose:      entity.NuevoDesglose(),
	}
}

// RegistrarVenta acumula una venta completada en el corte según su método de
// pago. Métodos no reconocidos se acumulan como efectivo.
func RegistrarVenta(c *entity.CorteCaja, monto decimal.Decimal, metodo entity.MetodoPago) error {
	if c.Estado != entity.CorteAbierto {
		return domain.ErrCorteCerrado
	}
	c.TotalVentas = c.TotalVentas.Add(monto)
	c.CantidadVentas++
	switch metodo {
	case entity.PagoTarjeta:
		c.VentasTarjeta = c.VentasTarjeta.Add(monto)
	case entity.PagoTransferencia:
		c.VentasTransferencia = c.VentasTransferencia.Add(monto)
	default:
		c.VentasEfectivo = c.VentasEfectivo.Add(monto)
	}
	return nil
}

// RegistrarCancelacion cuenta una venta cancelada (no afecta montos).
func RegistrarCancelacion(c *entity.CorteCaja) {
	c.CantidadCancelaciones++
}

// RegistrarRetiro aplica un retiro de efectivo ya validado al corte.
func RegistrarRetiro(c *entity.CorteCaja, retiro *entity.RetiroEfectivo) error {
	if c.Estado != entity.CorteAbierto {
		return domain.ErrCorteCerrado
	}
	if errores := retiro.Validar(); len(errores) > 0 {
		return fmt.Errorf("retiro inválido (%v): %w", errores, domain.ErrInvalidInput)
	}
	c.RetirosEfectivo = c.RetirosEfectivo.Add(retiro.Monto)
	return nil
}

// EfectivoEsperado fondo inicial + ventas en efectivo − retiros − devoluciones.
// Consulta pura: no modifica el corte.
func EfectivoEsperado(c *entity.CorteCaja) decimal.Decimal {
	return c.FondoInicial.
		Add(c.VentasEfectivo).
		Sub(c.RetirosEfectivo).
		Sub(c.TotalDevoluciones)
}

// EfectivoEnCajon efectivo acumulado en el cajón sin contar el fondo:
// ventas en efectivo menos retiros. Alimenta la alerta de retiro.
func EfectivoEnCajon(c *entity.CorteCaja) decimal.Decimal {
	return c.VentasEfectivo.Sub(c.RetirosEfectivo)
}

// ClasificarDiferencia CUADRADO / SOBRANTE / FALTANTE según el signo.
func ClasificarDiferencia(diferencia decimal.Decimal) entity.EstadoDiferencia {
	switch {
	case diferencia.IsZero():
		return entity.DiferenciaCuadrado
	case diferencia.IsPositive():
		return entity.DiferenciaSobrante
	}
	return entity.DiferenciaFaltante
}

// Cerrar ejecuta la reconciliación y cierra el corte exactamente una vez:
// declarado = total del desglose, esperado = EfectivoEsperado, diferencia =
// declarado − esperado. Cerrar un corte ya cerrado es una violación de estado
// terminal, no una operación idempotente.
func Cerrar(c *entity.CorteCaja, desglose *entity.DesgloseDenominaciones, observaciones string, ahora time.Time) error {
	if c.Estado == entity.CorteCerrado {
		return domain.ErrCorteCerrado
	}
	if desglose == nil {
		return fmt.Errorf("desglose de denominaciones requerido: %w", domain.ErrInvalidInput)
	}
	if errores := desglose.Validar(); len(errores) > 0 {
		return fmt.Errorf("desglose inválido (%v): %w", errores, domain.ErrInvalidInput)
	}

	c.Desglose = desglose
	c.EfectivoDeclarado = desglose.Total()
	c.EfectivoEsperado = EfectivoEsperado(c)
	c.Diferencia = c.EfectivoDeclarado.Sub(c.EfectivoEsperado)
	c.Observaciones = observaciones
	c.FechaCierre = ahora
	c.Estado = entity.CorteCerrado
	return nil
}

// EstadoDiferenciaDe clasificación de la diferencia de un corte cerrado.
func EstadoDiferenciaDe(c *entity.CorteCaja) entity.EstadoDiferencia {
	return ClasificarDiferencia(c.Diferencia)
}
