package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoCorte ciclo de vida del corte de caja: ABIERTO -> CERRADO (terminal).
type EstadoCorte string

const (
	CorteAbierto EstadoCorte = "ABIERTO"
	CorteCerrado EstadoCorte = "CERRADO"
)

// EstadoDiferencia clasificación de la diferencia declarado − esperado.
type EstadoDiferencia string

const (
	DiferenciaCuadrado EstadoDiferencia = "CUADRADO"
	DiferenciaSobrante EstadoDiferencia = "SOBRANTE"
	DiferenciaFaltante EstadoDiferencia = "FALTANTE"
)

// CorteCaja un turno de caja (corte Z). Los acumulados por método de pago los
// alimenta la persistencia de ventas; el efectivo declarado sale del conteo
// ciego por denominaciones y solo se compara contra el esperado al cerrar.
type CorteCaja struct {
	ID               string
	NumeroCaja       int
	CajeroID         string
	CajeroNombre     string
	SupervisorID     string
	SupervisorNombre string
	FechaApertura    time.Time
	FechaCierre      time.Time // cero mientras está abierto

	// Montos registrados por el sistema
	VentasEfectivo       decimal.Decimal
	VentasTarjeta        decimal.Decimal
	VentasTransferencia  decimal.Decimal
	TotalVentas          decimal.Decimal
	TotalDevoluciones    decimal.Decimal
	RetirosEfectivo      decimal.Decimal
	FondoInicial         decimal.Decimal
	CantidadVentas       int
	CantidadCancelaciones int

	// Conteo ciego y reconciliación (inmutables tras el cierre)
	EfectivoDeclarado decimal.Decimal
	EfectivoEsperado  decimal.Decimal
	Diferencia        decimal.Decimal

	Estado        EstadoCorte
	Observaciones string
	Desglose      *DesgloseDenominaciones
	FechaCreacion time.Time
}

// RetiroEfectivo retiro de efectivo del cajón durante el turno.
// El PIN es un token de autorización del supervisor; no se verifica
// criptográficamente en este sistema.
type RetiroEfectivo struct {
	ID            string
	CorteCajaID   string
	Monto         decimal.Decimal
	Motivo        string
	AutorizadoPor string
	PinSupervisor string
	Fecha         time.Time
	Observaciones string
}

// Validar devuelve la lista de violaciones del retiro; vacía significa válido.
func (r *RetiroEfectivo) Validar() []string {
	var errores []string
	if r.Monto.LessThanOrEqual(decimal.Zero) {
		errores = append(errores, "El monto del retiro debe ser mayor a $0")
	}
	if esBlanco(r.Motivo) {
		errores = append(errores, "El motivo es obligatorio")
	}
	if esBlanco(r.AutorizadoPor) {
		errores = append(errores, "Se requiere autorización de un supervisor")
	}
	return errores
}
