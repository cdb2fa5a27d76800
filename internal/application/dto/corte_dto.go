package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pos/internal/domain/corte"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// RetiroRequest entrada para un retiro de efectivo autorizado.
type RetiroRequest struct {
	Monto         decimal.Decimal `json:"monto"`
	Motivo        string          `json:"motivo" validate:"required"`
	AutorizadoPor string          `json:"autorizado_por" validate:"required"`
	PinSupervisor string          `json:"pin_supervisor"`
	Observaciones string          `json:"observaciones"`
}

// DesgloseRequest conteo por denominaciones capturado al cierre.
// Las claves son el valor nominal ("500", "0.50") y el valor la cantidad.
type DesgloseRequest struct {
	Billetes map[string]int `json:"billetes"`
	Monedas  map[string]int `json:"monedas"`
}

// CierreCorteRequest entrada del cierre con conteo ciego.
type CierreCorteRequest struct {
	Desglose      DesgloseRequest `json:"desglose"`
	Observaciones string          `json:"observaciones"`
	CajeroNombre  string          `json:"cajero_nombre"`
}

// CorteResponse salida de un corte. Los campos de reconciliación (esperado,
// declarado, diferencia) solo se serializan en cortes cerrados: mientras el
// corte está abierto el cajero no debe conocer el esperado (conteo ciego).
type CorteResponse struct {
	ID                    string          `json:"id"`
	NumeroCaja            int             `json:"numero_caja"`
	CajeroNombre          string          `json:"cajero_nombre,omitempty"`
	Estado                string          `json:"estado"`
	FechaApertura         time.Time       `json:"fecha_apertura"`
	FechaCierre           *time.Time      `json:"fecha_cierre,omitempty"`
	FondoInicial          decimal.Decimal `json:"fondo_inicial"`
	TotalVentas           decimal.Decimal `json:"total_ventas"`
	VentasTarjeta         decimal.Decimal `json:"ventas_tarjeta"`
	VentasTransferencia   decimal.Decimal `json:"ventas_transferencia"`
	RetirosEfectivo       decimal.Decimal `json:"retiros_efectivo"`
	CantidadVentas        int             `json:"cantidad_ventas"`
	CantidadCancelaciones int             `json:"cantidad_cancelaciones"`
	Observaciones         string          `json:"observaciones,omitempty"`

	// Solo en cortes cerrados.
	VentasEfectivo    *decimal.Decimal `json:"ventas_efectivo,omitempty"`
	EfectivoDeclarado *decimal.Decimal `json:"efectivo_declarado,omitempty"`
	EfectivoEsperado  *decimal.Decimal `json:"efectivo_esperado,omitempty"`
	Diferencia        *decimal.Decimal `json:"diferencia,omitempty"`
	EstadoDiferencia  string           `json:"estado_diferencia,omitempty"`
	Desglose          *DesgloseRequest `json:"desglose,omitempty"`
}

// CorteListResponse historial paginado de cortes cerrados.
type CorteListResponse struct {
	Items []CorteResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// RetiroResponse salida de un retiro registrado.
type RetiroResponse struct {
	ID            string          `json:"id"`
	CorteCajaID   string          `json:"corte_caja_id"`
	Monto         decimal.Decimal `json:"monto"`
	Motivo        string          `json:"motivo"`
	AutorizadoPor string          `json:"autorizado_por"`
	Fecha         time.Time       `json:"fecha"`
	Observaciones string          `json:"observaciones,omitempty"`
}

// AlertaEfectivoResponse alerta de exceso de efectivo en el cajón.
type AlertaEfectivoResponse struct {
	Activa bool            `json:"activa"`
	Limite decimal.Decimal `json:"limite"`
}

// ToDesglose convierte la entrada en la entidad de conteo.
func (d DesgloseRequest) ToDesglose() *entity.DesgloseDenominaciones {
	desglose := entity.NuevoDesglose()
	for denominacion, cantidad := range d.Billetes {
		desglose.Billetes[denominacion] = cantidad
	}
	for denominacion, cantidad := range d.Monedas {
		desglose.Monedas[denominacion] = cantidad
	}
	return desglose
}

// ToCorteResponse mapea el corte a DTO respetando el conteo ciego.
func ToCorteResponse(c *entity.CorteCaja) *CorteResponse {
	resp := &CorteResponse{
		ID:                    c.ID,
		NumeroCaja:            c.NumeroCaja,
		CajeroNombre:          c.CajeroNombre,
		Estado:                string(c.Estado),
		FechaApertura:         c.FechaApertura,
		FondoInicial:          c.FondoInicial,
		TotalVentas:           c.TotalVentas,
		VentasTarjeta:         c.VentasTarjeta,
		VentasTransferencia:   c.VentasTransferencia,
		RetirosEfectivo:       c.RetirosEfectivo,
		CantidadVentas:        c.CantidadVentas,
		CantidadCancelaciones: c.CantidadCancelaciones,
		Observaciones:         c.Observaciones,
	}
	if c.Estado != entity.CorteCerrado {
		return resp
	}

	fc := c.FechaCierre
	resp.FechaCierre = &fc
	ventasEfectivo := c.VentasEfectivo
	declarado := c.EfectivoDeclarado
	esperado := c.EfectivoEsperado
	diferencia := c.Diferencia
	resp.VentasEfectivo = &ventasEfectivo
	resp.EfectivoDeclarado = &declarado
	resp.EfectivoEsperado = &esperado
	resp.Diferencia = &diferencia
	resp.EstadoDiferencia = string(corte.EstadoDiferenciaDe(c))
	if c.Desglose != nil {
		resp.Desglose = &DesgloseRequest{
			Billetes: c.Desglose.Billetes,
			Monedas:  c.Desglose.Monedas,
		}
	}
	return resp
}

// ToRetiroResponse mapea el retiro a DTO.
func ToRetiroResponse(r *entity.RetiroEfectivo) *RetiroResponse {
	return &RetiroResponse{
		ID:            r.ID,
		CorteCajaID:   r.CorteCajaID,
		Monto:         r.Monto,
		Motivo:        r.Motivo,
		AutorizadoPor: r.AutorizadoPor,
		Fecha:         r.Fecha,
		Observaciones: r.Observaciones,
	}
}
