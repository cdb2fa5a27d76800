package corte_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/corte"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la reconciliación del corte de caja: acumulados por método de pago,
// aritmética del efectivo esperado, conteo ciego y cierre de una sola vez.
//
// Escenario de referencia del turno:
//
//	fondo inicial        $1,000.00
//	ventas en efectivo   $2,345.50
//	retiros              $500.00
//	devoluciones         $45.50
//	esperado             1000 + 2345.50 − 500 − 45.50 = $2,800.00
// ──────────────────────────────────────────────────────────────────────────────

var apertura = time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)

func mxn(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func buildCorteTurno(t *testing.T) *entity.CorteCaja {
	t.Helper()
	c := corte.Abrir(1, mxn("1000"), apertura)

	require.NoError(t, corte.RegistrarVenta(c, mxn("2000.50"), entity.PagoEfectivo))
	require.NoError(t, corte.RegistrarVenta(c, mxn("345"), entity.PagoEfectivo))
	require.NoError(t, corte.RegistrarVenta(c, mxn("899.99"), entity.PagoTarjeta))

	retiro := &entity.RetiroEfectivo{
		Monto:         mxn("500"),
		Motivo:        "Retiro parcial a bóveda",
		AutorizadoPor: "Supervisor Mendoza",
	}
	require.NoError(t, corte.RegistrarRetiro(c, retiro))

	c.TotalDevoluciones = mxn("45.50")
	return c
}

// ── Acumulados del turno ──────────────────────────────────────────────────────

func TestRegistrarVenta_AcumulaPorMetodo(t *testing.T) {
	c := buildCorteTurno(t)

	assert.True(t, c.VentasEfectivo.Equal(mxn("2345.50")), "efectivo: %s", c.VentasEfectivo)
	assert.True(t, c.VentasTarjeta.Equal(mxn("899.99")), "tarjeta: %s", c.VentasTarjeta)
	assert.True(t, c.TotalVentas.Equal(mxn("3245.49")), "total: %s", c.TotalVentas)
	assert.Equal(t, 3, c.CantidadVentas)
}

func TestRegistrarVenta_MetodoDesconocidoCuentaComoEfectivo(t *testing.T) {
	c := corte.Abrir(1, mxn("500"), apertura)
	require.NoError(t, corte.RegistrarVenta(c, mxn("100"), entity.MetodoPago("VALE")))
	assert.True(t, c.VentasEfectivo.Equal(mxn("100")))
}

func TestRegistrarVenta_RechazaCorteCerrado(t *testing.T) {
	c := corte.Abrir(1, mxn("500"), apertura)
	c.Estado = entity.CorteCerrado

	err := corte.RegistrarVenta(c, mxn("100"), entity.PagoEfectivo)
	assert.ErrorIs(t, err, domain.ErrCorteCerrado)
}

func TestRegistrarRetiro_Invalido(t *testing.T) {
	c := corte.Abrir(1, mxn("500"), apertura)

	err := corte.RegistrarRetiro(c, &entity.RetiroEfectivo{Monto: mxn("-10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, c.RetirosEfectivo.IsZero(), "Un retiro inválido no debe acumular")
}

// ── Aritmética del efectivo ───────────────────────────────────────────────────

func TestEfectivoEsperado(t *testing.T) {
	c := buildCorteTurno(t)
	esperado := corte.EfectivoEsperado(c)
	assert.True(t, esperado.Equal(mxn("2800")),
		"1000 + 2345.50 − 500 − 45.50 debe ser 2800, no %s", esperado)
}

func TestEfectivoEsperado_EsConsultaPura(t *testing.T) {
	c := buildCorteTurno(t)
	antes := *c
	_ = corte.EfectivoEsperado(c)
	assert.Equal(t, antes, *c, "EfectivoEsperado no debe mutar el corte")
}

func TestEfectivoEnCajon_SinContarFondo(t *testing.T) {
	c := buildCorteTurno(t)
	assert.True(t, corte.EfectivoEnCajon(c).Equal(mxn("1845.50")),
		"2345.50 − 500 = 1845.50")
}

// ── Cierre y conteo ciego ─────────────────────────────────────────────────────

// desgloseDe2800 suma exactamente $2,800: 2×1000 + 1×500 + 1×200 + 5×20.
func desgloseDe2800() *entity.DesgloseDenominaciones {
	d := entity.NuevoDesglose()
	d.Billetes["1000"] = 2
	d.Billetes["500"] = 1
	d.Billetes["200"] = 1
	d.Monedas["20"] = 5
	return d
}

func TestCerrar_Cuadrado(t *testing.T) {
	c := buildCorteTurno(t)
	cierre := apertura.Add(10 * time.Hour)

	err := corte.Cerrar(c, desgloseDe2800(), "Turno sin incidentes", cierre)
	require.NoError(t, err)

	assert.Equal(t, entity.CorteCerrado, c.Estado)
	assert.True(t, c.EfectivoDeclarado.Equal(mxn("2800")))
	assert.True(t, c.EfectivoEsperado.Equal(mxn("2800")))
	assert.True(t, c.Diferencia.IsZero())
	assert.Equal(t, entity.DiferenciaCuadrado, corte.EstadoDiferenciaDe(c))
	assert.Equal(t, cierre, c.FechaCierre)
}

func TestCerrar_Sobrante(t *testing.T) {
	c := buildCorteTurno(t)

	d := desgloseDe2800()
	d.Monedas["0.50"] = 1 // $0.50 de más en el cajón

	require.NoError(t, corte.Cerrar(c, d, "", apertura.Add(10*time.Hour)))
	assert.True(t, c.Diferencia.Equal(mxn("0.50")))
	assert.Equal(t, entity.DiferenciaSobrante, corte.EstadoDiferenciaDe(c))
}

func TestCerrar_Faltante(t *testing.T) {
	c := buildCorteTurno(t)

	d := desgloseDe2800()
	d.Billetes["200"] = 0 // faltan $200

	require.NoError(t, corte.Cerrar(c, d, "", apertura.Add(10*time.Hour)))
	assert.True(t, c.Diferencia.Equal(mxn("-200")))
	assert.Equal(t, entity.DiferenciaFaltante, corte.EstadoDiferenciaDe(c))
}

func TestCerrar_SegundoCierreRechazado(t *testing.T) {
	c := buildCorteTurno(t)
	require.NoError(t, corte.Cerrar(c, desgloseDe2800(), "", apertura.Add(10*time.Hour)))

	declaradoOriginal := c.EfectivoDeclarado

	d := entity.NuevoDesglose()
	d.Billetes["1000"] = 5
	err := corte.Cerrar(c, d, "intento doble", apertura.Add(11*time.Hour))

	assert.ErrorIs(t, err, domain.ErrCorteCerrado, "El cierre es terminal, no idempotente")
	assert.True(t, c.EfectivoDeclarado.Equal(declaradoOriginal),
		"Un segundo cierre no debe alterar la reconciliación ya hecha")
}

func TestCerrar_DesgloseObligatorio(t *testing.T) {
	c := buildCorteTurno(t)
	err := corte.Cerrar(c, nil, "", apertura.Add(10*time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.CorteAbierto, c.Estado)
}

func TestCerrar_DesgloseInvalido(t *testing.T) {
	c := buildCorteTurno(t)

	d := entity.NuevoDesglose()
	d.Billetes["300"] = 1 // denominación fuera del conjunto cerrado

	err := corte.Cerrar(c, d, "", apertura.Add(10*time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.CorteAbierto, c.Estado, "Un desglose inválido no cierra el corte")
}

// ── Desglose ──────────────────────────────────────────────────────────────────

func TestDesglose_Total(t *testing.T) {
	d := entity.NuevoDesglose()
	d.Billetes["500"] = 3
	d.Billetes["50"] = 2
	d.Monedas["10"] = 4
	d.Monedas["0.50"] = 3

	assert.True(t, d.Total().Equal(mxn("1641.50")),
		"3×500 + 2×50 + 4×10 + 3×0.50 = 1641.50, no %s", d.Total())
}

func TestClasificarDiferencia(t *testing.T) {
	assert.Equal(t, entity.DiferenciaCuadrado, corte.ClasificarDiferencia(decimal.Zero))
	assert.Equal(t, entity.DiferenciaSobrante, corte.ClasificarDiferencia(mxn("0.01")))
	assert.Equal(t, entity.DiferenciaFaltante, corte.ClasificarDiferencia(mxn("-0.01")))
}
