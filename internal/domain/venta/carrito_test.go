package venta_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/venta"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del carrito: selección FEFO al agregar, compuertas de caducidad y
// stock, precios congelados por línea, validación de cobro y espera.
// ──────────────────────────────────────────────────────────────────────────────

var hoy = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func mxn(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func buildLote(id string, venceEnDias, disponible int) entity.Lote {
	return entity.Lote{
		ID:                 id,
		ProductoID:         "prod-paracetamol",
		NumeroLote:         "L-" + id,
		FechaVencimiento:   hoy.AddDate(0, 0, venceEnDias),
		CantidadInicial:    disponible,
		CantidadDisponible: disponible,
	}
}

func buildParacetamol(lotes ...entity.Lote) *entity.Producto {
	return &entity.Producto{
		ID:               "prod-paracetamol",
		Nombre:           "Paracetamol 500mg",
		PrecioVenta:      mxn("50"),
		PorcentajeIVA:    mxn("16"),
		SustanciaActiva:  "Paracetamol",
		TipoRegulacion:   entity.RegulacionVentaLibre,
		GrupoInteraccion: entity.GrupoNinguno,
		Lotes:            lotes,
	}
}

func buildAmoxicilina() *entity.Producto {
	return &entity.Producto{
		ID:               "prod-amoxi",
		Nombre:           "Amoxicilina 500mg",
		PrecioVenta:      mxn("120"),
		PorcentajeIVA:    mxn("16"),
		SustanciaActiva:  "Amoxicilina",
		TipoRegulacion:   entity.RegulacionAntibiotico,
		GrupoInteraccion: entity.GrupoAntibioticos,
	}
}

// ── Agregar producto ──────────────────────────────────────────────────────────

func TestAgregarProducto_SeleccionaLoteFEFO(t *testing.T) {
	c := venta.Nuevo()
	p := buildParacetamol(
		buildLote("lejano", 180, 50),
		buildLote("proximo", 20, 50),
	)

	res, err := c.AgregarProducto(p, 2, nil, hoy)
	require.NoError(t, err)

	require.NotNil(t, res.LoteSeleccionado)
	assert.Equal(t, "proximo", res.LoteSeleccionado.ID, "FEFO elige el lote que vence primero")
	assert.Equal(t, 0, res.IndiceLinea)
	assert.Equal(t, "L-proximo", c.Venta.Detalles[0].NumeroLote)
}

func TestAgregarProducto_SinLotesConfigurados(t *testing.T) {
	c := venta.Nuevo()
	p := buildAmoxicilina() // sin manejo de lotes

	res, err := c.AgregarProducto(p, 1, nil, hoy)
	require.NoError(t, err)

	assert.Nil(t, res.LoteSeleccionado)
	assert.True(t, res.RequiereReceta, "Un antibiótico avisa que requerirá receta")
	assert.Empty(t, c.Venta.Detalles[0].LoteID)
}

func TestAgregarProducto_TodosLosLotesCaducados(t *testing.T) {
	c := venta.Nuevo()
	p := buildParacetamol(buildLote("viejo", -30, 50))

	_, err := c.AgregarProducto(p, 1, nil, hoy)

	var sinLote *venta.ErrorSinLoteElegible
	require.ErrorAs(t, err, &sinLote)
	assert.Contains(t, sinLote.Error(), "Paracetamol 500mg",
		"El error nombra el producto para el operador")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, c.Venta.Detalles, "El carrito queda intacto cuando la operación falla")
}

func TestAgregarProducto_LoteManualCaducadoRechazado(t *testing.T) {
	c := venta.Nuevo()
	vigente := buildLote("vigente", 60, 50)
	caducado := buildLote("caducado", -1, 50)
	p := buildParacetamol(vigente, caducado)

	_, err := c.AgregarProducto(p, 1, &caducado, hoy)

	var errCaducado *venta.ErrorLoteCaducado
	require.ErrorAs(t, err, &errCaducado,
		"La selección manual no brinca la compuerta de caducidad")
	assert.Equal(t, "L-caducado", errCaducado.NumeroLote)
	assert.Empty(t, c.Venta.Detalles)
}

func TestAgregarProducto_StockContraLoApartado(t *testing.T) {
	c := venta.Nuevo()
	p := buildParacetamol(buildLote("unico", 60, 10))

	_, err := c.AgregarProducto(p, 7, nil, hoy)
	require.NoError(t, err)

	// Quedan 3 teóricas en el lote: pedir 4 más debe fallar.
	_, err = c.AgregarProducto(p, 4, nil, hoy)

	var insuficiente *venta.ErrorStockInsuficiente
	require.ErrorAs(t, err, &insuficiente)
	assert.Equal(t, 3, insuficiente.Disponible, "El disponible descuenta lo ya apartado")
	assert.Equal(t, 4, insuficiente.Solicitado)
	assert.Len(t, c.Venta.Detalles, 1, "La línea fallida no se agrega")

	// Pedir exactamente lo que queda sí procede.
	_, err = c.AgregarProducto(p, 3, nil, hoy)
	assert.NoError(t, err)
}

func TestAgregarProducto_CantidadInvalida(t *testing.T) {
	c := venta.Nuevo()
	_, err := c.AgregarProducto(buildAmoxicilina(), 0, nil, hoy)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAgregarProducto_AlertaDeInteraccion(t *testing.T) {
	c := venta.Nuevo()

	warfarina := &entity.Producto{
		ID: "prod-warfa", Nombre: "Warfarina 5mg", PrecioVenta: mxn("200"),
		SustanciaActiva: "Warfarina", TipoRegulacion: entity.RegulacionVentaLibre,
		GrupoInteraccion: entity.GrupoAnticoagulantes,
	}
	ibuprofeno := &entity.Producto{
		ID: "prod-ibu", Nombre: "Ibuprofeno 400mg", PrecioVenta: mxn("60"),
		SustanciaActiva: "Ibuprofeno", TipoRegulacion: entity.RegulacionVentaLibre,
		GrupoInteraccion: entity.GrupoAINES,
	}

	_, err := c.AgregarProducto(warfarina, 1, nil, hoy)
	require.NoError(t, err)

	res, err := c.AgregarProducto(ibuprofeno, 1, nil, hoy)
	require.NoError(t, err, "Las interacciones alertan pero nunca bloquean agregar")

	require.Len(t, res.Interacciones, 1)
	assert.Len(t, c.Alertas, 1, "La alerta queda activa en el carrito")
	assert.Len(t, c.Venta.Detalles, 2)
}

// ── Totales ───────────────────────────────────────────────────────────────────

func TestTotales_ImpuestoCongeladoPorLinea(t *testing.T) {
	c := venta.Nuevo()
	p := buildParacetamol()

	_, err := c.AgregarProducto(p, 2, nil, hoy)
	require.NoError(t, err)

	// Cambios posteriores del catálogo no tocan la línea ya capturada.
	p.PrecioVenta = mxn("999")
	p.PorcentajeIVA = mxn("0")
	c.Venta.CalcularTotales()

	assert.True(t, c.Venta.Subtotal.Equal(mxn("100")), "2 × $50 congelados")
	assert.True(t, c.Venta.Impuesto.Equal(mxn("16")), "16%% congelado: %s", c.Venta.Impuesto)
	assert.True(t, c.Venta.Total.Equal(mxn("116")))
}

func TestTotales_DescuentoGlobalDeCliente(t *testing.T) {
	c := venta.Nuevo()
	_, err := c.AgregarProducto(buildParacetamol(), 2, nil, hoy)
	require.NoError(t, err)

	c.SeleccionarCliente(&entity.Cliente{
		ID: "cli-1", Nombre: "Ana", Apellido: "Torres",
		Descuento: mxn("10"),
	})

	// subtotal 100, impuesto 16, descuento 10% del subtotal = 10.
	assert.True(t, c.Venta.Total.Equal(mxn("106")), "total: %s", c.Venta.Total)
	assert.Equal(t, "Ana Torres", c.Venta.ClienteNombre)
}

func TestCambio_NuncaNegativo(t *testing.T) {
	c := venta.Nuevo()
	_, err := c.AgregarProducto(buildParacetamol(), 1, nil, hoy) // total 58
	require.NoError(t, err)

	c.EstablecerMontoPagado(mxn("100"))
	assert.True(t, c.Venta.Cambio.Equal(mxn("42")), "cambio: %s", c.Venta.Cambio)

	c.EstablecerMontoPagado(mxn("20"))
	assert.True(t, c.Venta.Cambio.IsZero(), "Un pago insuficiente nunca produce cambio negativo")
}

// ── Líneas ────────────────────────────────────────────────────────────────────

func TestEliminarDetalle_RecalculaTotales(t *testing.T) {
	c := venta.Nuevo()
	_, _ = c.AgregarProducto(buildParacetamol(), 1, nil, hoy)
	_, _ = c.AgregarProducto(buildAmoxicilina(), 1, nil, hoy)

	c.EliminarDetalle(0)

	require.Len(t, c.Venta.Detalles, 1)
	assert.Equal(t, "Amoxicilina 500mg", c.Venta.Detalles[0].ProductoNombre)
	assert.True(t, c.Venta.Subtotal.Equal(mxn("120")))

	c.EliminarDetalle(99) // fuera de rango: no-op
	assert.Len(t, c.Venta.Detalles, 1)
}

func TestActualizarCantidad(t *testing.T) {
	c := venta.Nuevo()
	p := buildParacetamol(buildLote("unico", 60, 10))
	_, err := c.AgregarProducto(p, 2, nil, hoy)
	require.NoError(t, err)

	require.NoError(t, c.ActualizarCantidad(0, 5, 10))
	assert.Equal(t, 5, c.Venta.Detalles[0].Cantidad)
	assert.True(t, c.Venta.Subtotal.Equal(mxn("250")))

	err = c.ActualizarCantidad(0, 11, 10)
	var insuficiente *venta.ErrorStockInsuficiente
	require.ErrorAs(t, err, &insuficiente, "No se puede exceder la capacidad del lote")
	assert.Equal(t, 5, c.Venta.Detalles[0].Cantidad, "La cantidad no cambia si falla")

	require.NoError(t, c.ActualizarCantidad(0, 0, 10))
	assert.Empty(t, c.Venta.Detalles, "Cantidad 0 elimina la línea")
}

// ── Validación de cobro ───────────────────────────────────────────────────────

func TestValidar_CarritoVacio(t *testing.T) {
	c := venta.Nuevo()
	errores := c.Validar(hoy)
	assert.Contains(t, errores, "Debe agregar al menos un producto")
	assert.Contains(t, errores, "El total debe ser mayor a $0")
}

func TestValidar_RecetaFaltanteNombraProducto(t *testing.T) {
	c := venta.Nuevo()
	_, err := c.AgregarProducto(buildAmoxicilina(), 1, nil, hoy)
	require.NoError(t, err)

	errores := c.Validar(hoy)
	assert.Contains(t, errores, "Amoxicilina 500mg requiere receta médica")

	c.AsignarReceta(0, &entity.RecetaMedica{
		CedulaMedico: "1234567",
		NombreMedico: "Dr. Juan Salas",
		FolioReceta:  "F-100",
		FechaReceta:  hoy.AddDate(0, 0, -3),
	})
	assert.Empty(t, c.Validar(hoy), "Con receta válida adjunta la venta queda cobrable")
}

func TestValidar_MontoPagadoInsuficiente(t *testing.T) {
	c := venta.Nuevo()
	_, err := c.AgregarProducto(buildParacetamol(), 1, nil, hoy) // total 58
	require.NoError(t, err)

	// Sin monto capturado todavía no se valida el pago.
	assert.Empty(t, c.Validar(hoy))

	c.EstablecerMontoPagado(mxn("50"))
	assert.Contains(t, c.Validar(hoy), "El monto pagado es insuficiente")

	c.EstablecerMontoPagado(mxn("58"))
	assert.Empty(t, c.Validar(hoy))
}

// ── Espera y cancelación ──────────────────────────────────────────────────────

func TestPonerEnEspera_IdaYVuelta(t *testing.T) {
	c := venta.Nuevo()
	_, err := c.AgregarProducto(buildParacetamol(), 3, nil, hoy)
	require.NoError(t, err)
	totalAntes := c.Venta.Total

	require.NoError(t, c.PonerEnEspera("Sra. García", hoy))
	assert.Equal(t, entity.VentaEnEspera, c.Venta.Estado)
	assert.Equal(t, "Sra. García", c.Venta.NombreEspera)

	require.NoError(t, c.RecuperarDeEspera())
	assert.Equal(t, entity.VentaEnProceso, c.Venta.Estado)
	assert.True(t, c.Venta.FechaEspera.IsZero())
	assert.True(t, c.Venta.Total.Equal(totalAntes), "Las líneas sobreviven la espera intactas")
}

func TestPonerEnEspera_CarritoVacio(t *testing.T) {
	c := venta.Nuevo()
	assert.ErrorIs(t, c.PonerEnEspera("x", hoy), domain.ErrVentaVacia)
}

func TestPonerEnEspera_NombrePorDefecto(t *testing.T) {
	c := venta.Nuevo()
	_, _ = c.AgregarProducto(buildParacetamol(), 1, nil, hoy)

	require.NoError(t, c.PonerEnEspera("", hoy))
	assert.NotEmpty(t, c.Venta.NombreEspera, "Sin etiqueta se genera una por defecto")
}

func TestCancelar_DejaCarritoLimpio(t *testing.T) {
	c := venta.Nuevo()
	warfarina := &entity.Producto{
		ID: "prod-warfa", Nombre: "Warfarina", PrecioVenta: mxn("200"),
		GrupoInteraccion: entity.GrupoAnticoagulantes,
	}
	ibuprofeno := &entity.Producto{
		ID: "prod-ibu", Nombre: "Ibuprofeno", PrecioVenta: mxn("60"),
		GrupoInteraccion: entity.GrupoAINES,
	}
	_, _ = c.AgregarProducto(warfarina, 1, nil, hoy)
	_, _ = c.AgregarProducto(ibuprofeno, 1, nil, hoy)
	require.NotEmpty(t, c.Alertas)

	require.NoError(t, c.Cancelar())

	assert.Empty(t, c.Venta.Detalles)
	assert.Empty(t, c.Alertas, "Cancelar descarta también las alertas activas")
	assert.Equal(t, entity.VentaEnProceso, c.Venta.Estado, "El carrito queda utilizable")
}

func TestCancelar_SoloEnProceso(t *testing.T) {
	c := venta.Nuevo()
	c.Venta.Estado = entity.VentaCompletada
	assert.ErrorIs(t, c.Cancelar(), domain.ErrConflict)
}
