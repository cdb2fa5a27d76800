package lote_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/lote"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la selección FEFO y del estado de caducidad.
//
// Fecha de referencia fija para que los resultados no dependan del reloj:
// todos los casos se calculan contra el 15 de junio de 2026.
// ──────────────────────────────────────────────────────────────────────────────

var hoy = time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC)

func buildLote(id string, vence time.Time, disponible int) entity.Lote {
	return entity.Lote{
		ID:                 id,
		ProductoID:         "prod-1",
		NumeroLote:         "L-" + id,
		FechaVencimiento:   vence,
		CantidadInicial:    100,
		CantidadDisponible: disponible,
	}
}

func diasDespues(n int) time.Time {
	return hoy.AddDate(0, 0, n)
}

// ── Estado de caducidad ───────────────────────────────────────────────────────

func TestEstaCaducado_FechaAnterior(t *testing.T) {
	l := buildLote("a", diasDespues(-1), 10)
	assert.True(t, lote.EstaCaducado(l, hoy), "Un lote vencido ayer está caducado")
}

func TestEstaCaducado_VenceHoyNoEstaCaducado(t *testing.T) {
	// La comparación es por fecha, no por hora: un lote que vence hoy
	// todavía es vendible durante todo el día.
	vence := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	l := buildLote("a", vence, 10)
	assert.False(t, lote.EstaCaducado(l, hoy), "Un lote que vence hoy aún no está caducado")
}

func TestEstaCaducado_SinFechaNuncaCaduca(t *testing.T) {
	l := buildLote("a", time.Time{}, 10)
	assert.False(t, lote.EstaCaducado(l, hoy), "Un lote sin fecha de vencimiento no caduca")
}

func TestDiasParaVencimiento(t *testing.T) {
	assert.Equal(t, 7, lote.DiasParaVencimiento(buildLote("a", diasDespues(7), 1), hoy))
	assert.Equal(t, 0, lote.DiasParaVencimiento(buildLote("b", diasDespues(0), 1), hoy))
	assert.Equal(t, -3, lote.DiasParaVencimiento(buildLote("c", diasDespues(-3), 1), hoy))
}

func TestDiasParaVencimiento_SinFecha(t *testing.T) {
	l := buildLote("a", time.Time{}, 1)
	assert.Equal(t, math.MaxInt, lote.DiasParaVencimiento(l, hoy),
		"Sin fecha registrada los días restantes son infinitos")
}

func TestEstadoDe_Clasificacion(t *testing.T) {
	assert.Equal(t, lote.EstadoCaducado, lote.EstadoDe(buildLote("a", diasDespues(-1), 1), hoy))
	assert.Equal(t, lote.EstadoPorCaducar, lote.EstadoDe(buildLote("b", diasDespues(30), 1), hoy),
		"Exactamente en el umbral de 30 días cuenta como por caducar")
	assert.Equal(t, lote.EstadoVigente, lote.EstadoDe(buildLote("c", diasDespues(31), 1), hoy))
	assert.Equal(t, lote.EstadoVigente, lote.EstadoDe(buildLote("d", time.Time{}, 1), hoy))
}

func TestSemaforo(t *testing.T) {
	assert.Equal(t, entity.SemaforoRojo, lote.Semaforo(buildLote("a", diasDespues(-1), 1), hoy))
	assert.Equal(t, entity.SemaforoAmarillo, lote.Semaforo(buildLote("b", diasDespues(10), 1), hoy))
	assert.Equal(t, entity.SemaforoVerde, lote.Semaforo(buildLote("c", diasDespues(90), 1), hoy))
}

// ── Selección FEFO ────────────────────────────────────────────────────────────

func TestOrdenarFEFO_VenceProximoPrimero(t *testing.T) {
	lotes := []entity.Lote{
		buildLote("lejano", diasDespues(90), 5),
		buildLote("proximo", diasDespues(5), 5),
		buildLote("medio", diasDespues(30), 5),
	}

	ordenados := lote.OrdenarFEFO(lotes, hoy)

	require.Len(t, ordenados, 3)
	assert.Equal(t, "proximo", ordenados[0].ID)
	assert.Equal(t, "medio", ordenados[1].ID)
	assert.Equal(t, "lejano", ordenados[2].ID)
}

func TestOrdenarFEFO_ExcluyeCaducadosYSinStock(t *testing.T) {
	lotes := []entity.Lote{
		buildLote("caducado", diasDespues(-5), 10),
		buildLote("agotado", diasDespues(5), 0),
		buildLote("vigente", diasDespues(20), 3),
	}

	ordenados := lote.OrdenarFEFO(lotes, hoy)

	require.Len(t, ordenados, 1, "Solo el lote vigente con stock es elegible")
	assert.Equal(t, "vigente", ordenados[0].ID)
}

func TestOrdenarFEFO_SinFechaAlFinal(t *testing.T) {
	lotes := []entity.Lote{
		buildLote("sin-fecha", time.Time{}, 5),
		buildLote("fechado", diasDespues(200), 5),
	}

	ordenados := lote.OrdenarFEFO(lotes, hoy)

	require.Len(t, ordenados, 2)
	assert.Equal(t, "fechado", ordenados[0].ID, "Los lotes sin fecha van al final del orden FEFO")
	assert.Equal(t, "sin-fecha", ordenados[1].ID)
}

func TestOrdenarFEFO_EmpateConservaOrdenOriginal(t *testing.T) {
	mismaFecha := diasDespues(15)
	lotes := []entity.Lote{
		buildLote("primero", mismaFecha, 5),
		buildLote("segundo", mismaFecha, 5),
	}

	ordenados := lote.OrdenarFEFO(lotes, hoy)

	require.Len(t, ordenados, 2)
	assert.Equal(t, "primero", ordenados[0].ID, "Empates de fecha conservan el orden de ingreso")
	assert.Equal(t, "segundo", ordenados[1].ID)
}

func TestOrdenarFEFO_NoMutaElSliceOriginal(t *testing.T) {
	lotes := []entity.Lote{
		buildLote("b", diasDespues(90), 5),
		buildLote("a", diasDespues(5), 5),
	}

	_ = lote.OrdenarFEFO(lotes, hoy)

	assert.Equal(t, "b", lotes[0].ID, "El slice de entrada no debe reordenarse")
	assert.Equal(t, "a", lotes[1].ID)
}

func TestSeleccionarFEFO(t *testing.T) {
	lotes := []entity.Lote{
		buildLote("lejano", diasDespues(60), 5),
		buildLote("proximo", diasDespues(3), 5),
	}

	seleccionado := lote.SeleccionarFEFO(lotes, hoy)

	require.NotNil(t, seleccionado)
	assert.Equal(t, "proximo", seleccionado.ID, "FEFO elige el lote que vence primero")
}

func TestSeleccionarFEFO_NilSinElegibles(t *testing.T) {
	lotes := []entity.Lote{buildLote("caducado", diasDespues(-1), 5)}
	assert.Nil(t, lote.SeleccionarFEFO(lotes, hoy))
}

// ── Razón de no elegibilidad ──────────────────────────────────────────────────

func TestRazonNoElegible(t *testing.T) {
	assert.Equal(t, lote.RazonSinLotes, lote.RazonNoElegible(nil, hoy))

	todosCaducados := []entity.Lote{
		buildLote("a", diasDespues(-10), 5),
		buildLote("b", diasDespues(-1), 0),
	}
	assert.Equal(t, lote.RazonTodosCaducados, lote.RazonNoElegible(todosCaducados, hoy))

	vigenteSinStock := []entity.Lote{
		buildLote("a", diasDespues(-10), 5),
		buildLote("b", diasDespues(20), 0),
	}
	assert.Equal(t, lote.RazonSinStock, lote.RazonNoElegible(vigenteSinStock, hoy),
		"Si algún lote sigue vigente el problema es de stock, no de caducidad")
}
