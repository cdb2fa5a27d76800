// Package lote implementa la lógica FEFO (First-Expired-First-Out) y el
// estado de caducidad de los lotes. Funciones puras sobre entity.Lote:
// no mutan los lotes ni tienen efectos secundarios, y reciben la fecha de
// referencia explícitamente para que el resultado sea determinista.
package lote

import (
	"math"
	"sort"
	"time"

	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// DiasUmbralCaducidad umbral por defecto para considerar un lote "por caducar".
const DiasUmbralCaducidad = 30

// Estado de caducidad de un lote.
type Estado string

const (
	EstadoCaducado   Estado = "CADUCADO"
	EstadoPorCaducar Estado = "POR_CADUCAR"
	EstadoVigente    Estado = "VIGENTE"
)

// RazonSinLote motivo por el que ningún lote resultó elegible.
type RazonSinLote string

const (
	RazonSinLotes       RazonSinLote = "SIN_LOTES"
	RazonTodosCaducados RazonSinLote = "TODOS_CADUCADOS"
	RazonSinStock       RazonSinLote = "SIN_STOCK"
)

// truncarDia normaliza a medianoche: las comparaciones de caducidad son por
// fecha, no por hora.
func truncarDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EstaCaducado indica si la fecha de vencimiento es anterior al día de hoy.
// Un lote sin fecha de vencimiento nunca se considera caducado.
func EstaCaducado(l entity.Lote, hoy time.Time) bool {
	if l.FechaVencimiento.IsZero() {
		return false
	}
	return truncarDia(l.FechaVencimiento).Before(truncarDia(hoy))
}

// DiasParaVencimiento días restantes (techo) hasta el vencimiento.
// Negativo si ya caducó; math.MaxInt si no tiene fecha registrada.
func DiasParaVencimiento(l entity.Lote, hoy time.Time) int {
	if l.FechaVencimiento.IsZero() {
		return math.MaxInt
	}
	horas := truncarDia(l.FechaVencimiento).Sub(truncarDia(hoy)).Hours()
	return int(math.Ceil(horas / 24))
}

// EstaPorCaducar indica si vence dentro del umbral (0 < días <= umbral).
func EstaPorCaducar(l entity.Lote, hoy time.Time, umbralDias int) bool {
	dias := DiasParaVencimiento(l, hoy)
	return dias > 0 && dias <= umbralDias
}

// EstadoDe clasifica el lote con el umbral por defecto de 30 días.
func EstadoDe(l entity.Lote, hoy time.Time) Estado {
	if EstaCaducado(l, hoy) {
		return EstadoCaducado
	}
	if EstaPorCaducar(l, hoy, DiasUmbralCaducidad) {
		return EstadoPorCaducar
	}
	return EstadoVigente
}

// Semaforo color de tablero equivalente al estado.
func Semaforo(l entity.Lote, hoy time.Time) entity.SemaforoStock {
	switch EstadoDe(l, hoy) {
	case EstadoCaducado:
		return entity.SemaforoRojo
	case EstadoPorCaducar:
		return entity.SemaforoAmarillo
	}
	return entity.SemaforoVerde
}

// Elegibles filtra a los lotes no caducados y con stock disponible.
func Elegibles(lotes []entity.Lote, hoy time.Time) []entity.Lote {
	var elegibles []entity.Lote
	for _, l := range lotes {
		if !EstaCaducado(l, hoy) && l.CantidadDisponible > 0 {
			elegibles = append(elegibles, l)
		}
	}
	return elegibles
}

// OrdenarFEFO lotes elegibles ordenados por vencimiento más próximo primero.
// El orden es estable: empates de fecha conservan el orden original, para que
// la selección sea determinista.
func OrdenarFEFO(lotes []entity.Lote, hoy time.Time) []entity.Lote {
	elegibles := Elegibles(lotes, hoy)
	sort.SliceStable(elegibles, func(i, j int) bool {
		// Lotes sin fecha de vencimiento van al final.
		a, b := elegibles[i].FechaVencimiento, elegibles[j].FechaVencimiento
		if a.IsZero() {
			return false
		}
		if b.IsZero() {
			return true
		}
		return a.Before(b)
	})
	return elegibles
}

// SeleccionarFEFO el mejor lote para venta: el elegible que vence primero.
// Devuelve nil si ninguno es elegible.
func SeleccionarFEFO(lotes []entity.Lote, hoy time.Time) *entity.Lote {
	ordenados := OrdenarFEFO(lotes, hoy)
	if len(ordenados) == 0 {
		return nil
	}
	seleccionado := ordenados[0]
	return &seleccionado
}

// RazonNoElegible explica por qué SeleccionarFEFO no encontró lote:
// sin lotes configurados, todos caducados, o con vigencia pero sin stock.
func RazonNoElegible(lotes []entity.Lote, hoy time.Time) RazonSinLote {
	if len(lotes) == 0 {
		return RazonSinLotes
	}
	for _, l := range lotes {
		if !EstaCaducado(l, hoy) {
			return RazonSinStock
		}
	}
	return RazonTodosCaducados
}
