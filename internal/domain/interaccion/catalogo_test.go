package interaccion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/interaccion"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del catálogo de interacciones medicamentosas: simetría del par,
// deduplicación de grupos y orden por severidad.
// ──────────────────────────────────────────────────────────────────────────────

func TestVerificarConNuevo_DetectaPar(t *testing.T) {
	alertas := interaccion.VerificarConNuevo(
		entity.GrupoAINES,
		[]entity.GrupoInteraccion{entity.GrupoAnticoagulantes},
	)

	require.Len(t, alertas, 1)
	assert.Equal(t, interaccion.SeveridadAlta, alertas[0].Severidad)
	assert.Equal(t, "AINES + ANTICOAGULANTES", alertas[0].Pares,
		"El par muestra primero el producto recién agregado")
}

func TestVerificarConNuevo_ParSimetrico(t *testing.T) {
	// La regla está registrada como (ANTICOAGULANTES, AINES) pero debe
	// encontrarse sin importar qué grupo llega primero al carrito.
	directo := interaccion.VerificarConNuevo(
		entity.GrupoAnticoagulantes,
		[]entity.GrupoInteraccion{entity.GrupoAINES},
	)
	invertido := interaccion.VerificarConNuevo(
		entity.GrupoAINES,
		[]entity.GrupoInteraccion{entity.GrupoAnticoagulantes},
	)

	require.Len(t, directo, 1)
	require.Len(t, invertido, 1)
	assert.Equal(t, directo[0].Mensaje, invertido[0].Mensaje,
		"El orden del par no cambia la regla detectada")
}

func TestVerificarConNuevo_IgnoraNinguno(t *testing.T) {
	assert.Nil(t, interaccion.VerificarConNuevo(
		entity.GrupoNinguno,
		[]entity.GrupoInteraccion{entity.GrupoAnticoagulantes},
	), "Un producto sin grupo farmacológico nunca genera alertas")

	assert.Nil(t, interaccion.VerificarConNuevo(
		"",
		[]entity.GrupoInteraccion{entity.GrupoAnticoagulantes},
	))
}

func TestVerificarConNuevo_MismoGrupoNoAlerta(t *testing.T) {
	alertas := interaccion.VerificarConNuevo(
		entity.GrupoAINES,
		[]entity.GrupoInteraccion{entity.GrupoAINES, entity.GrupoAINES},
	)
	assert.Empty(t, alertas, "Dos productos del mismo grupo no interactúan entre sí")
}

func TestVerificarConNuevo_GruposExistentesDeduplicados(t *testing.T) {
	// Tres cajas de anticoagulantes en el carrito producen una sola alerta,
	// no tres.
	alertas := interaccion.VerificarConNuevo(
		entity.GrupoAINES,
		[]entity.GrupoInteraccion{
			entity.GrupoAnticoagulantes,
			entity.GrupoAnticoagulantes,
			entity.GrupoAnticoagulantes,
		},
	)
	assert.Len(t, alertas, 1, "Los grupos repetidos generan una sola alerta por par")
}

func TestVerificarConNuevo_SinReglaRegistrada(t *testing.T) {
	alertas := interaccion.VerificarConNuevo(
		entity.GrupoAntibioticos,
		[]entity.GrupoInteraccion{entity.GrupoAINES},
	)
	assert.Empty(t, alertas, "Pares sin regla registrada no generan alertas")
}

func TestVerificarTodas_OrdenPorSeveridad(t *testing.T) {
	// AINES+ANTIHIPERTENSIVOS es MEDIA, OPIOIDES+BENZODIACEPINAS es ALTA.
	// Aunque el par MEDIA se descubre primero, ALTA debe quedar al frente.
	alertas := interaccion.VerificarTodas([]entity.GrupoInteraccion{
		entity.GrupoAntihipertensivos,
		entity.GrupoAINES,
		entity.GrupoOpioides,
		entity.GrupoBenzodiacepinas,
	})

	require.NotEmpty(t, alertas)
	assert.Equal(t, interaccion.SeveridadAlta, alertas[0].Severidad,
		"Las alertas ALTA encabezan la lista")
	for i := 1; i < len(alertas); i++ {
		if alertas[i].Severidad == interaccion.SeveridadAlta {
			assert.Equal(t, interaccion.SeveridadAlta, alertas[i-1].Severidad,
				"Ninguna alerta ALTA puede aparecer después de una de menor severidad")
		}
	}
}

func TestVerificarTodas_CarritoSinGrupos(t *testing.T) {
	assert.Empty(t, interaccion.VerificarTodas(nil))
	assert.Empty(t, interaccion.VerificarTodas([]entity.GrupoInteraccion{
		entity.GrupoNinguno, "",
	}))
}
