package texto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/farmacia-pos/pkg/texto"
)

func TestNormalizar_QuitaAcentosYMayusculas(t *testing.T) {
	casos := map[string]string{
		"Paracetamól":        "paracetamol",
		"  Analgésicos  ":    "analgesicos",
		"IBUPROFENO":         "ibuprofeno",
		"ácido acetilsalicílico": "acido acetilsalicilico",
		"":                   "",
	}
	for entrada, esperado := range casos {
		assert.Equal(t, esperado, texto.Normalizar(entrada), "entrada: %q", entrada)
	}
}

func TestCoincide_BusquedaInsensibleAAcentos(t *testing.T) {
	assert.True(t, texto.Coincide("Paracetamol 500mg", "paracetamól"))
	assert.True(t, texto.Coincide("Naproxeno Sódico", "sodico"))
	assert.False(t, texto.Coincide("Paracetamol", "ibuprofeno"))
	assert.False(t, texto.Coincide("Paracetamol", "   "), "búsqueda vacía nunca coincide")
}
