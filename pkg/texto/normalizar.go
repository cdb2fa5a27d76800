// Package texto contiene utilidades de normalización de texto para búsquedas
// sobre el catálogo farmacéutico (nombres comerciales y sustancias activas en español).
package texto

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var quitarAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalizar devuelve el texto en minúsculas, sin acentos y sin espacios
// en los extremos, listo para comparaciones de búsqueda.
// "Paracetamól 500mg " -> "paracetamol 500mg".
func Normalizar(s string) string {
	sinAcentos, _, err := transform.String(quitarAcentos, s)
	if err != nil {
		sinAcentos = s
	}
	return strings.ToLower(strings.TrimSpace(sinAcentos))
}

// Coincide indica si el texto buscado (ya normalizado o no) aparece dentro del campo.
func Coincide(campo, busqueda string) bool {
	b := Normalizar(busqueda)
	if b == "" {
		return false
	}
	return strings.Contains(Normalizar(campo), b)
}
