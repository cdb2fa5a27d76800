// Package interaccion contiene la base fija de interacciones medicamentosas
// y las funciones de consulta para las alertas de farmacovigilancia del POS.
// Las alertas son informativas: nunca bloquean agregar un producto al carrito;
// el operador decide si continúa o las descarta.
package interaccion

import (
	"sort"

	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// Severidad nivel de riesgo de una interacción.
type Severidad string

const (
	SeveridadAlta  Severidad = "ALTA"  // bloqueo sugerido
	SeveridadMedia Severidad = "MEDIA" // alerta
	SeveridadBaja  Severidad = "BAJA"  // informativa
)

// ordenSeveridad para ordenar ALTA primero.
var ordenSeveridad = map[Severidad]int{
	SeveridadAlta:  0,
	SeveridadMedia: 1,
	SeveridadBaja:  2,
}

// Regla una interacción entre dos grupos farmacológicos. El par no tiene
// orden: (A,B) y (B,A) son la misma regla.
type Regla struct {
	GrupoA        entity.GrupoInteraccion
	GrupoB        entity.GrupoInteraccion
	Severidad     Severidad
	Mensaje       string
	Recomendacion string
}

// Alerta una interacción detectada en el carrito, con el par concreto que la causó.
type Alerta struct {
	Regla
	Pares string // "AINES + ANTICOAGULANTES"
}

// catalogo tabla fija de interacciones clínicamente significativas.
var catalogo = []Regla{
	{
		GrupoA:        entity.GrupoAnticoagulantes,
		GrupoB:        entity.GrupoAINES,
		Severidad:     SeveridadAlta,
		Mensaje:       "Riesgo de hemorragia severa. Anticoagulantes + AINEs aumentan el sangrado.",
		Recomendacion: "Se recomienda utilizar un analgésico alternativo como Paracetamol.",
	},
	{
		GrupoA:        entity.GrupoAnticoagulantes,
		GrupoB:        entity.GrupoAntibioticos,
		Severidad:     SeveridadMedia,
		Mensaje:       "Algunos antibióticos pueden potenciar el efecto anticoagulante.",
		Recomendacion: "Monitorear INR del paciente más frecuentemente.",
	},
	{
		GrupoA:        entity.GrupoOpioides,
		GrupoB:        entity.GrupoBenzodiacepinas,
		Severidad:     SeveridadAlta,
		Mensaje:       "Riesgo de depresión respiratoria severa. Combinación potencialmente letal.",
		Recomendacion: "Evitar combinación. Consultar con el médico prescriptor.",
	},
	{
		GrupoA:        entity.GrupoAntidepresivos,
		GrupoB:        entity.GrupoOpioides,
		Severidad:     SeveridadAlta,
		Mensaje:       "Riesgo de síndrome serotoninérgico, especialmente con tramadol.",
		Recomendacion: "Monitorear signos de agitación, temblor, diaforesis.",
	},
	{
		GrupoA:        entity.GrupoAntihipertensivos,
		GrupoB:        entity.GrupoAINES,
		Severidad:     SeveridadMedia,
		Mensaje:       "Los AINEs pueden reducir efecto antihipertensivo y dañar la función renal.",
		Recomendacion: "Vigilar presión arterial y función renal.",
	},
	{
		GrupoA:        entity.GrupoAntibioticos,
		GrupoB:        entity.GrupoAlcohol,
		Severidad:     SeveridadAlta,
		Mensaje:       "Reacción tipo disulfiram (náuseas, vómito, cefalea) con Metronidazol.",
		Recomendacion: "Evitar consumo de alcohol durante tratamiento y 48h después.",
	},
	{
		GrupoA:        entity.GrupoBenzodiacepinas,
		GrupoB:        entity.GrupoAlcohol,
		Severidad:     SeveridadAlta,
		Mensaje:       "Potenciación de depresión del SNC. Riesgo de sobredosis.",
		Recomendacion: "Advertir al paciente sobre no consumir alcohol.",
	},
	{
		GrupoA:        entity.GrupoAntidepresivos,
		GrupoB:        entity.GrupoBenzodiacepinas,
		Severidad:     SeveridadMedia,
		Mensaje:       "Potenciación de sedación y efectos sobre el SNC.",
		Recomendacion: "Monitorear somnolencia excesiva.",
	},
}

// buscarRegla regresa la regla del par, sin importar el orden de los grupos.
func buscarRegla(a, b entity.GrupoInteraccion) *Regla {
	for i := range catalogo {
		r := &catalogo[i]
		if (r.GrupoA == a && r.GrupoB == b) || (r.GrupoA == b && r.GrupoB == a) {
			return r
		}
	}
	return nil
}

// gruposUnicos deduplica y descarta NINGUNO y vacíos.
func gruposUnicos(grupos []entity.GrupoInteraccion) []entity.GrupoInteraccion {
	vistos := make(map[entity.GrupoInteraccion]bool, len(grupos))
	var unicos []entity.GrupoInteraccion
	for _, g := range grupos {
		if g == "" || g == entity.GrupoNinguno || vistos[g] {
			continue
		}
		vistos[g] = true
		unicos = append(unicos, g)
	}
	return unicos
}

// VerificarConNuevo interacciones que introduce un producto nuevo contra los
// grupos ya presentes en el carrito. Los grupos existentes se deduplican; el
// par se busca sin importar el orden.
func VerificarConNuevo(nuevo entity.GrupoInteraccion, existentes []entity.GrupoInteraccion) []Alerta {
	if nuevo == "" || nuevo == entity.GrupoNinguno {
		return nil
	}
	var alertas []Alerta
	for _, existente := range gruposUnicos(existentes) {
		if existente == nuevo {
			continue
		}
		if r := buscarRegla(nuevo, existente); r != nil {
			alertas = append(alertas, Alerta{
				Regla: *r,
				Pares: string(nuevo) + " + " + string(existente),
			})
		}
	}
	return alertas
}

// VerificarTodas interacciones por pares entre todos los grupos distintos
// presentes, ordenadas por severidad (ALTA primero); los empates conservan el
// orden de descubrimiento.
func VerificarTodas(grupos []entity.GrupoInteraccion) []Alerta {
	unicos := gruposUnicos(grupos)
	var alertas []Alerta
	for i := 0; i < len(unicos); i++ {
		for j := i + 1; j < len(unicos); j++ {
			if r := buscarRegla(unicos[i], unicos[j]); r != nil {
				alertas = append(alertas, Alerta{
					Regla: *r,
					Pares: string(unicos[i]) + " + " + string(unicos[j]),
				})
			}
		}
	}
	sort.SliceStable(alertas, func(i, j int) bool {
		return ordenSeveridad[alertas[i].Severidad] < ordenSeveridad[alertas[j].Severidad]
	})
	return alertas
}
