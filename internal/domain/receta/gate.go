// Package receta valida recetas médicas para la dispensación de antibióticos
// y medicamentos controlados. Es una compuerta dura: una línea de venta que
// la requiera y no la satisfaga no puede llegar a una venta cobrable.
package receta

import (
	"time"

	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// DiasVigencia antigüedad máxima de una receta. El límite es inclusivo:
// una receta de exactamente 7 días es válida; de 8 ya no.
const DiasVigencia = 7

// Requiere indica si el tipo de regulación exige receta médica.
func Requiere(tipo entity.TipoRegulacion) bool {
	switch tipo {
	case entity.RegulacionAntibiotico,
		entity.RegulacionControladoII,
		entity.RegulacionControladoIII,
		entity.RegulacionControladoIV:
		return true
	case entity.RegulacionVentaLibre:
		return false
	}
	return false
}

// Validar aplica las reglas obligatorias de captura de receta. Devuelve una
// violación por campo; lista vacía significa receta válida.
func Validar(r *entity.RecetaMedica, hoy time.Time) []string {
	var errores []string
	if r == nil {
		return []string{"La receta médica es obligatoria"}
	}
	if esBlanco(r.CedulaMedico) {
		errores = append(errores, "La cédula profesional del médico es obligatoria")
	}
	if esBlanco(r.NombreMedico) {
		errores = append(errores, "El nombre del médico es obligatorio")
	}
	if esBlanco(r.FolioReceta) {
		errores = append(errores, "El folio de la receta es obligatorio")
	}
	if r.FechaReceta.IsZero() {
		errores = append(errores, "La fecha de la receta es obligatoria")
	} else {
		dias := diasTranscurridos(r.FechaReceta, hoy)
		if dias > DiasVigencia {
			errores = append(errores, "La receta tiene más de 7 días de antigüedad")
		}
		if dias < 0 {
			errores = append(errores, "La fecha de la receta no puede ser futura")
		}
	}
	return errores
}

// EsValida conveniencia: sin violaciones.
func EsValida(r *entity.RecetaMedica, hoy time.Time) bool {
	return len(Validar(r, hoy)) == 0
}

// EstaSatisfecha indica si la línea cumple la regulación: o no requiere
// receta, o tiene una receta adjunta válida.
func EstaSatisfecha(d *entity.DetalleVenta, hoy time.Time) bool {
	if !Requiere(d.TipoRegulacion) {
		return true
	}
	return d.Receta != nil && EsValida(d.Receta, hoy)
}

// diasTranscurridos días completos desde la fecha de la receta hasta hoy,
// comparando solo fechas (sin hora). Negativo si la receta es futura.
func diasTranscurridos(fechaReceta, hoy time.Time) int {
	a := time.Date(fechaReceta.Year(), fechaReceta.Month(), fechaReceta.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(hoy.Year(), hoy.Month(), hoy.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

func esBlanco(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}
