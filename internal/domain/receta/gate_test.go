package receta_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/receta"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la compuerta de recetas: qué regulaciones la exigen, campos
// obligatorios y la ventana de vigencia de 7 días (inclusiva).
// ──────────────────────────────────────────────────────────────────────────────

var hoy = time.Date(2026, 6, 15, 14, 0, 0, 0, time.UTC)

func buildReceta(fecha time.Time) *entity.RecetaMedica {
	return &entity.RecetaMedica{
		CedulaMedico: "1234567",
		NombreMedico: "Dra. Elena Ríos",
		FolioReceta:  "F-0042",
		FechaReceta:  fecha,
	}
}

func TestRequiere(t *testing.T) {
	assert.False(t, receta.Requiere(entity.RegulacionVentaLibre))
	assert.True(t, receta.Requiere(entity.RegulacionAntibiotico))
	assert.True(t, receta.Requiere(entity.RegulacionControladoII))
	assert.True(t, receta.Requiere(entity.RegulacionControladoIII))
	assert.True(t, receta.Requiere(entity.RegulacionControladoIV))
}

func TestValidar_RecetaCompleta(t *testing.T) {
	errores := receta.Validar(buildReceta(hoy.AddDate(0, 0, -2)), hoy)
	assert.Empty(t, errores, "Una receta completa de hace 2 días no tiene violaciones")
}

func TestValidar_RecetaNil(t *testing.T) {
	errores := receta.Validar(nil, hoy)
	assert.Equal(t, []string{"La receta médica es obligatoria"}, errores)
}

func TestValidar_CamposObligatorios(t *testing.T) {
	r := buildReceta(hoy)
	r.CedulaMedico = "  "
	r.NombreMedico = ""
	r.FolioReceta = ""

	errores := receta.Validar(r, hoy)

	assert.Contains(t, errores, "La cédula profesional del médico es obligatoria")
	assert.Contains(t, errores, "El nombre del médico es obligatorio")
	assert.Contains(t, errores, "El folio de la receta es obligatorio")
}

func TestValidar_SinFecha(t *testing.T) {
	r := buildReceta(time.Time{})
	errores := receta.Validar(r, hoy)
	assert.Contains(t, errores, "La fecha de la receta es obligatoria")
}

func TestValidar_VigenciaSieteDiasInclusive(t *testing.T) {
	// El límite es inclusivo: exactamente 7 días sigue siendo válida.
	sieteDias := buildReceta(hoy.AddDate(0, 0, -7))
	assert.True(t, receta.EsValida(sieteDias, hoy), "Una receta de exactamente 7 días es válida")

	ochoDias := buildReceta(hoy.AddDate(0, 0, -8))
	errores := receta.Validar(ochoDias, hoy)
	assert.Contains(t, errores, "La receta tiene más de 7 días de antigüedad")
}

func TestValidar_FechaFutura(t *testing.T) {
	r := buildReceta(hoy.AddDate(0, 0, 1))
	errores := receta.Validar(r, hoy)
	assert.Contains(t, errores, "La fecha de la receta no puede ser futura")
}

func TestValidar_ComparaPorFechaNoPorHora(t *testing.T) {
	// Emitida hoy más tarde que la hora actual: mismo día, no es futura.
	masTardeHoy := buildReceta(time.Date(2026, 6, 15, 23, 0, 0, 0, time.UTC))
	assert.True(t, receta.EsValida(masTardeHoy, hoy))
}

func TestEstaSatisfecha(t *testing.T) {
	ventaLibre := &entity.DetalleVenta{TipoRegulacion: entity.RegulacionVentaLibre}
	assert.True(t, receta.EstaSatisfecha(ventaLibre, hoy),
		"Venta libre no exige receta")

	sinReceta := &entity.DetalleVenta{TipoRegulacion: entity.RegulacionAntibiotico}
	assert.False(t, receta.EstaSatisfecha(sinReceta, hoy),
		"Un antibiótico sin receta adjunta no está satisfecho")

	conVencida := &entity.DetalleVenta{
		TipoRegulacion: entity.RegulacionAntibiotico,
		Receta:         buildReceta(hoy.AddDate(0, 0, -30)),
	}
	assert.False(t, receta.EstaSatisfecha(conVencida, hoy),
		"Una receta vencida no satisface la regulación")

	conValida := &entity.DetalleVenta{
		TipoRegulacion: entity.RegulacionControladoII,
		Receta:         buildReceta(hoy),
	}
	assert.True(t, receta.EstaSatisfecha(conValida, hoy))
}
