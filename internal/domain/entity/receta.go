package entity

import "time"

// RecetaMedica datos de la receta presentada para dispensar un medicamento
// antibiótico o controlado. Las reglas de validez (campos obligatorios y
// antigüedad máxima) viven en el paquete de dominio receta.
type RecetaMedica struct {
	ID             string
	CedulaMedico   string
	NombreMedico   string
	FolioReceta    string
	FechaReceta    time.Time // cero = sin fecha capturada
	Institucion    string
	Diagnostico    string
	VentaID        string
	ProductoID     string
	ProductoNombre string
	TipoRegulacion TipoRegulacion
	Verificada     bool
	Observaciones  string
	FechaCreacion  time.Time
}
