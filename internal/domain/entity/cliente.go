package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RFC genérico de público en general (CFDI México); exento de validación de formato.
const RFCPublicoGeneral = "XAXX010101000"

var (
	reTelefono     = regexp.MustCompile(`^[0-9]{10}$`)
	reEmail        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reRFCFisica    = regexp.MustCompile(`^[A-ZÑ&]{4}\d{6}[A-Z0-9]{3}$`)
	reRFCMoral     = regexp.MustCompile(`^[A-ZÑ&]{3}\d{6}[A-Z0-9]{3}$`)
	reSoloTelefono = regexp.MustCompile(`[\s-]`)
)

// Cliente registro de cliente de mostrador.
// Descuento es un porcentaje (0-100) que, al seleccionarse el cliente en una
// venta, pasa a ser el descuento global de esa venta.
type Cliente struct {
	ID                 string
	Nombre             string
	Apellido           string
	Email              string
	Telefono           string
	Direccion          string
	RFC                string
	CodigoPostal       string
	RegimenFiscal      string
	RazonSocial        string
	TipoCliente        string
	Descuento          decimal.Decimal
	Activo             bool
	FechaCreacion      time.Time
	FechaActualizacion time.Time
}

// NombreCompleto nombre y apellido para mostrar en el ticket.
func (c *Cliente) NombreCompleto() string {
	return strings.TrimSpace(c.Nombre + " " + c.Apellido)
}

// TieneDatosFiscales indica si el cliente puede facturar (datos CFDI completos).
func (c *Cliente) TieneDatosFiscales() bool {
	return c.RFC != "" && c.RazonSocial != "" && c.CodigoPostal != "" && c.RegimenFiscal != ""
}

// Validar devuelve la lista de violaciones; vacía significa válido.
func (c *Cliente) Validar() []string {
	var errores []string
	if esBlanco(c.Nombre) {
		errores = append(errores, "El nombre es obligatorio")
	}
	if esBlanco(c.Apellido) {
		errores = append(errores, "El apellido es obligatorio")
	}
	if esBlanco(c.Telefono) {
		errores = append(errores, "El teléfono es obligatorio")
	} else if !reTelefono.MatchString(reSoloTelefono.ReplaceAllString(c.Telefono, "")) {
		errores = append(errores, "El teléfono debe tener 10 dígitos")
	}
	if c.Email != "" && !reEmail.MatchString(c.Email) {
		errores = append(errores, "El email no es válido")
	}
	if c.RFC != "" && c.RFC != RFCPublicoGeneral {
		rfc := strings.ToUpper(c.RFC)
		if !reRFCFisica.MatchString(rfc) && !reRFCMoral.MatchString(rfc) {
			errores = append(errores, "El RFC no tiene formato válido")
		}
	}
	if c.Descuento.IsNegative() || c.Descuento.GreaterThan(decimal.NewFromInt(100)) {
		errores = append(errores, "El descuento debe estar entre 0 y 100")
	}
	return errores
}
