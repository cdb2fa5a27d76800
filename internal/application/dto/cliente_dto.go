package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// CreateClienteRequest entrada para dar de alta un cliente.
type CreateClienteRequest struct {
	Nombre        string          `json:"nombre" validate:"required"`
	Apellido      string          `json:"apellido" validate:"required"`
	Email         string          `json:"email"`
	Telefono      string          `json:"telefono" validate:"required"`
	Direccion     string          `json:"direccion"`
	RFC           string          `json:"rfc"`
	CodigoPostal  string          `json:"codigo_postal"`
	RegimenFiscal string          `json:"regimen_fiscal"`
	RazonSocial   string          `json:"razon_social"`
	TipoCliente   string          `json:"tipo_cliente"`
	Descuento     decimal.Decimal `json:"descuento"`
}

// UpdateClienteRequest entrada para actualizar un cliente.
type UpdateClienteRequest struct {
	Nombre        *string          `json:"nombre"`
	Apellido      *string          `json:"apellido"`
	Email         *string          `json:"email"`
	Telefono      *string          `json:"telefono"`
	Direccion     *string          `json:"direccion"`
	RFC           *string          `json:"rfc"`
	CodigoPostal  *string          `json:"codigo_postal"`
	RegimenFiscal *string          `json:"regimen_fiscal"`
	RazonSocial   *string          `json:"razon_social"`
	TipoCliente   *string          `json:"tipo_cliente"`
	Descuento     *decimal.Decimal `json:"descuento"`
	Activo        *bool            `json:"activo"`
}

// ClienteResponse salida de un cliente.
type ClienteResponse struct {
	ID                string          `json:"id"`
	Nombre            string          `json:"nombre"`
	Apellido          string          `json:"apellido"`
	NombreCompleto    string          `json:"nombre_completo"`
	Email             string          `json:"email"`
	Telefono          string          `json:"telefono"`
	Direccion         string          `json:"direccion"`
	RFC               string          `json:"rfc"`
	CodigoPostal      string          `json:"codigo_postal"`
	RegimenFiscal     string          `json:"regimen_fiscal"`
	RazonSocial       string          `json:"razon_social"`
	TipoCliente       string          `json:"tipo_cliente"`
	Descuento         decimal.Decimal `json:"descuento"`
	TieneDatosFiscales bool           `json:"tiene_datos_fiscales"`
	Activo            bool            `json:"activo"`
	FechaCreacion     time.Time       `json:"fecha_creacion"`
}

// ClienteListResponse lista paginada de clientes.
type ClienteListResponse struct {
	Items []ClienteResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToClienteResponse mapea la entidad a su DTO de salida.
func ToClienteResponse(c *entity.Cliente) *ClienteResponse {
	return &ClienteResponse{
		ID:                 c.ID,
		Nombre:             c.Nombre,
		Apellido:           c.Apellido,
		NombreCompleto:     c.NombreCompleto(),
		Email:              c.Email,
		Telefono:           c.Telefono,
		Direccion:          c.Direccion,
		RFC:                c.RFC,
		CodigoPostal:       c.CodigoPostal,
		RegimenFiscal:      c.RegimenFiscal,
		RazonSocial:        c.RazonSocial,
		TipoCliente:        c.TipoCliente,
		Descuento:          c.Descuento,
		TieneDatosFiscales: c.TieneDatosFiscales(),
		Activo:             c.Activo,
		FechaCreacion:      c.FechaCreacion,
	}
}
