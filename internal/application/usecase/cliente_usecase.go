package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
	"github.com/tu-usuario/farmacia-pos/pkg/texto"
)

// ClienteUseCase casos de uso CRUD del padrón de clientes.
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

// Create da de alta un cliente.
func (uc *ClienteUseCase) Create(in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	now := time.Now()
	cliente := &entity.Cliente{
		ID:                 uuid.New().String(),
		Nombre:             in.Nombre,
		Apellido:           in.Apellido,
		Email:              in.Email,
		Telefono:           in.Telefono,
		Direccion:          in.Direccion,
		RFC:                in.RFC,
		CodigoPostal:       in.CodigoPostal,
		RegimenFiscal:      in.RegimenFiscal,
		RazonSocial:        in.RazonSocial,
		TipoCliente:        in.TipoCliente,
		Descuento:          in.Descuento,
		Activo:             true,
		FechaCreacion:      now,
		FechaActualizacion: now,
	}
	if err := domain.NuevaValidacion(cliente.Validar()); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(cliente); err != nil {
		return nil, err
	}
	return dto.ToClienteResponse(cliente), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClienteUseCase) GetByID(id string) (*dto.ClienteResponse, error) {
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, nil
	}
	return dto.ToClienteResponse(cliente), nil
}

// Update actualiza un cliente.
func (uc *ClienteUseCase) Update(id string, in dto.UpdateClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, nil
	}

	if in.Nombre != nil {
		cliente.Nombre = *in.Nombre
	}
	if in.Apellido != nil {
		cliente.Apellido = *in.Apellido
	}
	if in.Email != nil {
		cliente.Email = *in.Email
	}
	if in.Telefono != nil {
		cliente.Telefono = *in.Telefono
	}
	if in.Direccion != nil {
		cliente.Direccion = *in.Direccion
	}
	if in.RFC != nil {
		cliente.RFC = *in.RFC
	}
	if in.CodigoPostal != nil {
		cliente.CodigoPostal = *in.CodigoPostal
	}
	if in.RegimenFiscal != nil {
		cliente.RegimenFiscal = *in.RegimenFiscal
	}
	if in.RazonSocial != nil {
		cliente.RazonSocial = *in.RazonSocial
	}
	if in.TipoCliente != nil {
		cliente.TipoCliente = *in.TipoCliente
	}
	if in.Descuento != nil {
		cliente.Descuento = *in.Descuento
	}
	if in.Activo != nil {
		cliente.Activo = *in.Activo
	}

	if err := domain.NuevaValidacion(cliente.Validar()); err != nil {
		return nil, err
	}
	cliente.FechaActualizacion = time.Now()
	if err := uc.repo.Update(cliente); err != nil {
		return nil, err
	}
	return dto.ToClienteResponse(cliente), nil
}

// List lista clientes con paginación.
func (uc *ClienteUseCase) List(page dto.PageRequest) (*dto.ClienteListResponse, error) {
	page.DefaultPage()
	clientes, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toClienteList(clientes, page), nil
}

// Search busca por nombre, apellido, teléfono, RFC o email, sin distinguir
// mayúsculas ni acentos.
func (uc *ClienteUseCase) Search(consulta string, page dto.PageRequest) (*dto.ClienteListResponse, error) {
	page.DefaultPage()
	normalizada := texto.Normalizar(consulta)
	if normalizada == "" {
		return uc.List(page)
	}
	clientes, err := uc.repo.Search(normalizada, page.Limit)
	if err != nil {
		return nil, err
	}
	return toClienteList(clientes, page), nil
}

func toClienteList(clientes []*entity.Cliente, page dto.PageRequest) *dto.ClienteListResponse {
	items := make([]dto.ClienteResponse, 0, len(clientes))
	for _, c := range clientes {
		items = append(items, *dto.ToClienteResponse(c))
	}
	return &dto.ClienteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
