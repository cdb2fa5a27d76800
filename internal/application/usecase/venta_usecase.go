package usecase

import (
	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// VentaUseCase consultas del historial de ventas completadas.
// La creación de ventas ocurre en el flujo POS, no aquí.
type VentaUseCase struct {
	repo repository.VentaRepository
}

// NewVentaUseCase construye el caso de uso.
func NewVentaUseCase(repo repository.VentaRepository) *VentaUseCase {
	return &VentaUseCase{repo: repo}
}

// GetByID obtiene una venta con sus detalles y recetas.
func (uc *VentaUseCase) GetByID(id string) (*dto.VentaResponse, error) {
	venta, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, nil
	}
	return dto.ToVentaResponse(venta), nil
}

// List historial de ventas paginado, la más reciente primero.
func (uc *VentaUseCase) List(page dto.PageRequest) (*dto.VentaListResponse, error) {
	page.DefaultPage()
	ventas, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toVentaList(ventas, page), nil
}

// ListByCliente ventas de un cliente.
func (uc *VentaUseCase) ListByCliente(clienteID string, page dto.PageRequest) (*dto.VentaListResponse, error) {
	page.DefaultPage()
	ventas, err := uc.repo.ListByCliente(clienteID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toVentaList(ventas, page), nil
}

func toVentaList(ventas []*entity.Venta, page dto.PageRequest) *dto.VentaListResponse {
	items := make([]dto.VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		items = append(items, *dto.ToVentaResponse(v))
	}
	return &dto.VentaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
