package inventory

import (
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// ConsultaMovimientosUseCase lecturas del kardex fuera de transacción.
type ConsultaMovimientosUseCase struct {
	movRepo repository.MovimientoRepository
}

// NewConsultaMovimientosUseCase construye el caso de uso.
func NewConsultaMovimientosUseCase(movRepo repository.MovimientoRepository) *ConsultaMovimientosUseCase {
	return &ConsultaMovimientosUseCase{movRepo: movRepo}
}

// List kardex general paginado, el más reciente primero.
func (uc *ConsultaMovimientosUseCase) List(limit, offset int) ([]*entity.MovimientoInventario, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.movRepo.List(limit, offset)
}

// ListByProducto kardex de un producto.
func (uc *ConsultaMovimientosUseCase) ListByProducto(productoID string, limit, offset int) ([]*entity.MovimientoInventario, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.movRepo.ListByProducto(productoID, limit, offset)
}
