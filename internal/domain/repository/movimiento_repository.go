package repository

import "github.com/tu-usuario/farmacia-pos/internal/domain/entity"

// MovimientoRepository puerto de persistencia para el kardex de inventario.
type MovimientoRepository interface {
	Create(m *entity.MovimientoInventario) error
	List(limit, offset int) ([]*entity.MovimientoInventario, error)
	ListByProducto(productoID string, limit, offset int) ([]*entity.MovimientoInventario, error)
}
