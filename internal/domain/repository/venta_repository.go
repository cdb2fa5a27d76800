package repository

import "github.com/tu-usuario/farmacia-pos/internal/domain/entity"

// VentaRepository puerto de persistencia para ventas completadas.
// Create persiste la venta con sus detalles y recetas de forma atómica
// (se usa dentro de la transacción de CompletarVenta).
type VentaRepository interface {
	Create(v *entity.Venta) error
	GetByID(id string) (*entity.Venta, error)
	List(limit, offset int) ([]*entity.Venta, error)
	ListByCliente(clienteID string, limit, offset int) ([]*entity.Venta, error)
}
