package repository

import "github.com/tu-usuario/farmacia-pos/internal/domain/entity"

// ProductoRepository puerto de persistencia para el catálogo.
// GetByID devuelve (nil, nil) cuando no existe.
type ProductoRepository interface {
	Create(p *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	// GetConLotes carga el producto con sus lotes activos.
	GetConLotes(id string) (*entity.Producto, error)
	GetByCodigoBarras(codigo string) (*entity.Producto, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.Producto, error)
	Update(p *entity.Producto) error
	// UpdateStockTotal actualiza solo el stock derivado (lo usa el motor de inventario).
	UpdateStockTotal(productoID string, stockTotal int) error
	List(limit, offset int) ([]*entity.Producto, error)
	// Search búsqueda por nombre, sustancia activa, código de barras, SKU o
	// laboratorio; el texto llega ya normalizado (minúsculas, sin acentos).
	Search(texto string, limit int) ([]*entity.Producto, error)
}
