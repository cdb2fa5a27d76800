package repository

import "github.com/tu-usuario/farmacia-pos/internal/domain/entity"

// LoteRepository puerto de persistencia para lotes.
type LoteRepository interface {
	Create(l *entity.Lote) error
	GetByID(id string) (*entity.Lote, error)
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.Lote, error)
	Update(l *entity.Lote) error
	ListByProducto(productoID string) ([]*entity.Lote, error)
	// ListPorCaducar lotes activos con stock que vencen dentro del umbral.
	ListPorCaducar(dias int) ([]*entity.Lote, error)
}
