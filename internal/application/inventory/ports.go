package inventory

import (
	"context"

	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovimientoRepository,
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
	) error) error
}
