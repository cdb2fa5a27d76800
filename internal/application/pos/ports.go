package pos

import (
	"context"

	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// VentaTxRunner ejecuta el cierre de una venta dentro de una transacción:
// persistencia de la venta, salidas de inventario por línea y acumulación en
// el corte de caja abierto. Todo confirma o todo revierte.
type VentaTxRunner interface {
	RunVenta(ctx context.Context, fn func(
		ventaRepo repository.VentaRepository,
		movRepo repository.MovimientoRepository,
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
		corteRepo repository.CorteRepository,
	) error) error
}
