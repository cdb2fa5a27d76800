package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/farmacia-pos/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/application/pos"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and pos.VentaTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ pos.VentaTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	loteRepo repository.LoteRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovimientoRepository(tx)
	loteRepo := NewLoteRepository(tx)
	productoRepo := NewProductoRepository(tx)

	if err := fn(movRepo, loteRepo, productoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunVenta inicia una transacción con los repos que necesita la finalización
// de una venta: persistirla, descontar stock y acumularla en el corte abierto.
func (r *TxRunner) RunVenta(ctx context.Context, fn func(
	ventaRepo repository.VentaRepository,
	movRepo repository.MovimientoRepository,
	loteRepo repository.LoteRepository,
	productoRepo repository.ProductoRepository,
	corteRepo repository.CorteRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ventaRepo := NewVentaRepository(tx)
	movRepo := NewMovimientoRepository(tx)
	loteRepo := NewLoteRepository(tx)
	productoRepo := NewProductoRepository(tx)
	corteRepo := NewCorteRepository(tx)

	if err := fn(ventaRepo, movRepo, loteRepo, productoRepo, corteRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
