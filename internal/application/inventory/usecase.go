package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// RegistrarMovimientoUseCase registra movimientos de inventario de forma
// transaccional (ENTRADA, SALIDA, AJUSTE) con bloqueo de fila
// (SELECT FOR UPDATE) sobre el lote y el producto, y Commit/Rollback.
type RegistrarMovimientoUseCase struct {
	txRunner     TxRunner
	productoRepo repository.ProductoRepository
}

// NewRegistrarMovimientoUseCase construye el caso de uso.
func NewRegistrarMovimientoUseCase(txRunner TxRunner, productoRepo repository.ProductoRepository) *RegistrarMovimientoUseCase {
	return &RegistrarMovimientoUseCase{txRunner: txRunner, productoRepo: productoRepo}
}

// MovimientoInput entrada para registrar un movimiento.
// LoteID es obligatorio para productos que manejan lotes; en AJUSTE la
// cantidad es el stock final del lote, no un delta.
type MovimientoInput struct {
	ProductoID    string
	LoteID        string
	Tipo          entity.TipoMovimiento
	Cantidad      int
	Motivo        string
	Referencia    string
	UsuarioID     string
	UsuarioNombre string
	Observaciones string
}

// Registrar valida el movimiento, abre la transacción, aplica el cambio de
// stock al lote y al stock derivado del producto, y guarda el registro de
// kardex con stockAnterior/stockNuevo.
func (uc *RegistrarMovimientoUseCase) Registrar(ctx context.Context, input MovimientoInput) (*entity.MovimientoInventario, error) {
	mov := &entity.MovimientoInventario{
		ID:            uuid.New().String(),
		ProductoID:    input.ProductoID,
		LoteID:        input.LoteID,
		Tipo:          input.Tipo,
		Cantidad:      input.Cantidad,
		Motivo:        input.Motivo,
		Referencia:    input.Referencia,
		UsuarioID:     input.UsuarioID,
		UsuarioNombre: input.UsuarioNombre,
		Observaciones: input.Observaciones,
		Fecha:         time.Now(),
	}
	if errores := mov.Validar(); len(errores) > 0 {
		return nil, fmt.Errorf("movimiento inválido (%v): %w", errores, domain.ErrInvalidInput)
	}

	producto, err := uc.productoRepo.GetByID(input.ProductoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	mov.ProductoNombre = producto.Nombre

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
	) error {
		return AplicarMovimiento(movRepo, loteRepo, productoRepo, mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// AplicarMovimiento ejecuta el cambio de stock dentro de la transacción.
// También lo usa CompletarVenta para las salidas por venta.
func AplicarMovimiento(
	movRepo repository.MovimientoRepository,
	loteRepo repository.LoteRepository,
	productoRepo repository.ProductoRepository,
	mov *entity.MovimientoInventario,
) error {
	producto, err := productoRepo.GetForUpdate(mov.ProductoID)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNotFound
	}

	var lote *entity.Lote
	if mov.LoteID != "" {
		lote, err = loteRepo.GetForUpdate(mov.LoteID)
		if err != nil {
			return err
		}
		if lote == nil || lote.ProductoID != mov.ProductoID {
			return domain.ErrNotFound
		}
		mov.NumeroLote = lote.NumeroLote
	}

	stockAnterior := producto.StockTotal
	delta, err := deltaStock(mov, lote, stockAnterior)
	if err != nil {
		return err
	}

	if lote != nil {
		lote.CantidadDisponible += delta
		if lote.CantidadDisponible < 0 {
			return domain.ErrInsufficientStock
		}
		if lote.CantidadDisponible > lote.CantidadInicial {
			lote.CantidadInicial = lote.CantidadDisponible
		}
		lote.FechaActualizacion = time.Now()
		if err := loteRepo.Update(lote); err != nil {
			return err
		}
	}

	stockNuevo := stockAnterior + delta
	if stockNuevo < 0 {
		return domain.ErrInsufficientStock
	}
	if err := productoRepo.UpdateStockTotal(producto.ID, stockNuevo); err != nil {
		return err
	}

	mov.StockAnterior = stockAnterior
	mov.StockNuevo = stockNuevo
	return movRepo.Create(mov)
}

// deltaStock cambio neto de existencias que produce el movimiento.
func deltaStock(mov *entity.MovimientoInventario, lote *entity.Lote, stockProducto int) (int, error) {
	switch mov.Tipo {
	case entity.MovimientoEntrada:
		return mov.Cantidad, nil
	case entity.MovimientoSalida:
		if lote != nil && lote.CantidadDisponible < mov.Cantidad {
			return 0, domain.ErrInsufficientStock
		}
		if lote == nil && stockProducto < mov.Cantidad {
			return 0, domain.ErrInsufficientStock
		}
		return -mov.Cantidad, nil
	case entity.MovimientoAjuste:
		if lote != nil {
			return mov.Cantidad - lote.CantidadDisponible, nil
		}
		return mov.Cantidad - stockProducto, nil
	}
	return 0, domain.ErrInvalidInput
}
