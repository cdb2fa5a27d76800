package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pos/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/corte"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
	"github.com/tu-usuario/farmacia-pos/pkg/logger"
)

// CompletarVentaUseCase finaliza una venta validada: la persiste con sus
// detalles y recetas, genera una SALIDA de inventario por cada línea con lote
// (el carrito nunca descuenta stock en memoria; el descuento físico ocurre
// aquí, una sola vez y bajo bloqueo de fila) y acumula el total en el corte
// de caja abierto según el método de pago.
type CompletarVentaUseCase struct {
	txRunner     VentaTxRunner
	corteRepo    repository.CorteRepository
	numeroCaja   int
	fondoInicial decimal.Decimal
	log          *logger.Logger
}

// NewCompletarVentaUseCase construye el caso de uso.
func NewCompletarVentaUseCase(
	txRunner VentaTxRunner,
	corteRepo repository.CorteRepository,
	numeroCaja int,
	fondoInicial decimal.Decimal,
	log *logger.Logger,
) *CompletarVentaUseCase {
	return &CompletarVentaUseCase{
		txRunner:     txRunner,
		corteRepo:    corteRepo,
		numeroCaja:   numeroCaja,
		fondoInicial: fondoInicial,
		log:          log,
	}
}

// Completar persiste la venta como COMPLETADA. La venta debe llegar ya
// validada (Carrito.Validar vacío); aquí solo se verifica lo mínimo para no
// persistir basura. Si la transacción falla, la venta del llamador queda
// EN_PROCESO para reintentar.
func (uc *CompletarVentaUseCase) Completar(ctx context.Context, v *entity.Venta) (*entity.Venta, error) {
	if len(v.Detalles) == 0 {
		return nil, domain.ErrVentaVacia
	}

	ahora := time.Now()
	v.ID = uuid.New().String()
	v.Estado = entity.VentaCompletada
	v.Fecha = ahora
	v.FechaCreacion = ahora
	for i := range v.Detalles {
		d := &v.Detalles[i]
		d.ID = uuid.New().String()
		if d.Receta != nil {
			d.Receta.ID = uuid.New().String()
			d.Receta.VentaID = v.ID
			d.Receta.ProductoID = d.ProductoID
			d.Receta.ProductoNombre = d.ProductoNombre
			d.Receta.TipoRegulacion = d.TipoRegulacion
		}
	}

	err := uc.txRunner.RunVenta(ctx, func(
		ventaRepo repository.VentaRepository,
		movRepo repository.MovimientoRepository,
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
		corteRepo repository.CorteRepository,
	) error {
		if err := ventaRepo.Create(v); err != nil {
			return fmt.Errorf("persistir venta: %w", err)
		}

		// Una salida de kardex por línea; el stock del lote y del producto
		// bajan dentro de la misma transacción.
		for i := range v.Detalles {
			d := &v.Detalles[i]
			mov := &entity.MovimientoInventario{
				ID:             uuid.New().String(),
				ProductoID:     d.ProductoID,
				ProductoNombre: d.ProductoNombre,
				LoteID:         d.LoteID,
				Tipo:           entity.MovimientoSalida,
				Cantidad:       d.Cantidad,
				Motivo:         "Venta",
				Referencia:     "Venta ID: " + v.ID,
				Fecha:          ahora,
			}
			if err := inventory.AplicarMovimiento(movRepo, loteRepo, productoRepo, mov); err != nil {
				return fmt.Errorf("salida de inventario de %s: %w", d.ProductoNombre, err)
			}
		}

		return uc.acumularEnCorte(corteRepo, v, ahora)
	})
	if err != nil {
		// La venta del llamador regresa a EN_PROCESO; nada se persistió.
		v.Estado = entity.VentaEnProceso
		return nil, err
	}

	uc.log.Info().
		Str("venta_id", v.ID).
		Str("metodo_pago", string(v.MetodoPago)).
		Str("total", v.Total.StringFixed(2)).
		Int("lineas", len(v.Detalles)).
		Msg("venta completada")
	return v, nil
}

// acumularEnCorte suma la venta al corte abierto de la caja, abriéndolo
// implícitamente si no existe.
func (uc *CompletarVentaUseCase) acumularEnCorte(corteRepo repository.CorteRepository, v *entity.Venta, ahora time.Time) error {
	abierto, err := corteRepo.GetAbiertoForUpdate(uc.numeroCaja)
	if err != nil {
		return err
	}
	if abierto == nil {
		abierto = corte.Abrir(uc.numeroCaja, uc.fondoInicial, ahora)
		abierto.ID = uuid.New().String()
		if err := corteRepo.Create(abierto); err != nil {
			return fmt.Errorf("abrir corte: %w", err)
		}
	}
	if err := corte.RegistrarVenta(abierto, v.Total, v.MetodoPago); err != nil {
		return err
	}
	return corteRepo.Update(abierto)
}
