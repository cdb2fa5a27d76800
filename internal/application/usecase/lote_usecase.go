package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// LoteUseCase altas y consultas de lotes. El stock del lote entra por un
// movimiento ENTRADA, nunca por edición directa.
type LoteUseCase struct {
	loteRepo     repository.LoteRepository
	productoRepo repository.ProductoRepository
	movimientos  *inventory.RegistrarMovimientoUseCase
}

// NewLoteUseCase construye el caso de uso.
func NewLoteUseCase(
	loteRepo repository.LoteRepository,
	productoRepo repository.ProductoRepository,
	movimientos *inventory.RegistrarMovimientoUseCase,
) *LoteUseCase {
	return &LoteUseCase{loteRepo: loteRepo, productoRepo: productoRepo, movimientos: movimientos}
}

// Create registra un lote nuevo y su entrada de inventario. El lote nace con
// cantidad disponible cero y el movimiento ENTRADA la lleva a la inicial,
// dejando el kardex como única fuente de cambios de stock.
func (uc *LoteUseCase) Create(ctx context.Context, in dto.CreateLoteRequest) (*dto.LoteResponse, error) {
	producto, err := uc.productoRepo.GetByID(in.ProductoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, fmt.Errorf("producto no encontrado: %w", domain.ErrNotFound)
	}

	now := time.Now()
	lote := &entity.Lote{
		ID:                 uuid.New().String(),
		ProductoID:         in.ProductoID,
		NumeroLote:         in.NumeroLote,
		FechaVencimiento:   in.FechaVencimiento,
		FechaIngreso:       now,
		CantidadInicial:    in.CantidadInicial,
		CantidadDisponible: 0,
		PrecioCompra:       in.PrecioCompra,
		Proveedor:          in.Proveedor,
		UbicacionAnaquel:   in.UbicacionAnaquel,
		Activo:             true,
		FechaCreacion:      now,
		FechaActualizacion: now,
	}
	// Validar exige disponible <= inicial; se valida con los valores finales.
	valida := *lote
	valida.CantidadDisponible = in.CantidadInicial
	if err := domain.NuevaValidacion(valida.Validar()); err != nil {
		return nil, err
	}
	if err := uc.loteRepo.Create(lote); err != nil {
		return nil, err
	}

	_, err = uc.movimientos.Registrar(ctx, inventory.MovimientoInput{
		ProductoID: in.ProductoID,
		LoteID:     lote.ID,
		Tipo:       entity.MovimientoEntrada,
		Cantidad:   in.CantidadInicial,
		Motivo:     "Ingreso de lote",
		Referencia: "Lote: " + lote.NumeroLote,
	})
	if err != nil {
		return nil, err
	}

	actual, err := uc.loteRepo.GetByID(lote.ID)
	if err != nil {
		return nil, err
	}
	return dto.ToLoteResponse(actual), nil
}

// ListByProducto lotes de un producto, con su estado de caducidad.
func (uc *LoteUseCase) ListByProducto(productoID string) (*dto.LoteListResponse, error) {
	lotes, err := uc.loteRepo.ListByProducto(productoID)
	if err != nil {
		return nil, err
	}
	return toLoteList(lotes), nil
}

// ListPorCaducar lotes activos con stock que vencen dentro del umbral de días.
func (uc *LoteUseCase) ListPorCaducar(dias int) (*dto.LoteListResponse, error) {
	if dias <= 0 {
		dias = 30
	}
	lotes, err := uc.loteRepo.ListPorCaducar(dias)
	if err != nil {
		return nil, err
	}
	return toLoteList(lotes), nil
}

func toLoteList(lotes []*entity.Lote) *dto.LoteListResponse {
	items := make([]dto.LoteResponse, 0, len(lotes))
	for _, l := range lotes {
		items = append(items, *dto.ToLoteResponse(l))
	}
	return &dto.LoteListResponse{Items: items}
}
