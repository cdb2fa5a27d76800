// Package corte orquesta los casos de uso del corte de caja: apertura
// implícita del turno, retiros de efectivo, cierre con conteo ciego e
// historial de cortes cerrados.
package corte

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pos/internal/domain"
	dcorte "github.com/tu-usuario/farmacia-pos/internal/domain/corte"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
	"github.com/tu-usuario/farmacia-pos/pkg/logger"
)

// UseCase casos de uso del corte de caja de una terminal.
type UseCase struct {
	repo           repository.CorteRepository
	numeroCaja     int
	fondoInicial   decimal.Decimal
	limiteEfectivo decimal.Decimal
	log            *logger.Logger
}

// NewUseCase construye el caso de uso con la configuración de la caja.
func NewUseCase(repo repository.CorteRepository, numeroCaja int, fondoInicial, limiteEfectivo decimal.Decimal, log *logger.Logger) *UseCase {
	return &UseCase{
		repo:           repo,
		numeroCaja:     numeroCaja,
		fondoInicial:   fondoInicial,
		limiteEfectivo: limiteEfectivo,
		log:            log,
	}
}

// Actual devuelve el corte abierto de la caja, abriéndolo con el fondo
// configurado si no existe (apertura implícita al iniciar el turno).
func (uc *UseCase) Actual(ctx context.Context) (*entity.CorteCaja, error) {
	abierto, err := uc.repo.GetAbierto(uc.numeroCaja)
	if err != nil {
		return nil, err
	}
	if abierto != nil {
		return abierto, nil
	}

	nuevo := dcorte.Abrir(uc.numeroCaja, uc.fondoInicial, time.Now())
	nuevo.ID = uuid.New().String()
	if err := uc.repo.Create(nuevo); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("corte_id", nuevo.ID).
		Int("numero_caja", uc.numeroCaja).
		Str("fondo_inicial", uc.fondoInicial.String()).
		Msg("Corte de caja abierto")
	return nuevo, nil
}

// AlertaEfectivo indica si el efectivo acumulado en el cajón rebasó el
// límite configurado y conviene hacer un retiro parcial.
type AlertaEfectivo struct {
	Activa bool
	Limite decimal.Decimal
}

// AlertaRetiro evalúa la alerta de exceso de efectivo del corte abierto.
// El monto acumulado no se revela, solo el hecho de rebasar el límite; el
// conteo ciego exige que el cajero no conozca el esperado durante el turno.
func (uc *UseCase) AlertaRetiro(ctx context.Context) (*AlertaEfectivo, error) {
	abierto, err := uc.Actual(ctx)
	if err != nil {
		return nil, err
	}
	return &AlertaEfectivo{
		Activa: dcorte.EfectivoEnCajon(abierto).GreaterThan(uc.limiteEfectivo),
		Limite: uc.limiteEfectivo,
	}, nil
}

// RegistrarCancelacion cuenta una venta cancelada en el corte abierto.
// No afecta montos, solo el contador del turno.
func (uc *UseCase) RegistrarCancelacion(ctx context.Context) error {
	abierto, err := uc.Actual(ctx)
	if err != nil {
		return err
	}
	dcorte.RegistrarCancelacion(abierto)
	return uc.repo.Update(abierto)
}

// RetiroInput datos del retiro de efectivo autorizado por un supervisor.
type RetiroInput struct {
	Monto         decimal.Decimal
	Motivo        string
	AutorizadoPor string
	PinSupervisor string
	Observaciones string
}

// RegistrarRetiro aplica un retiro de efectivo al corte abierto y lo
// persiste. El retiro no puede exceder el efectivo disponible en el cajón
// (fondo inicial incluido).
func (uc *UseCase) RegistrarRetiro(ctx context.Context, input RetiroInput) (*entity.RetiroEfectivo, error) {
	abierto, err := uc.Actual(ctx)
	if err != nil {
		return nil, err
	}

	disponible := dcorte.EfectivoEsperado(abierto)
	if input.Monto.GreaterThan(disponible) {
		return nil, fmt.Errorf("el retiro excede el efectivo disponible en caja: %w", domain.ErrConflict)
	}

	retiro := &entity.RetiroEfectivo{
		ID:            uuid.New().String(),
		CorteCajaID:   abierto.ID,
		Monto:         input.Monto,
		Motivo:        input.Motivo,
		AutorizadoPor: input.AutorizadoPor,
		PinSupervisor: input.PinSupervisor,
		Fecha:         time.Now(),
		Observaciones: input.Observaciones,
	}
	if err := dcorte.RegistrarRetiro(abierto, retiro); err != nil {
		return nil, err
	}
	if err := uc.repo.CreateRetiro(retiro); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(abierto); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("corte_id", abierto.ID).
		Str("monto", retiro.Monto.String()).
		Str("autorizado_por", retiro.AutorizadoPor).
		Msg("Retiro de efectivo registrado")
	return retiro, nil
}

// CierreInput conteo ciego capturado por el cajero al cerrar el turno.
type CierreInput struct {
	Desglose      *entity.DesgloseDenominaciones
	Observaciones string
	CajeroNombre  string
}

// Cerrar reconcilia y cierra el corte abierto. Devuelve el corte cerrado con
// declarado, esperado, diferencia y su clasificación ya calculados.
func (uc *UseCase) Cerrar(ctx context.Context, input CierreInput) (*entity.CorteCaja, error) {
	abierto, err := uc.repo.GetAbierto(uc.numeroCaja)
	if err != nil {
		return nil, err
	}
	if abierto == nil {
		return nil, fmt.Errorf("no hay corte abierto en la caja %d: %w", uc.numeroCaja, domain.ErrNotFound)
	}

	if input.CajeroNombre != "" {
		abierto.CajeroNombre = input.CajeroNombre
	}
	if err := dcorte.Cerrar(abierto, input.Desglose, input.Observaciones, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(abierto); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("corte_id", abierto.ID).
		Str("efectivo_declarado", abierto.EfectivoDeclarado.String()).
		Str("diferencia", abierto.Diferencia.String()).
		Str("estado_diferencia", string(dcorte.EstadoDiferenciaDe(abierto))).
		Msg("Corte de caja cerrado")
	return abierto, nil
}

// Historial cortes cerrados paginados, el más reciente primero.
func (uc *UseCase) Historial(ctx context.Context, limit, offset int) ([]*entity.CorteCaja, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.repo.Historial(limit, offset)
}

// Retiros lista los retiros de un corte.
func (uc *UseCase) Retiros(ctx context.Context, corteID string) ([]*entity.RetiroEfectivo, error) {
	return uc.repo.ListRetiros(corteID)
}
