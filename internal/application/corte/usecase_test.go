package corte_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/farmacia-pos/internal/application/corte"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	dcorte "github.com/tu-usuario/farmacia-pos/internal/domain/corte"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del caso de uso del corte: apertura implícita, alerta de retiro sin
// revelar montos, retiros limitados al efectivo en caja y cierre.
// ──────────────────────────────────────────────────────────────────────────────

func mxn(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type memCorteRepo struct {
	abierto *entity.CorteCaja
	retiros []*entity.RetiroEfectivo
}

func (r *memCorteRepo) Create(c *entity.CorteCaja) error             { r.abierto = c; return nil }
func (r *memCorteRepo) GetByID(id string) (*entity.CorteCaja, error) { return r.abierto, nil }
func (r *memCorteRepo) GetAbierto(numeroCaja int) (*entity.CorteCaja, error) {
	if r.abierto != nil && r.abierto.Estado != entity.CorteAbierto {
		return nil, nil
	}
	return r.abierto, nil
}
func (r *memCorteRepo) GetAbiertoForUpdate(numeroCaja int) (*entity.CorteCaja, error) {
	return r.GetAbierto(numeroCaja)
}
func (r *memCorteRepo) Update(c *entity.CorteCaja) error { r.abierto = c; return nil }
func (r *memCorteRepo) Historial(limit, offset int) ([]*entity.CorteCaja, error) {
	return nil, nil
}
func (r *memCorteRepo) CreateRetiro(ret *entity.RetiroEfectivo) error {
	r.retiros = append(r.retiros, ret)
	return nil
}
func (r *memCorteRepo) ListRetiros(corteID string) ([]*entity.RetiroEfectivo, error) {
	return r.retiros, nil
}

func buildUseCase(repo *memCorteRepo) *corte.UseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return corte.NewUseCase(repo, 1, mxn("1000"), mxn("5000"), log)
}

func TestActual_AperturaImplicita(t *testing.T) {
	repo := &memCorteRepo{}
	uc := buildUseCase(repo)

	c, err := uc.Actual(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, entity.CorteAbierto, c.Estado)
	assert.True(t, c.FondoInicial.Equal(mxn("1000")))
	assert.Same(t, repo.abierto, c, "El corte nuevo queda persistido")

	// La segunda llamada regresa el mismo corte, no abre otro.
	otra, err := uc.Actual(context.Background())
	require.NoError(t, err)
	assert.Equal(t, c.ID, otra.ID)
}

func TestAlertaRetiro_SoloRevelaElHecho(t *testing.T) {
	repo := &memCorteRepo{}
	uc := buildUseCase(repo)
	ctx := context.Background()

	alerta, err := uc.AlertaRetiro(ctx)
	require.NoError(t, err)
	assert.False(t, alerta.Activa)
	assert.True(t, alerta.Limite.Equal(mxn("5000")))

	// Por arriba del límite de $5,000 en el cajón la alerta se enciende.
	repo.abierto.VentasEfectivo = mxn("6200")
	alerta, err = uc.AlertaRetiro(ctx)
	require.NoError(t, err)
	assert.True(t, alerta.Activa)
}

func TestRegistrarRetiro(t *testing.T) {
	repo := &memCorteRepo{}
	uc := buildUseCase(repo)
	ctx := context.Background()

	_, err := uc.Actual(ctx)
	require.NoError(t, err)
	repo.abierto.VentasEfectivo = mxn("3000")

	retiro, err := uc.RegistrarRetiro(ctx, corte.RetiroInput{
		Monto:         mxn("2500"),
		Motivo:        "Retiro parcial a bóveda",
		AutorizadoPor: "Supervisor Mendoza",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, retiro.ID)
	assert.Equal(t, repo.abierto.ID, retiro.CorteCajaID)
	assert.True(t, repo.abierto.RetirosEfectivo.Equal(mxn("2500")))
	require.Len(t, repo.retiros, 1)
}

func TestRegistrarRetiro_ExcedeElEfectivoEnCaja(t *testing.T) {
	repo := &memCorteRepo{}
	uc := buildUseCase(repo)
	ctx := context.Background()

	_, err := uc.Actual(ctx)
	require.NoError(t, err)
	repo.abierto.VentasEfectivo = mxn("500")

	// Disponible: 1000 de fondo + 500 de ventas = 1500.
	_, err = uc.RegistrarRetiro(ctx, corte.RetiroInput{
		Monto:         mxn("1501"),
		Motivo:        "Retiro",
		AutorizadoPor: "Supervisor Mendoza",
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, repo.abierto.RetirosEfectivo.IsZero())
	assert.Empty(t, repo.retiros)
}

func TestRegistrarCancelacion(t *testing.T) {
	repo := &memCorteRepo{}
	uc := buildUseCase(repo)
	ctx := context.Background()

	require.NoError(t, uc.RegistrarCancelacion(ctx))
	require.NoError(t, uc.RegistrarCancelacion(ctx))

	assert.Equal(t, 2, repo.abierto.CantidadCancelaciones)
}

func TestCerrar(t *testing.T) {
	repo := &memCorteRepo{}
	uc := buildUseCase(repo)
	ctx := context.Background()

	_, err := uc.Actual(ctx)
	require.NoError(t, err)
	repo.abierto.VentasEfectivo = mxn("700")

	// Esperado: 1000 + 700 = 1700; declarado: 1×1000 + 1×500 + 1×200 = 1700.
	desglose := entity.NuevoDesglose()
	desglose.Billetes["1000"] = 1
	desglose.Billetes["500"] = 1
	desglose.Billetes["200"] = 1

	cerrado, err := uc.Cerrar(ctx, corte.CierreInput{
		Desglose:     desglose,
		CajeroNombre: "Luis Peña",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CorteCerrado, cerrado.Estado)
	assert.Equal(t, "Luis Peña", cerrado.CajeroNombre)
	assert.True(t, cerrado.Diferencia.IsZero())
	assert.Equal(t, entity.DiferenciaCuadrado, dcorte.EstadoDiferenciaDe(cerrado))
}

func TestCerrar_SinCorteAbierto(t *testing.T) {
	uc := buildUseCase(&memCorteRepo{})
	_, err := uc.Cerrar(context.Background(), corte.CierreInput{Desglose: entity.NuevoDesglose()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
