package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/application/pos"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/lote"
	"github.com/tu-usuario/farmacia-pos/internal/domain/venta"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del mapeo de errores de dominio a respuestas HTTP: cada familia de
// error debe traducirse al código y cuerpo que el front del POS espera.
// ──────────────────────────────────────────────────────────────────────────────

// ejecutarConError monta una ruta que falla con err y devuelve la respuesta.
func ejecutarConError(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/falla", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})

	resp, errTest := app.Test(httptest.NewRequest("GET", "/falla", nil))
	require.NoError(t, errTest)
	defer resp.Body.Close()

	var cuerpo dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cuerpo))
	return resp.StatusCode, cuerpo
}

func TestRespondError_NotFound(t *testing.T) {
	status, cuerpo := ejecutarConError(t, domain.ErrNotFound)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", cuerpo.Code)
}

func TestRespondError_ErroresEnvueltosConservanElCodigo(t *testing.T) {
	err := fmt.Errorf("producto abc: %w", domain.ErrNotFound)
	status, cuerpo := ejecutarConError(t, err)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", cuerpo.Code)
	assert.Contains(t, cuerpo.Message, "producto abc")
}

func TestRespondError_ValidacionCon400YDetalles(t *testing.T) {
	err := domain.NuevaValidacion([]string{
		"El nombre comercial es obligatorio",
		"El precio de venta debe ser mayor a $0",
	})

	status, cuerpo := ejecutarConError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", cuerpo.Code)
	assert.Len(t, cuerpo.Detalles, 2, "El cuerpo lista todas las violaciones, no solo la primera")
}

func TestRespondError_CobroBloqueadoCon422(t *testing.T) {
	err := &pos.ErrorCobroBloqueado{Razones: []string{"Amoxicilina 500mg requiere receta médica"}}

	status, cuerpo := ejecutarConError(t, err)

	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "COBRO_BLOQUEADO", cuerpo.Code)
	assert.Contains(t, cuerpo.Detalles, "Amoxicilina 500mg requiere receta médica")
}

func TestRespondError_SinLoteElegibleCon409(t *testing.T) {
	err := &venta.ErrorSinLoteElegible{Producto: "Ibuprofeno 400mg", Razon: lote.RazonTodosCaducados}

	status, cuerpo := ejecutarConError(t, err)

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "SIN_LOTE", cuerpo.Code)
	assert.Contains(t, cuerpo.Message, "Ibuprofeno 400mg")
}

func TestRespondError_Conflictos409(t *testing.T) {
	casos := map[string]struct {
		err  error
		code string
	}{
		"duplicado":          {domain.ErrDuplicate, "DUPLICATE"},
		"stock insuficiente": {domain.ErrInsufficientStock, "STOCK_INSUFICIENTE"},
		"venta finalizando":  {domain.ErrVentaFinalizando, "VENTA_FINALIZANDO"},
		"corte cerrado":      {domain.ErrCorteCerrado, "CORTE_CERRADO"},
		"conflicto genérico": {domain.ErrConflict, "CONFLICT"},
	}
	for nombre, caso := range casos {
		t.Run(nombre, func(t *testing.T) {
			status, cuerpo := ejecutarConError(t, caso.err)
			assert.Equal(t, fiber.StatusConflict, status)
			assert.Equal(t, caso.code, cuerpo.Code)
		})
	}
}

func TestRespondError_EntradaInvalidaCon400(t *testing.T) {
	status, cuerpo := ejecutarConError(t, domain.ErrInvalidInput)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_INPUT", cuerpo.Code)

	status, cuerpo = ejecutarConError(t, domain.ErrVentaVacia)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VENTA_VACIA", cuerpo.Code)
}

func TestRespondError_DesconocidoCon500(t *testing.T) {
	status, cuerpo := ejecutarConError(t, errors.New("se cayó la base"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", cuerpo.Code)
}
