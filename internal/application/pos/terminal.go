package pos

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/interaccion"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
	"github.com/tu-usuario/farmacia-pos/internal/domain/venta"
	"github.com/tu-usuario/farmacia-pos/pkg/logger"
)

// ErrorCobroBloqueado la venta no pasó la validación de cobro. Agrupa todas
// las razones para que el operador las vea de una vez.
type ErrorCobroBloqueado struct {
	Razones []string
}

func (e *ErrorCobroBloqueado) Error() string {
	return "cobro bloqueado: " + strings.Join(e.Razones, "; ")
}

func (e *ErrorCobroBloqueado) Unwrap() error { return domain.ErrInvalidInput }

// terminal estado de una caja: carrito activo, cliente, ventas en espera y la
// bandera de finalización en vuelo.
type terminal struct {
	carrito     *venta.Carrito
	cliente     *entity.Cliente
	enEspera    []*venta.Carrito
	finalizando bool
}

// RegistroCancelaciones deja constancia de ventas canceladas en el corte
// abierto. La implementación vive en el caso de uso del corte.
type RegistroCancelaciones interface {
	RegistrarCancelacion(ctx context.Context) error
}

// Terminales administra las sesiones de venta por terminal. Cada terminal
// tiene exactamente un dueño lógico; el mutex serializa el acceso y la
// bandera finalizando rechaza mutaciones mientras un cobro está en vuelo
// (la única llamada asíncrona del núcleo).
type Terminales struct {
	mu         sync.Mutex
	terminales map[string]*terminal

	productoRepo  repository.ProductoRepository
	loteRepo      repository.LoteRepository
	clienteRepo   repository.ClienteRepository
	completarUC   *CompletarVentaUseCase
	cancelaciones RegistroCancelaciones
	log           *logger.Logger
}

// NewTerminales construye el administrador de sesiones POS.
func NewTerminales(
	productoRepo repository.ProductoRepository,
	loteRepo repository.LoteRepository,
	clienteRepo repository.ClienteRepository,
	completarUC *CompletarVentaUseCase,
	cancelaciones RegistroCancelaciones,
	log *logger.Logger,
) *Terminales {
	return &Terminales{
		terminales:    make(map[string]*terminal),
		productoRepo:  productoRepo,
		loteRepo:      loteRepo,
		clienteRepo:   clienteRepo,
		completarUC:   completarUC,
		cancelaciones: cancelaciones,
		log:           log,
	}
}

// sesion obtiene (o crea) la terminal. Llamar con el mutex tomado.
func (t *Terminales) sesion(terminalID string) *terminal {
	s, ok := t.terminales[terminalID]
	if !ok {
		s = &terminal{carrito: venta.Nuevo()}
		t.terminales[terminalID] = s
	}
	return s
}

// Estado snapshot del carrito activo de la terminal para mostrar.
type Estado struct {
	Venta    entity.Venta
	Alertas  []interaccion.Alerta
	EnEspera []EsperaResumen
}

// EsperaResumen renglón de la lista de ventas apartadas.
type EsperaResumen struct {
	Indice        int
	Nombre        string
	Lineas        int
	Total         decimal.Decimal
	ClienteNombre string
}

// Estado devuelve una copia del estado actual de la terminal.
func (t *Terminales) Estado(terminalID string) Estado {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.sesion(terminalID)
	return Estado{
		Venta:    *s.carrito.Venta,
		Alertas:  append([]interaccion.Alerta(nil), s.carrito.Alertas...),
		EnEspera: resumenEspera(s.enEspera),
	}
}

func resumenEspera(enEspera []*venta.Carrito) []EsperaResumen {
	res := make([]EsperaResumen, 0, len(enEspera))
	for i, c := range enEspera {
		res = append(res, EsperaResumen{
			Indice:        i,
			Nombre:        c.Venta.NombreEspera,
			Lineas:        len(c.Venta.Detalles),
			Total:         c.Venta.Total,
			ClienteNombre: c.Venta.ClienteNombre,
		})
	}
	return res
}

// AgregarProducto resuelve el producto (con lotes) y lo agrega al carrito.
// loteManualID permite elegir un lote distinto al FEFO; debe pertenecer al
// producto y pasa igual el bloqueo de caducados.
func (t *Terminales) AgregarProducto(ctx context.Context, terminalID, productoID string, cantidad int, loteManualID string) (*venta.ResultadoAgregar, error) {
	producto, err := t.productoRepo.GetConLotes(productoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}

	var loteManual *entity.Lote
	if loteManualID != "" {
		for i := range producto.Lotes {
			if producto.Lotes[i].ID == loteManualID {
				loteManual = &producto.Lotes[i]
				break
			}
		}
		if loteManual == nil {
			return nil, fmt.Errorf("el lote no pertenece al producto: %w", domain.ErrNotFound)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.sesion(terminalID)
	if s.finalizando {
		return nil, domain.ErrVentaFinalizando
	}
	return s.carrito.AgregarProducto(producto, cantidad, loteManual, time.Now())
}

// EliminarLinea quita la línea por índice (fuera de rango es no-op).
func (t *Terminales) EliminarLinea(terminalID string, indice int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sesion(terminalID).carrito.EliminarDetalle(indice)
}

// ActualizarCantidad cambia la cantidad de una línea revalidando contra la
// capacidad del lote ligado a ella.
func (t *Terminales) ActualizarCantidad(terminalID string, indice, cantidad int) error {
	t.mu.Lock()
	s := t.sesion(terminalID)
	if s.finalizando {
		t.mu.Unlock()
		return domain.ErrVentaFinalizando
	}
	var loteID string
	if indice >= 0 && indice < len(s.carrito.Venta.Detalles) {
		loteID = s.carrito.Venta.Detalles[indice].LoteID
	}
	t.mu.Unlock()

	capacidad := 0
	if loteID != "" && cantidad > 0 {
		l, err := t.loteRepo.GetByID(loteID)
		if err != nil {
			return err
		}
		if l != nil {
			capacidad = l.CantidadDisponible
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sesion(terminalID).carrito.ActualizarCantidad(indice, cantidad, capacidad)
}

// AsignarReceta adjunta la receta a la línea; la validez se revisa al cobrar.
func (t *Terminales) AsignarReceta(terminalID string, indice int, r *entity.RecetaMedica) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sesion(terminalID).carrito.AsignarReceta(indice, r)
}

// SeleccionarCliente liga un cliente del padrón a la venta activa.
func (t *Terminales) SeleccionarCliente(ctx context.Context, terminalID, clienteID string) error {
	var cliente *entity.Cliente
	if clienteID != "" {
		var err error
		cliente, err = t.clienteRepo.GetByID(clienteID)
		if err != nil {
			return err
		}
		if cliente == nil {
			return domain.ErrNotFound
		}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.sesion(terminalID)
	s.cliente = cliente
	s.carrito.SeleccionarCliente(cliente)
	return nil
}

// CambiarMetodoPago y EstablecerMontoPagado mutan los campos de cobro.
func (t *Terminales) CambiarMetodoPago(terminalID string, metodo entity.MetodoPago) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sesion(terminalID).carrito.CambiarMetodoPago(metodo)
}

func (t *Terminales) EstablecerMontoPagado(terminalID string, monto decimal.Decimal) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sesion(terminalID).carrito.EstablecerMontoPagado(monto)
}

// PonerEnEspera aparta la venta activa y deja un carrito fresco. Las alertas
// de interacciones activas se limpian.
func (t *Terminales) PonerEnEspera(terminalID, nombre string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.sesion(terminalID)
	if s.finalizando {
		return domain.ErrVentaFinalizando
	}
	if err := s.carrito.PonerEnEspera(nombre, time.Now()); err != nil {
		return err
	}
	s.enEspera = append(s.enEspera, s.carrito)
	s.carrito = venta.Nuevo()
	s.cliente = nil
	return nil
}

// RecuperarDeEspera vuelve activa una venta apartada. Política uniforme: si
// la venta activa tiene líneas, se aparta automáticamente con la etiqueta
// "Auto-espera" (recuperable como cualquier otra); nunca se descarta.
func (t *Terminales) RecuperarDeEspera(terminalID string, indice int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.sesion(terminalID)
	if s.finalizando {
		return domain.ErrVentaFinalizando
	}
	if indice < 0 || indice >= len(s.enEspera) {
		return domain.ErrNotFound
	}

	recuperada := s.enEspera[indice]
	if err := recuperada.RecuperarDeEspera(); err != nil {
		return err
	}
	s.enEspera = append(s.enEspera[:indice], s.enEspera[indice+1:]...)

	if len(s.carrito.Venta.Detalles) > 0 {
		if err := s.carrito.PonerEnEspera("Auto-espera", time.Now()); err != nil {
			return err
		}
		s.enEspera = append(s.enEspera, s.carrito)
	}

	recuperada.LimpiarAlertas()
	s.carrito = recuperada
	s.cliente = nil
	return nil
}

// Validar razones que bloquean el cobro de la venta activa (vacío = lista).
func (t *Terminales) Validar(terminalID string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sesion(terminalID).carrito.Validar(time.Now())
}

// Completar finaliza la venta activa: valida, marca la finalización en vuelo
// (rechazando agregados y cobros concurrentes con ErrVentaFinalizando),
// persiste fuera del lock y, si todo confirmó, deja un carrito fresco.
// Si la persistencia falla, la venta queda EN_PROCESO para reintentar.
func (t *Terminales) Completar(ctx context.Context, terminalID string) (*entity.Venta, error) {
	t.mu.Lock()
	s := t.sesion(terminalID)
	if s.finalizando {
		t.mu.Unlock()
		return nil, domain.ErrVentaFinalizando
	}
	if razones := s.carrito.Validar(time.Now()); len(razones) > 0 {
		t.mu.Unlock()
		return nil, &ErrorCobroBloqueado{Razones: razones}
	}
	s.finalizando = true
	ventaActiva := s.carrito.Venta
	t.mu.Unlock()

	persistida, err := t.completarUC.Completar(ctx, ventaActiva)

	t.mu.Lock()
	defer t.mu.Unlock()
	s.finalizando = false
	if err != nil {
		return nil, err
	}
	s.carrito = venta.Nuevo()
	s.cliente = nil
	return persistida, nil
}

// Cancelar descarta la venta activa y sus alertas, y deja constancia de la
// cancelación en el corte abierto.
func (t *Terminales) Cancelar(ctx context.Context, terminalID string) error {
	t.mu.Lock()
	s := t.sesion(terminalID)
	if s.finalizando {
		t.mu.Unlock()
		return domain.ErrVentaFinalizando
	}
	teniaLineas := len(s.carrito.Venta.Detalles) > 0
	if err := s.carrito.Cancelar(); err != nil {
		t.mu.Unlock()
		return err
	}
	s.cliente = nil
	t.mu.Unlock()

	if teniaLineas && t.cancelaciones != nil {
		if err := t.cancelaciones.RegistrarCancelacion(ctx); err != nil {
			t.log.Warn().Err(err).Msg("No se pudo registrar la cancelación en el corte")
		}
	}
	return nil
}

// LimpiarAlertas descarta las alertas de interacciones de la terminal.
func (t *Terminales) LimpiarAlertas(terminalID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sesion(terminalID).carrito.LimpiarAlertas()
}
