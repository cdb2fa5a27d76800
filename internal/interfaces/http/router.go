package http

import (
	"github.com/gofiber/fiber/v2"

	appcorte "github.com/tu-usuario/farmacia-pos/internal/application/corte"
	"github.com/tu-usuario/farmacia-pos/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/application/pos"
	"github.com/tu-usuario/farmacia-pos/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductoUC          *usecase.ProductoUseCase
	ClienteUC           *usecase.ClienteUseCase
	LoteUC              *usecase.LoteUseCase
	VentaUC             *usecase.VentaUseCase
	RegistrarMovimiento *inventory.RegistrarMovimientoUseCase
	ConsultaMovimientos *inventory.ConsultaMovimientosUseCase
	Terminales          *pos.Terminales
	CorteUC             *appcorte.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de productos
	productos := api.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	loteHandler := NewLoteHandler(deps.LoteUC)
	productos.Post("/", productoHandler.Create)
	productos.Get("/", productoHandler.List)
	productos.Get("/codigo/:codigo", productoHandler.GetByCodigoBarras)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", productoHandler.Update)
	productos.Get("/:id/lotes", loteHandler.ListByProducto)

	// Lotes
	lotes := api.Group("/lotes")
	lotes.Post("/", loteHandler.Create)
	lotes.Get("/por-caducar", loteHandler.ListPorCaducar)

	// Clientes
	clientes := api.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Put("/:id", clienteHandler.Update)

	// Kardex de inventario
	inventario := api.Group("/inventario")
	inventarioHandler := NewInventarioHandler(deps.RegistrarMovimiento, deps.ConsultaMovimientos)
	inventario.Post("/movimientos", inventarioHandler.RegistrarMovimiento)
	inventario.Get("/movimientos", inventarioHandler.List)

	// Historial de ventas
	ventas := api.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.VentaUC)
	ventas.Get("/", ventaHandler.List)
	ventas.Get("/:id", ventaHandler.GetByID)

	// Punto de venta (por terminal)
	posGroup := api.Group("/pos/:terminal")
	posHandler := NewPOSHandler(deps.Terminales)
	posGroup.Get("/carrito", posHandler.Estado)
	posGroup.Post("/productos", posHandler.AgregarProducto)
	posGroup.Put("/lineas/:indice", posHandler.ActualizarCantidad)
	posGroup.Delete("/lineas/:indice", posHandler.EliminarLinea)
	posGroup.Post("/lineas/:indice/receta", posHandler.AsignarReceta)
	posGroup.Post("/cliente", posHandler.SeleccionarCliente)
	posGroup.Post("/pago", posHandler.Pago)
	posGroup.Get("/validar", posHandler.Validar)
	posGroup.Post("/cobrar", posHandler.Cobrar)
	posGroup.Post("/espera", posHandler.PonerEnEspera)
	posGroup.Post("/espera/:indice/recuperar", posHandler.RecuperarDeEspera)
	posGroup.Post("/cancelar", posHandler.Cancelar)
	posGroup.Delete("/alertas", posHandler.LimpiarAlertas)

	// Corte de caja
	corte := api.Group("/corte")
	corteHandler := NewCorteHandler(deps.CorteUC)
	corte.Get("/actual", corteHandler.Actual)
	corte.Get("/alerta-retiro", corteHandler.AlertaRetiro)
	corte.Post("/retiros", corteHandler.RegistrarRetiro)
	corte.Post("/cerrar", corteHandler.Cerrar)
	corte.Get("/historial", corteHandler.Historial)
	corte.Get("/:id/retiros", corteHandler.Retiros)
}
