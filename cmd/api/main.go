package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appcorte "github.com/tu-usuario/farmacia-pos/internal/application/corte"
	"github.com/tu-usuario/farmacia-pos/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/application/pos"
	"github.com/tu-usuario/farmacia-pos/internal/application/usecase"
	"github.com/tu-usuario/farmacia-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/farmacia-pos/internal/interfaces/http"
	"github.com/tu-usuario/farmacia-pos/pkg/config"
	"github.com/tu-usuario/farmacia-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Int("caja", cfg.Caja.NumeroCaja).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productoRepo := postgres.NewProductoRepository(pool)
	loteRepo := postgres.NewLoteRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	corteRepo := postgres.NewCorteRepository(pool)
	movimientoRepo := postgres.NewMovimientoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registrarMovimientoUC := inventory.NewRegistrarMovimientoUseCase(txRunner, productoRepo)
	consultaMovimientosUC := inventory.NewConsultaMovimientosUseCase(movimientoRepo)

	productoUC := usecase.NewProductoUseCase(productoRepo)
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	loteUC := usecase.NewLoteUseCase(loteRepo, productoRepo, registrarMovimientoUC)
	ventaUC := usecase.NewVentaUseCase(ventaRepo)

	corteUC := appcorte.NewUseCase(corteRepo, cfg.Caja.NumeroCaja,
		cfg.Caja.FondoInicial, cfg.Caja.LimiteEfectivo, log)

	completarVentaUC := pos.NewCompletarVentaUseCase(txRunner, corteRepo,
		cfg.Caja.NumeroCaja, cfg.Caja.FondoInicial, log)
	terminales := pos.NewTerminales(productoRepo, loteRepo, clienteRepo,
		completarVentaUC, corteUC, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Farmacia POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductoUC:          productoUC,
		ClienteUC:           clienteUC,
		LoteUC:              loteUC,
		VentaUC:             ventaUC,
		RegistrarMovimiento: registrarMovimientoUC,
		ConsultaMovimientos: consultaMovimientosUC,
		Terminales:          terminales,
		CorteUC:             corteUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
