package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/odontosys/inventario-api/internal/application/auditoria"
	"github.com/odontosys/inventario-api/internal/application/bitacora"
	"github.com/odontosys/inventario-api/internal/application/inventory"
	"github.com/odontosys/inventario-api/internal/application/kardex"
	"github.com/odontosys/inventario-api/internal/application/reservation"
	"github.com/odontosys/inventario-api/internal/infrastructure/collaborators"
	"github.com/odontosys/inventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/odontosys/inventario-api/internal/interfaces/http"
	"github.com/odontosys/inventario-api/pkg/config"
	"github.com/odontosys/inventario-api/pkg/logger"
	"github.com/odontosys/inventario-api/pkg/metrics"
)

// mountSwagger publica la UI de Swagger en /docs. El middleware entra en
// pánico si el archivo no existe, así que sin spec generada se omite.
func mountSwagger(app *fiber.App, filePath string, log *logger.Logger) {
	if _, err := os.Stat(filePath); err != nil {
		log.Warn().Str("file", filePath).Msg("swagger.json no encontrado, UI de docs deshabilitada")
		return
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    "Inventario API",
	}))
}

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := runMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	invRepo := postgres.NewInventoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	matResRepo := postgres.NewMaterialReservationRepository(pool)
	assetResRepo := postgres.NewAssetReservationRepository(pool)
	kardexRepo := postgres.NewKardexRepository(pool)
	bitacoraRepo := postgres.NewBitacoraRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	m := metrics.New(nil)

	// Colaboradores: adaptadores locales mientras los módulos de agenda,
	// usuarios y finanzas de la clínica no exponen sus APIs.
	permissions := collaborators.NewOwnerPermissions(invRepo)
	agenda := collaborators.NewOpenAgenda(log)

	inventoryUC := inventory.NewUseCase(
		txRunner, invRepo, productRepo, materialRepo, assetRepo,
		permissions, nil, log, m,
	)
	reservationUC := reservation.NewUseCase(
		txRunner, materialRepo, matResRepo, assetRepo, assetResRepo,
		agenda, log, m,
	)
	kardexUC := kardex.NewUseCase(kardexRepo)
	bitacoraUC := bitacora.NewUseCase(bitacoraRepo)
	auditoriaUC := auditoria.NewUseCase(auditRepo)

	sweeper := reservation.NewSweeper(reservationUC, cfg.Sweep.Interval, cfg.Sweep.Window, log, m)
	go sweeper.Run(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	mountSwagger(app, "./docs/swagger.json", log)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC:   inventoryUC,
		ReservationUC: reservationUC,
		KardexUC:      kardexUC,
		BitacoraUC:    bitacoraUC,
		AuditoriaUC:   auditoriaUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
