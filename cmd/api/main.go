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
	"github.com/joho/godotenv"

	appasset "github.com/jhoicas/Almacen-obra-api/internal/application/asset"
	appcheckout "github.com/jhoicas/Almacen-obra-api/internal/application/checkout"
	appledger "github.com/jhoicas/Almacen-obra-api/internal/application/ledger"
	appmaintenance "github.com/jhoicas/Almacen-obra-api/internal/application/maintenance"
	apppurchasing "github.com/jhoicas/Almacen-obra-api/internal/application/purchasing"
	"github.com/jhoicas/Almacen-obra-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-obra-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-obra-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/Almacen-obra-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-obra-api/pkg/config"
	"github.com/jhoicas/Almacen-obra-api/pkg/logger"
)

const swaggerSpecFile = "./docs/swagger.json"

func main() {
	_ = godotenv.Load() // opcional; las env vars del entorno tienen prioridad

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	checkoutRepo := postgres.NewCheckoutRepository(pool)
	orderRepo := postgres.NewMaintenanceOrderRepository(pool)
	requestRepo := postgres.NewPurchaseRequestRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := appledger.NewUseCase(txRunner, productRepo, stockRepo, movRepo)
	lifecycle := appasset.NewLifecycleManager(txRunner, assetRepo, locationRepo, checkoutRepo, orderRepo)
	checkoutUC := appcheckout.NewUseCase(txRunner, lifecycle, checkoutRepo)
	maintenanceUC := appmaintenance.NewUseCase(txRunner, lifecycle, orderRepo)
	purchasingUC := apppurchasing.NewUseCase(txRunner, ledgerUC, productRepo, requestRepo)

	productUC := usecase.NewProductUseCase(productRepo)
	assetUC := usecase.NewAssetUseCase(assetRepo, locationRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	// El middleware hace panic si el archivo no existe; sin él la API sigue operando.
	if _, err := os.Stat(swaggerSpecFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpecFile,
			Path:     "docs",
			Title:    "Almacén de Obra API",
		}))
	} else {
		log.Warn().Str("file", swaggerSpecFile).Msg("especificación swagger no encontrada, UI /docs deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		AssetUC:       assetUC,
		LocationUC:    locationUC,
		LedgerUC:      ledgerUC,
		Lifecycle:     lifecycle,
		CheckoutUC:    checkoutUC,
		MaintenanceUC: maintenanceUC,
		PurchasingUC:  purchasingUC,
	})

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(cfg.Scheduler.Spec, ledgerUC, checkoutUC, log)
		if err := sched.Start(); err != nil {
			log.Fatal().Err(err).Msg("iniciar scheduler")
		}
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
