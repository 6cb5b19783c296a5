// Command api expone la API HTTP de inventario.
//
// docs/swagger.json se genera desde las anotaciones de los handlers:
//
//	go generate ./cmd/api
//
//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.6 init -g main.go -d ./,../../internal/interfaces/http,../../internal/application/dto -o ../../docs --outputTypes json --overridesFile .swaggo
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
	"github.com/redis/go-redis/v9"

	"github.com/casaguflo/inventario-api/internal/application/inventory"
	"github.com/casaguflo/inventario-api/internal/application/usecase"
	"github.com/casaguflo/inventario-api/internal/infrastructure/cache"
	"github.com/casaguflo/inventario-api/internal/infrastructure/memory"
	"github.com/casaguflo/inventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/casaguflo/inventario-api/internal/interfaces/http"
	"github.com/casaguflo/inventario-api/pkg/config"
	"github.com/casaguflo/inventario-api/pkg/logger"
)

// @title          Inventario API
// @version        1.0
// @description    Movimientos de inventario multi-bodega: ingresos, despachos, stock e historial.
// @BasePath       /
// @securityDefinitions.apikey Bearer
// @in             header
// @name           Authorization
// @description    Bearer <token>
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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repos    inventory.TxRepos
		txRunner inventory.TxRunner
	)
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		repos, txRunner = store.Repos(), store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("aplicar esquema")
			}
			log.Info().Msg("esquema aplicado")
		}
		repos, txRunner = postgres.Repos(pool), postgres.NewTxRunner(pool)
	}

	// Caché de stock opcional; sin REDIS_ADDR las lecturas van directo al repositorio.
	var stockCache inventory.StockCache
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		stockCache = cache.NewStockCache(rdb, cfg.Redis.StockTTL)
	}

	ledgerUC := inventory.NewRecordMovementUseCase(txRunner, stockCache, log)
	historyUC := inventory.NewHistoryUseCase(repos.Movements)
	stockUC := inventory.NewStockUseCase(repos.Stock, repos.Products, stockCache)
	productUC := usecase.NewProductUseCase(repos.Products, repos.Stock, txRunner, stockCache, log)
	warehouseUC := usecase.NewWarehouseUseCase(repos.Warehouses, txRunner, stockCache, log)
	clientUC := usecase.NewClientUseCase(repos.Clients)
	providerUC := usecase.NewProviderUseCase(repos.Providers, txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.App.DocsPath != "" {
		if _, err := os.Stat(cfg.App.DocsPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.App.DocsPath,
				Path:     "docs",
				Title:    "Inventario API",
			}))
		} else {
			log.Warn().Str("path", cfg.App.DocsPath).Msg("swagger.json no encontrado, /docs desactivado")
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:      ledgerUC,
		History:     historyUC,
		Stock:       stockUC,
		ProductUC:   productUC,
		WarehouseUC: warehouseUC,
		ClientUC:    clientUC,
		ProviderUC:  providerUC,
		JWTSecret:   cfg.JWT.Secret,
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
