// seed_catalog importa productos desde un CSV con cabecera
// (sku, nombre, precio_compra, precio_venta, precio_mayorista, precio_caja, unidades_por_caja).
// Los SKU existentes se omiten, así que puede ejecutarse varias veces sobre el mismo archivo.
//
// Uso: go run ./cmd/seed_catalog [--sep ';'] [--latin1] [productos.csv]
// Por defecto lee productos.csv del directorio actual.
package main

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"github.com/casaguflo/inventario-api/internal/application/usecase"
	"github.com/casaguflo/inventario-api/internal/infrastructure/catalogcsv"
	"github.com/casaguflo/inventario-api/internal/infrastructure/postgres"
	"github.com/casaguflo/inventario-api/pkg/config"
	"github.com/casaguflo/inventario-api/pkg/logger"
)

func main() {
	sep := pflag.String("sep", ",", "separador de columnas")
	latin1 := pflag.Bool("latin1", false, "el archivo está en ISO-8859-1")
	pflag.Parse()

	csvPath := "productos.csv"
	if pflag.NArg() > 0 {
		csvPath = pflag.Arg(0)
	}
	comma, size := utf8.DecodeRuneInString(*sep)
	if size == 0 || size != len(*sep) {
		fmt.Fprintf(os.Stderr, "Separador %q inválido: debe ser un único carácter\n", *sep)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.Storage.Driver != config.DriverPostgres {
		fmt.Fprintln(os.Stderr, "seed_catalog requiere STORAGE_DRIVER=postgres")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed_catalog")

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := catalogcsv.Read(f, catalogcsv.Options{Comma: comma, Latin1: *latin1})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
	}

	repos := postgres.Repos(pool)
	products := usecase.NewProductUseCase(repos.Products, repos.Stock, postgres.NewTxRunner(pool), nil, log)
	res, err := catalogcsv.Import(ctx, products, rows, log)
	if err != nil {
		log.Fatal().Err(err).Msg("importar catálogo")
	}

	fmt.Printf("Importado %s: %d creados, %d existentes, %d rechazados\n", csvPath, res.Created, res.Skipped, res.Failed)
}
