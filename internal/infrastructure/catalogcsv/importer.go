package catalogcsv

import (
	"context"
	"errors"

	"github.com/casaguflo/inventario-api/internal/application/dto"
	"github.com/casaguflo/inventario-api/internal/domain"
	"github.com/casaguflo/inventario-api/pkg/logger"
)

// ProductCreator alta de productos (usecase.ProductUseCase).
type ProductCreator interface {
	Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
}

// Result resumen de una importación.
type Result struct {
	Created int
	Skipped int // sku ya existente
	Failed  int // rechazadas por validación
}

// Import da de alta cada fila. Los SKU existentes se omiten y las filas inválidas se registran
// y se cuentan sin detener la importación; cualquier otro error la corta.
func Import(ctx context.Context, creator ProductCreator, rows []Row, log *logger.Logger) (Result, error) {
	if log == nil {
		log = logger.Nop()
	}
	var res Result
	for _, row := range rows {
		_, err := creator.Create(ctx, row.Product)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, domain.ErrDuplicate):
			res.Skipped++
			log.Debug().Int("linea", row.Line).Str("sku", row.Product.SKU).Msg("sku existente, omitido")
		case domain.IsValidation(err):
			res.Failed++
			log.Warn().Err(err).Int("linea", row.Line).Str("sku", row.Product.SKU).Msg("fila rechazada")
		default:
			return res, err
		}
	}
	return res, nil
}
