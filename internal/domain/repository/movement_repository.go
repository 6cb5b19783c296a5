package repository

import (
	"context"

	"github.com/casaguflo/inventario-api/internal/domain/entity"
)

// MovementRepository puerto de persistencia del libro de movimientos (cabecera + líneas).
// No define update ni delete: los movimientos son inmutables.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	CreateLine(ctx context.Context, line *entity.MovementLine) error
	// ListRows devuelve filas aplanadas ordenadas por fecha DESC, id DESC, posición ASC.
	// typeFilter vacío no filtra.
	ListRows(ctx context.Context, typeFilter entity.MovementType) ([]entity.MovementRow, error)
}
