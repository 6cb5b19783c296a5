package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/casaguflo/inventario-api/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

// mapWriteError traduce violaciones de constraints a errores de dominio; el resto se envuelve con op.
func mapWriteError(op string, err error) error {
	pgErr := pgError(err)
	if pgErr == nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.ConstraintName)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrReferenceNotFound, pgErr.ConstraintName)
	case codeCheckViolation:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pgErr.ConstraintName)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// validID evita enviar a PostgreSQL ids que no son UUID (error 22P02): un id mal formado no existe.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
