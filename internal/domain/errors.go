package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrReferenceNotFound = errors.New("referencia inexistente")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidLegalID    = errors.New("identificación inválida")
	ErrInvalidBoxConfig  = errors.New("precio por caja requiere unidades por caja mayor a 0")
)

// IsValidation indica si err pertenece a la clase "validación" (rechazo sin estado parcial).
// Las referencias inexistentes se tratan como validación, no como not found.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrReferenceNotFound) ||
		errors.Is(err, ErrInvalidLegalID) ||
		errors.Is(err, ErrInvalidBoxConfig)
}
