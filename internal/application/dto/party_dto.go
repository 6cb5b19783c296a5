package dto

// CreatePartyRequest entrada para crear un cliente o proveedor.
// LegalID (cédula o RUC) es opcional pero se valida si viene.
type CreatePartyRequest struct {
	LegalID     *string `json:"identificacion"`
	Name        string  `json:"nombre" validate:"required,min=1,max=200"`
	ContactName string  `json:"contacto" validate:"max=200"`
	Phone       string  `json:"telefono" validate:"max=50"`
	Email       string  `json:"correo" validate:"omitempty,email"`
}

// UpdatePartyRequest entrada para actualizar un cliente o proveedor.
type UpdatePartyRequest struct {
	LegalID     *string `json:"identificacion"`
	Name        *string `json:"nombre" validate:"omitempty,min=1,max=200"`
	ContactName *string `json:"contacto" validate:"omitempty,max=200"`
	Phone       *string `json:"telefono" validate:"omitempty,max=50"`
	Email       *string `json:"correo" validate:"omitempty,email"`
	Active      *bool   `json:"activo"`
}

// PartyResponse salida de un cliente o proveedor.
type PartyResponse struct {
	ID          string  `json:"id"`
	LegalID     *string `json:"identificacion"`
	Name        string  `json:"nombre"`
	ContactName string  `json:"contacto,omitempty"`
	Phone       string  `json:"telefono"`
	Email       string  `json:"correo"`
	Active      bool    `json:"activo"`
}
