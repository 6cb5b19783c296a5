package entity

import "time"

// Client es el destinatario de un despacho.
type Client struct {
	ID        string
	LegalID   *string // cédula (10) o RUC (13), validada al crear
	Name      string
	Phone     string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Provider es el origen de un ingreso.
type Provider struct {
	ID          string
	LegalID     *string
	Name        string
	ContactName string
	Phone       string
	Email       string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
