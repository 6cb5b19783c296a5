package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje (y opcionalmente id).
type MessageResponse struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}
