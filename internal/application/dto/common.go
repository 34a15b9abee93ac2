package dto

// ErrorResponse cuerpo de error HTTP. La app extrae Code para decidir si el
// diálogo de error permite reintentar.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListResponse envoltura estándar de listados: {success, count, data}.
type ListResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    any  `json:"data"`
}
