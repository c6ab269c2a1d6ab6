package dto

// APIResponse sobre de respuesta JSON: {success, data} en éxito; {success:false, message} en error.
// Error y Details solo se llenan fuera de producción (diagnóstico, nunca para control de flujo).
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// ErrorResponse cuerpo de error HTTP usado por los middlewares.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
