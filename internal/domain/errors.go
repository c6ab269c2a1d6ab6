package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El orden de verificación en el reporte de kardex es: ErrUnauthenticated → ErrForbidden →
// ErrInvalidInput → ErrNotFound; cualquier otro error se trata como falla interna.
var (
	ErrUnauthenticated = errors.New("sesión no autenticada")
	ErrForbidden       = errors.New("acceso denegado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrNotFound        = errors.New("recurso no encontrado")
)
