package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El Gateway los traduce a la envoltura {status: "error", message}.
var (
	ErrValidation       = errors.New("entrada inválida")
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrDuplicateName    = errors.New("ya existe un registro con ese nombre")
	ErrHasDependents    = errors.New("la categoría tiene productos asociados")
	ErrInvalidAmount    = errors.New("la cantidad debe ser mayor que cero")
	ErrWouldGoNegative  = errors.New("la salida dejaría el stock en negativo")
	ErrInvalidPercent   = errors.New("el porcentaje debe ser mayor que cero")
	ErrCategoryNotFound = errors.New("categoría no encontrada")
	ErrPartialUpdate    = errors.New("actualización parcial detectada")
	ErrTransport        = errors.New("fallo de comunicación con el servidor")
)
